package cache

import (
	"context"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// NewIdempotencyStore returns a Redis store when cfg names a reachable host and
// an in-memory store otherwise
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Host == "" {
		log.Info("redis not configured, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(0)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory idempotency store",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		_ = client.Close()
		return NewInMemoryIdempotencyStore(0)
	}

	log.Info("using redis idempotency store", zap.String("addr", cfg.Addr()))
	return NewRedisIdempotencyStore(client, "")
}
