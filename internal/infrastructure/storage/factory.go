package storage

import (
	"context"
	"fmt"

	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns the document storage selected by cfg.Type. The S3 bucket is created if missing.
func New(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (proforma.DocumentStorage, error) {
	switch cfg.Type {
	case "", "memory":
		log.Info("using in-memory document storage")
		return NewMemoryStorage(""), nil
	case "s3":
		s, err := NewS3ObjectStorage(ctx, cfg, WithLogger(log))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		log.Info("using s3 document storage", zap.String("bucket", s.Bucket()), zap.String("endpoint", cfg.Endpoint))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
