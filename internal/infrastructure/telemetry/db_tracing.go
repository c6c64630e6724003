package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bound variables in db.statement; never in production
	SlowQueryThresh time.Duration
	DBName          string
}

// DefaultDBTracingConfig returns database tracing defaults
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "postgresql",
	}
}

type contextKey string

const queryStartKey contextKey = "otel_query_start"

// RegisterDBTracing installs otelgorm on db and marks slow or failed statements on their spans
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	marker := &slowQueryMarker{threshold: cfg.SlowQueryThresh}
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("culinary:before_create", marker.before); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("culinary:before_query", marker.before); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("culinary:before_update", marker.before); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("culinary:before_delete", marker.before); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("culinary:before_row", marker.before); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("culinary:before_raw", marker.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("culinary:after_create", marker.after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("culinary:after_query", marker.after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("culinary:after_update", marker.after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("culinary:after_delete", marker.after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("culinary:after_row", marker.after); err != nil {
		return err
	}
	if err := cb.Raw().After("gorm:raw").Register("culinary:after_raw", marker.after); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

type slowQueryMarker struct {
	threshold time.Duration
}

func (m *slowQueryMarker) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

func (m *slowQueryMarker) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		elapsed := time.Since(start)
		if elapsed > m.threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
