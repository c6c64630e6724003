package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// maxLoggedSQL caps statement text; bulk price inserts can be very long
const maxLoggedSQL = 2048

// GormConfig controls which statements reach the log
type GormConfig struct {
	Level gormlogger.LogLevel
	// SlowThreshold of zero disables slow query warnings
	SlowThreshold time.Duration
	// LogNotFound logs ErrRecordNotFound as an error. Repositories turn it
	// into NOT_FOUND domain errors, so it is off by default.
	LogNotFound bool
}

// GormConfigFor derives the GORM settings from the application log level
func GormConfigFor(level string) GormConfig {
	cfg := GormConfig{Level: gormlogger.Warn, SlowThreshold: 200 * time.Millisecond}
	switch strings.ToLower(level) {
	case "silent":
		cfg.Level = gormlogger.Silent
	case "error":
		cfg.Level = gormlogger.Error
	case "debug", "info":
		cfg.Level = gormlogger.Info
	}
	return cfg
}

// GormLogger sends GORM output to zap with request and trace ids attached
type GormLogger struct {
	log *zap.Logger
	cfg GormConfig
}

func NewGormLogger(log *zap.Logger, cfg GormConfig) *GormLogger {
	return &GormLogger{log: log.Named("gorm"), cfg: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cfg := l.cfg
	cfg.Level = level
	return &GormLogger{log: l.log, cfg: cfg}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Info {
		l.withContext(ctx).Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Warn {
		l.withContext(ctx).Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.cfg.Level >= gormlogger.Error {
		l.withContext(ctx).Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) withContext(ctx context.Context) *zap.Logger {
	log := l.log
	if id := GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	if id := GetTraceID(ctx); id != "" {
		log = log.With(zap.String("trace_id", id))
	}
	return log
}

// Trace logs one executed statement: errors at error level, slow queries at
// warn, everything else at debug when the level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.cfg.Level <= gormlogger.Silent {
		return
	}
	if err != nil && !l.cfg.LogNotFound && errors.Is(err, gormlogger.ErrRecordNotFound) {
		err = nil
	}

	elapsed := time.Since(begin)
	slow := l.cfg.SlowThreshold > 0 && elapsed > l.cfg.SlowThreshold
	switch {
	case err != nil && l.cfg.Level >= gormlogger.Error:
	case slow && l.cfg.Level >= gormlogger.Warn:
	case l.cfg.Level >= gormlogger.Info:
	default:
		return
	}

	sql, rows := fc()
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
	}
	log := l.withContext(ctx).With(
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)

	switch {
	case err != nil:
		log.Error("sql failed", zap.Error(err))
	case slow:
		log.Warn("slow sql", zap.Duration("threshold", l.cfg.SlowThreshold))
	default:
		log.Debug("sql")
	}
}
