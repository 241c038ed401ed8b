package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger направляет трассировку GORM в slog
type GormLogger struct {
	SlowThreshold time.Duration
	Level         gormlogger.LogLevel
}

func NewGormLogger(slowThreshold time.Duration, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{SlowThreshold: slowThreshold, Level: level}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.Level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Info {
		CtxInfo(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Warn {
		CtxWarn(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.Level >= gormlogger.Error {
		CtxError(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && l.Level >= gormlogger.Error &&
		!errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		sql, rows := fc()
		DBLog("query", sql, elapsed, rows, err)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		CtxWarn(ctx, "slow query", "query", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		DBLog("query", sql, elapsed, rows, nil)
	}
}
