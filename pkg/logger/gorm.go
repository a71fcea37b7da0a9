package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQuery is the duration above which a query is logged at warn.
const SlowQuery = 200 * time.Millisecond

type gormLogger struct {
	level gormlogger.LogLevel
}

// Gorm returns a gorm logger writing through zap. Queries run with a
// request context are logged with that request's fields.
func Gorm(level gormlogger.LogLevel) gormlogger.Interface {
	return gormLogger{level: level}
}

func (l gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.level = level
	return l
}

func (l gormLogger) Info(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		FromContext(ctx).Sugar().Infof(s, args...)
	}
}

func (l gormLogger) Warn(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		FromContext(ctx).Sugar().Warnf(s, args...)
	}
}

func (l gormLogger) Error(ctx context.Context, s string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		FromContext(ctx).Sugar().Errorf(s, args...)
	}
}

func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	sql, rows := fc()
	dur := time.Since(begin)
	log := FromContext(ctx).With(zap.Duration("duration", dur), zap.Int64("rows", rows), zap.String("sql", sql))
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		log.Error("gorm query error", zap.Error(err))
	case dur > SlowQuery && l.level >= gormlogger.Warn:
		log.Warn("gorm slow query")
	case l.level >= gormlogger.Info:
		log.Debug("gorm query")
	}
}
