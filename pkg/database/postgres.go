package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/profilehub/backend/pkg/logger"
)

// Options tunes how a Postgres connection is opened and pooled.
type Options struct {
	MaxRetries      int
	Delay           time.Duration
	MaxDelay        time.Duration
	PingTimeout     time.Duration
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

// DefaultOptions returns pooling and retry defaults. SQL warnings are only
// logged in development.
func DefaultOptions(development bool) Options {
	lvl := gormlogger.Silent
	if development {
		lvl = gormlogger.Warn
	}
	return Options{
		MaxRetries:      5,
		Delay:           500 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		PingTimeout:     5 * time.Second,
		MaxOpenConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        lvl,
	}
}

// OpenPostgres opens a Gorm PostgreSQL connection with retry and sane pooling defaults.
func OpenPostgres(ctx context.Context, dsn string, opts Options) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	b := backoff{
		maxRetries: opts.MaxRetries,
		delay:      opts.Delay,
		maxDelay:   opts.MaxDelay,
	}

	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Gorm(opts.LogLevel),
		})
		if err == nil {
			break
		}
		if attempt >= b.maxRetries {
			return nil, fmt.Errorf("open postgres failed after %d attempts: %w", attempt+1, err)
		}
		logger.L().Warn("postgres not reachable, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", b.nextDelay(attempt)),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("open postgres canceled: %w", ctx.Err())
		case <-time.After(b.nextDelay(attempt)):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db db() error: %w", err)
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	ctxPing, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// IsUniqueViolation reports whether err carries Postgres error 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

type backoff struct {
	maxRetries int
	delay      time.Duration
	maxDelay   time.Duration
}

func (b backoff) nextDelay(attempt int) time.Duration {
	d := b.delay << attempt
	if d > b.maxDelay || d <= 0 {
		return b.maxDelay
	}
	return d
}
