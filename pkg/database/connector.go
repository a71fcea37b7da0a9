package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/profilehub/backend/pkg/logger"
)

// ErrNotConnected is returned by Connector.DB until the first connection succeeds.
var ErrNotConnected = errors.New("database not connected")

// Source hands out the live database handle.
type Source interface {
	DB() (*gorm.DB, error)
}

// Connector owns a Postgres connection that is established in the
// background. Serving never waits on it: callers get ErrNotConnected until
// the connection is up, and a failed attempt is logged, not retried beyond
// the bounded backoff in OpenPostgres.
type Connector struct {
	dsn  string
	opts Options

	db   atomic.Pointer[gorm.DB]
	err  atomic.Pointer[error]
	once sync.Once
	done chan struct{}
}

// NewConnector returns an unconnected Connector.
func NewConnector(dsn string, opts Options) *Connector {
	return &Connector{dsn: dsn, opts: opts, done: make(chan struct{})}
}

// ConnectAsync starts the connection attempt in its own goroutine and
// returns immediately. Only the first call has an effect.
func (c *Connector) ConnectAsync(ctx context.Context) {
	c.once.Do(func() {
		go c.connect(ctx)
	})
}

func (c *Connector) connect(ctx context.Context) {
	defer close(c.done)

	start := time.Now()
	db, err := OpenPostgres(ctx, c.dsn, c.opts)
	if err != nil {
		c.err.Store(&err)
		logger.L().Error("Error connecting to database", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	c.db.Store(db)
	logger.L().Info("Database connected successfully", zap.Duration("elapsed", time.Since(start)))
}

// Done is closed once the connection attempt has finished, successfully or not.
func (c *Connector) Done() <-chan struct{} { return c.done }

// DB returns the connected handle or ErrNotConnected.
func (c *Connector) DB() (*gorm.DB, error) {
	if db := c.db.Load(); db != nil {
		return db, nil
	}
	if errp := c.err.Load(); errp != nil {
		return nil, errors.Join(ErrNotConnected, *errp)
	}
	return nil, ErrNotConnected
}

// Ready reports whether the database is connected.
func (c *Connector) Ready() bool { return c.db.Load() != nil }

// Close releases the pool if one was opened.
func (c *Connector) Close() error {
	db := c.db.Load()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
