package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestInitRejectsBadInput(t *testing.T) {
	defer Replace(global)()

	_, err := Init("loud", "json")
	require.Error(t, err)
	_, err = Init("info", "xml")
	require.Error(t, err)

	l, err := Init("warn", "console")
	require.NoError(t, err)
	require.Same(t, l, L())
}

func TestReplaceRestores(t *testing.T) {
	orig := zap.NewNop()
	defer Replace(orig)()

	other := zap.NewExample()
	restore := Replace(other)
	require.Same(t, other, L())
	restore()
	require.Same(t, orig, L())
}

func TestFromContext(t *testing.T) {
	global := zap.NewNop()
	defer Replace(global)()

	require.Same(t, global, FromContext(context.Background()))

	scoped := zap.NewExample()
	require.Same(t, scoped, FromContext(NewContext(context.Background(), scoped)))
}

func TestGormTraceUsesRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.NewNop())()

	ctx := NewContext(context.Background(), zap.New(core).With(zap.String("id", "req-1")))
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	Gorm(gormlogger.Warn).Trace(ctx, time.Now(), sqlFn, errors.New("relation missing"))
	Gorm(gormlogger.Warn).Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	Gorm(gormlogger.Warn).Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
	Gorm(gormlogger.Silent).Trace(ctx, time.Now(), sqlFn, errors.New("ignored"))

	require.Equal(t, 1, logs.FilterMessage("gorm query error").Len())
	require.Equal(t, 1, logs.FilterMessage("gorm slow query").Len())
	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		require.Equal(t, "req-1", e.ContextMap()["id"])
		require.Equal(t, "SELECT 1", e.ContextMap()["sql"])
	}
}
