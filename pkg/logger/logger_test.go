package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appctx "inventory/internal/core/context"
)

func TestWithContext_AddsTraceAndUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{zap.New(core).Sugar()}

	ctx := appctx.WithTrace(context.Background(), &appctx.TraceContext{TraceID: "t-1", SpanID: "s-1", RequestID: "r-1"})
	ctx = appctx.WithUser(ctx, &appctx.UserContext{UserID: "u-1", Role: "admin"})
	ctx = WithLogger(ctx, l)

	Info(ctx, "invoice created", "invoice_number", "INV-20240115-0001")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "t-1", fields["trace_id"])
	assert.Equal(t, "s-1", fields["span_id"])
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, "admin", fields["role"])
	assert.Equal(t, "INV-20240115-0001", fields["invoice_number"])
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Cleanup(func() { fallback.Store(nil) })
	ctx := context.Background()

	// Discarded until a default is installed.
	Warn(ctx, "dropped")

	core, logs := observer.New(zap.InfoLevel)
	SetDefault(&Logger{zap.New(core).Sugar()})
	Warn(ctx, "report cache unavailable", "error", "timeout")
	Debug(ctx, "below level")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "report cache unavailable", logs.All()[0].Message)
}

func TestNew_UnknownLevelMeansInfo(t *testing.T) {
	l, err := New(Config{Level: "nonsense", Service: "inventory"})
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestConfigFromEnv(t *testing.T) {
	cfg := ConfigFromEnv("debug", "development")
	assert.True(t, cfg.Development)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "inventory", cfg.Service)

	assert.False(t, ConfigFromEnv("info", "production").Development)
}
