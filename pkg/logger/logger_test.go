package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("nonsense"))
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := NewWithConfig(Config{
		Level:          "info",
		Format:         "json",
		OutputPath:     path,
		ServiceName:    "twitter-api",
		ServiceVersion: "test",
		Environment:    "test",
	})
	require.NoError(t, err)

	l.Info("hello", zap.String("k", "v"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"service":"twitter-api"`)
}

func TestWithContext_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)

	WithContext(WithRequestID(context.Background(), "req-1"), base).Info("with id")
	WithContext(context.Background(), base).Info("without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestRequestIDInterceptor(t *testing.T) {
	interceptor := RequestIDInterceptor()
	capture := func(ctx context.Context, _ any) (any, error) {
		return GetRequestID(ctx), nil
	}

	t.Run("generates an id", func(t *testing.T) {
		got, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, capture)
		require.NoError(t, err)
		assert.NotEmpty(t, got)
	})

	t.Run("reuses incoming metadata", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc"))
		got, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, capture)
		require.NoError(t, err)
		assert.Equal(t, "abc", got)
	})
}
