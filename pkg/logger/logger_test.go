package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogUsableWithoutInit(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() {
		Log.Info("message before Init", "key", "value")
	})
	assert.True(t, Log.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, Log.Enabled(context.Background(), slog.LevelDebug))
}

func TestInitAppliesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	Init()
	assert.True(t, Log.Enabled(context.Background(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "error")
	Init()
	assert.False(t, Log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, Log.Enabled(context.Background(), slog.LevelError))
}
