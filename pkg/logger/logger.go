package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is safe to use from init paths and tests; Init replaces it with the
// level configured for the deployment.
var Log = newLogger(slog.LevelInfo)

func Init() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	Log = newLogger(level)
	slog.SetDefault(Log)
}

// JSON handler for production-ready logging
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
