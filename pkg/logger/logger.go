package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init sets up the application logger. JSON output so log aggregators can
// parse it; debug level in development, info otherwise.
func Init(environment string) {
	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
