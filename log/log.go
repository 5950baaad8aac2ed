package log

import (
	"log/slog"
	"os"
	"time"

	"github.com/resumecraft/backend/config"
)

func parseLevel(level string) slog.Leveler {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Configure sets up the logger based on log configuration
func Configure(logConfig config.LogConfig) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(logConfig.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	if logConfig.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler).With(slog.String("app", "resumecraft-backend"))
	slog.SetDefault(logger)

	slog.Debug("Logger configured",
		"level", logConfig.Level,
		"format", logConfig.Format)
}
