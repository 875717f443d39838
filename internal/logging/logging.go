package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the console logger. Unknown level strings fall back to info.
func New(level string) zerolog.Logger {
	var lvl zerolog.Level
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "info":
		lvl = zerolog.InfoLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "trace":
		lvl = zerolog.TraceLevel
	default:
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	w := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
