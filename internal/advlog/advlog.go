// Package advlog builds the structured logger commelec-validate uses, and
// hands to pkg/validator, for progress narration, adapted from a global
// init-once slog wrapper into a constructor returning an ordinary
// *slog.Logger so callers (tests included) aren't forced through package
// globals.
package advlog

import (
	"io"
	"log/slog"
	"os"
)

// New builds a text-handler *slog.Logger writing to stdout (and, if logFile
// is non-empty, also appending to that file). level is one of
// "debug"/"info"/"warn"/"error"; anything else falls back to "info".
func New(level, logFile string) (*slog.Logger, error) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	writers := []io.Writer{os.Stdout}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, f)
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})
	return slog.New(handler), nil
}
