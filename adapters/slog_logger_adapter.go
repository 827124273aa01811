package adapters

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogLoggerAdapter routes LoggerAdapter calls into a *slog.Logger.
// Messages are formatted printf-style before being handed to slog.
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

var _ LoggerAdapter = (*SlogLoggerAdapter)(nil)

// NewSlogLoggerAdapter wraps an existing slog logger.
func NewSlogLoggerAdapter(logger *slog.Logger) *SlogLoggerAdapter {
	return &SlogLoggerAdapter{logger: logger}
}

// NewSlogLogger builds a slog logger writing to w. format is "json" or "text";
// level uses the LogLevel names. Level NONE discards everything.
func NewSlogLogger(w io.Writer, format string, level LogLevel) *slog.Logger {
	if level == LogLevelNone {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel(level),
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			}
			if attr.Key == slog.LevelKey {
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			}
			return attr
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("service", "answers"))
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (s *SlogLoggerAdapter) log(level slog.Level, message string, args []any) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	s.logger.Log(ctx, level, message)
}

func (s *SlogLoggerAdapter) Debug(message string, args ...any) { s.log(slog.LevelDebug, message, args) }
func (s *SlogLoggerAdapter) Info(message string, args ...any)  { s.log(slog.LevelInfo, message, args) }
func (s *SlogLoggerAdapter) Warn(message string, args ...any)  { s.log(slog.LevelWarn, message, args) }
func (s *SlogLoggerAdapter) Error(message string, args ...any) { s.log(slog.LevelError, message, args) }
