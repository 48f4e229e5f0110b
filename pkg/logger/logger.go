package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gatorkeys/config"
)

// Logger wraps slog with the key-value and printf surfaces used across
// the codebase. The zero value is usable and falls back to slog.Default.
type Logger struct {
	sl *slog.Logger
}

func NewLogger(cfg *config.Config) (*Logger, error) {
	level := parseLevel(cfg.LoggerMode.Level)

	var handler slog.Handler
	if cfg.LoggerMode.Development {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return &Logger{sl: slog.New(handler)}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) logger() *slog.Logger {
	if l == nil || l.sl == nil {
		return slog.Default()
	}
	return l.sl
}

func (l *Logger) Debug(msg string, kv ...any) { l.logger().Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.logger().Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.logger().Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.logger().Error(msg, kv...) }

func (l *Logger) Debugf(format string, args ...any) { l.logger().Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.logger().Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.logger().Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.logger().Error(fmt.Sprintf(format, args...)) }

func (l *Logger) Fatalf(format string, args ...any) {
	l.logger().Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
