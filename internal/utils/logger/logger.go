package logger

import (
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"subtracker/internal/app/server/config"
)

type options struct {
	level  string
	output io.Writer
}

type Option func(*options)

// WithLevel overrides the level chosen for the environment.
func WithLevel(level string) Option {
	return func(o *options) {
		o.level = level
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// New builds the process logger: pretty output for local runs, JSON otherwise.
func New(env string, opts ...Option) *slog.Logger {
	o := options{output: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: levelOr(o.level, slog.LevelDebug)}))
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(o.output, &slog.HandlerOptions{Level: levelOr(o.level, slog.LevelInfo)}))
	default:
		log = setupPrettySlog(o.output, levelOr(o.level, slog.LevelDebug))
	}

	return log
}

func setupPrettySlog(w io.Writer, level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: level},
	}

	return slog.New(opts.NewPrettyHandler(w))
}

func levelOr(raw string, fallback slog.Level) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// Discard is used by tests and by commands that must keep stdout clean.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
