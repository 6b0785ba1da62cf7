// Package logger builds the zerolog logger shared by the server, the
// middleware and the storage layer.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"postboard/app/config"
)

// New returns a logger writing to stderr.
func New(cfg *config.Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter returns a logger writing to w. Development builds get the
// human readable console format, everything else writes JSON lines.
func NewWithWriter(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.IsDevelopment() {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "postboard").
		Str("env", cfg.Env).
		Logger()
}
