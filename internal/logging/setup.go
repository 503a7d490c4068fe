package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects a backend and destination for New.
type Options struct {
	Backend string
	Level   string // debug, info, warn, error

	// File enables a rotating log file instead of stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a Logger from opts. An empty Backend means slog. The returned
// close func flushes the logger and releases the log file; call it last.
func New(opts Options) (Logger, func() error, error) {
	w, closeOut := output(opts)

	switch opts.Backend {
	case "", BackendSlog:
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelOrDefault(opts.Level))); err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return NewSlogLogger(slog.New(h)), closeOut, nil

	case BackendZap:
		level, err := zapcore.ParseLevel(levelOrDefault(opts.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
		zl := NewZapLogger(zap.New(core))
		return zl, func() error {
			// stdout may refuse fsync; the file close below reports real failures.
			_ = zl.Sync()
			return closeOut()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func output(opts Options) (io.Writer, func() error) {
	if opts.File == "" {
		return os.Stdout, func() error { return nil }
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return lj, lj.Close
}

func levelOrDefault(level string) string {
	if level == "" {
		return "info"
	}
	return level
}

// Nop returns a Logger that discards everything. Handy in tests.
func Nop() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
