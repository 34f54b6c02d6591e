// Package logger builds the application's slog logger. The terminal belongs
// to the TUI, so records only ever go to files or io.Discard.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

type Options struct {
	// Level is one of debug, info, warn or error. Unknown values mean info.
	Level string
	JSON  bool
	// Out receives every record at Level and above. Nil discards them.
	Out io.Writer
	// Errors, when set, additionally receives error records as JSON.
	Errors io.Writer
}

func New(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	var handlers []slog.Handler
	if opts.JSON {
		handlers = append(handlers, slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	} else {
		handlers = append(handlers, slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	}
	if opts.Errors != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.Errors, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}
	return slog.New(handler)
}

// Open is New backed by files. Empty paths are skipped. The returned close
// func releases whatever was opened and is always non-nil.
func Open(level string, json bool, path, errorPath string) (*slog.Logger, func() error, error) {
	var files []*os.File
	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}

	opts := Options{Level: level, JSON: json}
	if p := strings.TrimSpace(path); p != "" {
		f, err := openAppend(p)
		if err != nil {
			return nil, closeAll, err
		}
		files = append(files, f)
		opts.Out = f
	}
	if p := strings.TrimSpace(errorPath); p != "" {
		f, err := openAppend(p)
		if err != nil {
			_ = closeAll()
			return nil, func() error { return nil }, err
		}
		files = append(files, f)
		opts.Errors = f
	}
	return New(opts), closeAll, nil
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
