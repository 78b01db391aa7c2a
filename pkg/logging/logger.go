package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"flightrec/pkg/config"
)

// Init initializes the logging system based on configuration. Console
// output is only attached when console is true; a full-screen terminal
// view owns stdout otherwise.
// It returns a cleanup function to close log files.
func Init(cfg *config.LogConfig, console bool) (func(), error) {
	handler, closer, err := setupHandler(&cfg.App, console)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app logger: %w", err)
	}
	slog.SetDefault(slog.New(handler))
	EnableTrace = cfg.App.Trace

	return func() {
		closer.Close()
	}, nil
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR to a slog level, defaulting to INFO.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupHandler(s *config.LogSettings, stdout bool) (slog.Handler, io.Closer, error) {
	level := ParseLevel(s.Level)

	// Create Directory
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   s.Path,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
	}
	// Start every run on a fresh file; the previous one becomes a backup.
	if _, err := os.Stat(s.Path); err == nil {
		if err := w.Rotate(); err != nil {
			return nil, nil, err
		}
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	fileHandler := slog.NewTextHandler(w, opts)

	// Capture Handler - for the status bar (INFO+)
	captureHandler := slog.NewTextHandler(GlobalLogCapture, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: dropTime,
	})

	handlers := []slog.Handler{fileHandler, captureHandler}
	if stdout {
		// Console Handler - only INFO and up
		handlers = append(handlers, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: max(level, slog.LevelInfo),
		}))
	}
	return &multiHandler{handlers: handlers}, w, nil
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle implements slog.Handler
// nolint:gocritic // r must be passed by value to implement slog.Handler
func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
