package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

type LoggerConfig struct {
	Level     string
	Format    string
	AddSource bool
	File      string
}

func LoggerConfigFromSettings(s models.LoggingSettings) LoggerConfig {
	return LoggerConfig{
		Level:     s.Level,
		Format:    s.Format,
		AddSource: s.AddSource,
		File:      s.File,
	}
}

// New builds a logger writing to w
func New(cfg LoggerConfig, w io.Writer) (*slog.Logger, error) {
	level, err := parseSlogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown logging.format: %s", cfg.Format)
	}

	return slog.New(h), nil
}

// Open builds a logger for cfg. When cfg.File is set the log is appended to
// that file, otherwise it goes to fallback. The returned closer must be
// closed on exit.
func Open(cfg LoggerConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		logger, err := New(cfg, fallback)
		return logger, io.NopCloser(nil), err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := New(cfg, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func parseSlogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown logging.level: %s", s)
	}
}
