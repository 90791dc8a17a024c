package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/grinta-launcher/grinta/pkg/models"
)

const (
	// AppDir is the directory created under the platform data directory
	AppDir = "grinta"
	// HistoryFile is the history document name
	HistoryFile = "grinta_history.json"
	// DefaultMaxEntries bounds the history when no limit is configured
	DefaultMaxEntries = 500
)

// Store persists the usage history as a single JSON document.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithMaxEntries sets how many entries are kept. Zero keeps everything.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxEntries = n
		}
	}
}

// WithClock overrides the time source used to stamp executions
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for non-fatal load problems
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store backed by the file at path
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:       path,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the history, oldest first. A missing file yields an empty
// history; unreadable or corrupt content is logged and also yields an empty
// history.
func (s *Store) Load() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read history", "path", s.path, "error", err)
		}
		return []models.Item{}
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("ignoring corrupt history", "path", s.path, "error", err)
		return []models.Item{}
	}
	if items == nil {
		items = []models.Item{}
	}
	return items
}

// Save replaces the persisted history with items
func (s *Store) Save(items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(items)
}

func (s *Store) write(items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	// Write atomically
	tmpFile := s.path + ".tmp"
	f, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to write history %s: %w", s.path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write history %s: %w", s.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync history %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write history %s: %w", s.path, err)
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to save history %s: %w", s.path, err)
	}
	return nil
}

// Record stamps item with the current time, moves it to the most recent
// position and persists the result. The returned history reflects the update
// even when persisting fails.
func (s *Store) Record(history []models.Item, item models.Item) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := item.Clone()
	ranAt := s.now()
	entry.RanAt = &ranAt

	key := entry.Key()
	updated := make([]models.Item, 0, len(history)+1)
	for _, existing := range history {
		if existing.Key() != key {
			updated = append(updated, existing)
		}
	}
	updated = append(updated, entry)

	if s.maxEntries > 0 && len(updated) > s.maxEntries {
		updated = updated[len(updated)-s.maxEntries:]
	}

	return updated, s.write(updated)
}

// Clear removes every entry from the persisted history
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]models.Item{})
}

// DefaultPath returns the history location inside the platform data directory
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, HistoryFile), nil
}

// DataDir returns the per-user application data directory
func DataDir() (string, error) {
	base, err := platformDataDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Join(base, AppDir), nil
}

func platformDataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("AppData"); dir != "" {
			return dir, nil
		}
		return os.UserConfigDir()
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
