package sources

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay coalesces bursts of filesystem events, e.g. an app
// install touching many files.
const DefaultWatchDelay = 500 * time.Millisecond

// Watcher signals when the watched directories change
type Watcher struct {
	watcher *fsnotify.Watcher
	delay   time.Duration
	changes chan struct{}
	logger  *slog.Logger
}

// NewWatcher watches dirs. Directories that cannot be watched are skipped;
// an error is returned only when none can be.
func NewWatcher(dirs []string, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	watched := 0
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			logger.Debug("skipping watch directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		fw.Close()
		return nil, fmt.Errorf("no watchable directories among %v", dirs)
	}

	return &Watcher{
		watcher: fw,
		delay:   delay,
		changes: make(chan struct{}, 1),
		logger:  logger,
	}, nil
}

// Changes delivers one signal per quiet period after a burst of events
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards coalesced change signals until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
