package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the configuration file for changes and triggers reloads.
// It implements debouncing to prevent reload storms.
//
// The watcher registers the directory containing the configuration file
// rather than the file itself. Editors and configuration management tools
// replace files by writing a temporary file and renaming it over the
// original, which changes the inode; a watch on the file would go stale
// after the first replacement.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *WatcherConfig
	debounce *debouncer

	// State
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatcherConfig contains configuration for the file watcher.
type WatcherConfig struct {
	// Path is the configuration file to watch
	Path string

	// DebounceInterval is the time to wait before triggering a reload
	// after detecting file changes (default: 500ms)
	DebounceInterval time.Duration
}

// DefaultWatcherConfig returns the default watcher configuration for the
// given configuration file path.
func DefaultWatcherConfig(path string) *WatcherConfig {
	return &WatcherConfig{
		Path:             path,
		DebounceInterval: 500 * time.Millisecond,
	}
}

// NewWatcher creates a new configuration file watcher.
func NewWatcher(config *WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config == nil {
		return nil, fmt.Errorf("watcher config cannot be nil")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("watcher path cannot be empty")
	}
	if config.DebounceInterval == 0 {
		config.DebounceInterval = 500 * time.Millisecond
	}

	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: newDebouncer(config.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	return w, nil
}

// Watch starts watching for file changes and invokes onReload after each
// (debounced) change. This is a blocking operation that runs until the
// context is cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onReload func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	w.logger.Info("Configuration watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	// Event processing loop
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Configuration watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("Configuration watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("Configuration file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			// Debounce and trigger reload
			w.debounce.trigger(func() {
				w.logger.Info("Reloading configuration",
					"path", w.config.Path,
					"op", event.Op.String(),
				)

				if err := onReload(); err != nil {
					w.logger.Error("Configuration reload failed",
						"error", err,
					)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			w.logger.Error("Configuration watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the file watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	// Signal stop
	close(w.stopCh)

	// Wait for watcher to stop
	<-w.doneCh

	// Stop debouncer
	w.debounce.stop()

	// Close fsnotify watcher
	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// shouldProcessEvent determines if an event should trigger a reload.
// Only events for the watched configuration file count; the directory
// watch also surfaces noise from sibling files and editor temp files.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if event.Op&fsnotify.Remove == fsnotify.Remove {
		// Removals precede the rename that puts the new file in place.
		// The create/write event for the replacement triggers the reload.
		return false
	}

	return filepath.Base(event.Name) == filepath.Base(w.config.Path)
}

// debouncer implements event debouncing to prevent reload storms.
// It collects rapid events and triggers the callback only after a quiet period.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// newDebouncer creates a new debouncer.
func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// trigger arms the debouncer with a new event.
// The callback will be called after the debounce interval if no new events occur.
func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Store the callback
	d.callback = callback

	// Reset or create timer
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// stop stops the debouncer and cancels any pending callbacks.
func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
