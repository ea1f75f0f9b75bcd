package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"datawarden-hq/vigil/pkg/journal"
)

// Config contains configuration for the journal recorder.
type Config struct {
	// Enabled enables journaling of alert attempts.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int

	// WriteTimeout is the timeout for writing an entry to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		AsyncBuffer:  256,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder journals alert attempts. Entries are written asynchronously to
// avoid blocking the monitor's accounting loop.
type Recorder struct {
	storage   journal.Storage
	config    *Config
	entryChan chan *journal.Entry
	wg        sync.WaitGroup
	done      chan struct{}
	logger    *slog.Logger

	// mu serializes enqueues against shutdown: Record holds the read
	// side across the closed check and the send, so once Close holds the
	// write side every successful send is already in the channel and the
	// worker's drain pass will see it.
	mu     sync.RWMutex
	closed bool
}

// NewRecorder creates a new recorder with the provided storage backend and
// configuration.
func NewRecorder(storage journal.Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Recorder{
		storage:   storage,
		config:    config,
		entryChan: make(chan *journal.Entry, config.AsyncBuffer),
		done:      make(chan struct{}),
		logger:    slog.Default().With("component", "journal.recorder"),
	}

	// Start background worker to drain channel
	r.wg.Add(1)
	go r.worker()

	r.logger.Info("journal recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// Record enqueues an alert attempt for async writing. A missing ID is
// replaced with a fresh UUID and a zero Time with the current time.
//
// This method does not wait for the storage write to complete.
func (r *Recorder) Record(ctx context.Context, entry *journal.Entry) error {
	if !r.config.Enabled {
		return nil
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Refuse new entries once shutdown has begun. Holding mu across the
	// send below means an accepted entry is in the channel before Close
	// starts the drain, so it is never silently lost to the race between
	// a buffered send and the worker exiting.
	if r.closed {
		r.logger.Warn("recorder shut down, dropping entry",
			"entry_id", entry.ID,
			"app", entry.App,
		)
		return journal.NewRecorderError(entry.ID, context.Canceled)
	}

	select {
	case r.entryChan <- entry:
		r.logger.Debug("journal entry enqueued",
			"entry_id", entry.ID,
			"app", entry.App,
			"outcome", entry.Outcome,
		)
	case <-time.After(r.config.WriteTimeout):
		r.logger.Error("journal channel full, dropping entry",
			"entry_id", entry.ID,
			"app", entry.App,
			"channel_capacity", r.config.AsyncBuffer,
		)
		return journal.NewRecorderError(entry.ID, context.DeadlineExceeded)
	}

	return nil
}

// Close gracefully shuts down the recorder by draining the async channel and
// waiting for all pending writes to complete. Every entry accepted by Record
// before Close is written; Close is idempotent.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
	r.logger.Info("journal recorder shut down")
	return nil
}

// worker is the background goroutine that drains the entry channel and
// writes entries to storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case entry := <-r.entryChan:
			r.writeEntry(entry)

		case <-r.done:
			// Drain remaining entries from channel before exit
			for {
				select {
				case entry := <-r.entryChan:
					r.writeEntry(entry)
				default:
					return
				}
			}
		}
	}
}

// writeEntry writes a single entry to storage.
func (r *Recorder) writeEntry(entry *journal.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	start := time.Now()

	if err := r.storage.Store(ctx, entry); err != nil {
		r.logger.Error("failed to store journal entry",
			"entry_id", entry.ID,
			"app", entry.App,
			"error", err,
		)
		return
	}

	duration := time.Since(start)

	r.logger.Info("alert attempt journaled",
		"entry_id", entry.ID,
		"app", entry.App,
		"outcome", entry.Outcome,
		"duration_ms", duration.Milliseconds(),
	)

	if duration > r.config.WriteTimeout/2 {
		r.logger.Warn("slow journal write",
			"entry_id", entry.ID,
			"duration_ms", duration.Milliseconds(),
			"threshold_ms", (r.config.WriteTimeout / 2).Milliseconds(),
		)
	}
}
