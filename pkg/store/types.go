package store

import "context"

// Backend defines the interface for usage ledger persistence.
// Implementations must be thread-safe and support concurrent access.
type Backend interface {
	// Load retrieves the persisted totals. A backend with no prior state
	// returns an empty map and no error. State that cannot be decoded is
	// reported with an error matching codec.ErrCorruptState.
	Load(ctx context.Context) (map[string]uint64, error)

	// Save persists the totals wholesale, replacing any prior state.
	Save(ctx context.Context, totals map[string]uint64) error

	// Close releases any resources held by the backend.
	// The backend should not be used after calling Close.
	Close() error
}
