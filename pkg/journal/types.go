package journal

import (
	"context"
	"fmt"
	"time"
)

// Outcome values for alert attempts.
const (
	// OutcomeDelivered means the notifier accepted the alert.
	OutcomeDelivered = "delivered"

	// OutcomeFailed means the notifier returned an error.
	OutcomeFailed = "failed"
)

// Entry is an immutable record of a single alert attempt.
type Entry struct {
	// ID is a UUID assigned when the entry is recorded.
	ID string `json:"id"`

	// Time is when the alert attempt was made.
	Time time.Time `json:"time"`

	// App is the application name the alert concerns.
	App string `json:"app"`

	// UsageBytes is the application's accumulated disk I/O at attempt time.
	UsageBytes uint64 `json:"usage_bytes"`

	// LimitBytes is the configured limit that was exceeded.
	LimitBytes uint64 `json:"limit_bytes"`

	// Notifier names the delivery mechanism ("desktop", "log").
	Notifier string `json:"notifier"`

	// Outcome is OutcomeDelivered or OutcomeFailed.
	Outcome string `json:"outcome"`

	// Error is the delivery error message. Empty when delivery succeeded.
	Error string `json:"error,omitempty"`
}

// MaxQueryLimit is the largest Limit a single query may request.
const MaxQueryLimit = 10000

// Query contains filter parameters for retrieving journal entries.
// Zero values match everything.
type Query struct {
	// Since and Until bound Entry.Time inclusively. Nil means unbounded.
	Since *time.Time
	Until *time.Time

	// App filters by application name.
	App string

	// Outcome filters by attempt outcome.
	Outcome string

	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Offset skips the first N matching entries.
	Offset int
}

// Validate returns an error if any query parameter is invalid.
func (q *Query) Validate() error {
	if q.Limit < 0 {
		return NewQueryError(q, fmt.Errorf("limit must be >= 0, got %d", q.Limit))
	}
	if q.Limit > MaxQueryLimit {
		return NewQueryError(q, fmt.Errorf("limit must be <= %d, got %d", MaxQueryLimit, q.Limit))
	}
	if q.Offset < 0 {
		return NewQueryError(q, fmt.Errorf("offset must be >= 0, got %d", q.Offset))
	}
	if q.Since != nil && q.Until != nil && q.Since.After(*q.Until) {
		return NewQueryError(q, fmt.Errorf("since must not be after until"))
	}
	if q.Outcome != "" && q.Outcome != OutcomeDelivered && q.Outcome != OutcomeFailed {
		return NewQueryError(q, fmt.Errorf("invalid outcome: %s (must be %q or %q)",
			q.Outcome, OutcomeDelivered, OutcomeFailed))
	}
	return nil
}

// Storage is the persistence interface for journal entries.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a journal entry.
	Store(ctx context.Context, entry *Entry) error

	// Query retrieves entries matching the filters, newest first.
	Query(ctx context.Context, query *Query) ([]*Entry, error)

	// Count returns the number of entries matching the filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes entries matching the filters and returns how many
	// were removed.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}
