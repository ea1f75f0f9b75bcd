package alert

import (
	"sync"
	"time"
)

// Outcome reports what a TryAlert call decided.
type Outcome int

const (
	// OutcomeAttempted means the cooldown window was charged and the caller
	// should deliver the notification now.
	OutcomeAttempted Outcome = iota

	// OutcomeInCooldown means a recent attempt already charged the window;
	// the caller must stay silent.
	OutcomeInCooldown
)

// String returns the outcome label used in logs and journal entries.
func (o Outcome) String() string {
	switch o {
	case OutcomeAttempted:
		return "attempted"
	case OutcomeInCooldown:
		return "in_cooldown"
	default:
		return "unknown"
	}
}

// Throttle enforces at most one alert attempt per application per cooldown
// window.
//
// The check and the charge happen in a single critical section, so any
// number of concurrent callers racing on one application observe exactly
// one OutcomeAttempted per window. The window is charged before delivery
// runs; delivery failures never roll it back.
//
// Entries are overwritten on each attempt and are not removed unless the
// owner opts into PruneStale, so memory grows with the number of distinct
// application names ever alerted on.
type Throttle struct {
	window      time.Duration
	lastAttempt map[string]time.Time
	mu          sync.Mutex

	// now is replaceable in tests.
	now func() time.Time
}

// NewThrottle creates a throttle with the given cooldown window.
func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{
		window:      window,
		lastAttempt: make(map[string]time.Time),
		now:         time.Now,
	}
}

// TryAlert decides whether an alert for app may be attempted right now.
// On OutcomeAttempted the window is already charged when the call returns.
func (t *Throttle) TryAlert(app string) Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.lastAttempt[app]; ok && now.Sub(last) < t.window {
		return OutcomeInCooldown
	}

	t.lastAttempt[app] = now
	return OutcomeAttempted
}

// InCooldown reports whether an attempt for app would currently be
// suppressed, without charging the window.
func (t *Throttle) InCooldown(app string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastAttempt[app]
	return ok && t.now().Sub(last) < t.window
}

// LastAttempt returns when app last charged its window, if it ever has.
func (t *Throttle) LastAttempt(app string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastAttempt[app]
	return last, ok
}

// Remaining returns how long until app becomes eligible again. Zero means
// an attempt would succeed now.
func (t *Throttle) Remaining(app string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastAttempt[app]
	if !ok {
		return 0
	}
	remaining := t.window - t.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetWindow changes the cooldown window. The new window applies to all
// subsequent decisions, including applications charged under the old one.
func (t *Throttle) SetWindow(window time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.window = window
}

// Window returns the current cooldown window.
func (t *Throttle) Window() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.window
}

// PruneStale removes entries whose last attempt is older than maxAge and
// returns how many were removed. A pruned application is immediately
// eligible again, so maxAge must be at least the cooldown window to keep
// the at-most-once guarantee intact.
func (t *Throttle) PruneStale(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-maxAge)
	removed := 0
	for app, last := range t.lastAttempt {
		if last.Before(cutoff) {
			delete(t.lastAttempt, app)
			removed++
		}
	}
	return removed
}

// Len returns the number of applications currently tracked.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lastAttempt)
}
