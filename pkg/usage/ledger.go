package usage

import (
	"sort"
	"sync"

	"datawarden-hq/vigil/pkg/snapshot"
)

// Ledger accumulates per-application disk usage totals.
//
// Application names are case-sensitive. A total, once present, never
// decreases except through Replace. The zero value is not usable; call
// NewLedger.
type Ledger struct {
	totals map[string]uint64
	mu     sync.RWMutex
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{totals: make(map[string]uint64)}
}

// Merge folds a snapshot delta into the running totals. Applications not
// yet tracked get new entries, including explicit zero entries, so an
// application observed with no counter movement still appears in the
// ledger. Additions saturate at the maximum counter value.
func (l *Ledger) Merge(delta snapshot.Delta) {
	if len(delta) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for app, n := range delta {
		l.totals[app] = saturatingAdd(l.totals[app], n)
	}
}

// TotalFor returns the cumulative total for an application, or zero when
// the application has never been observed.
func (l *Ledger) TotalFor(app string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totals[app]
}

// ExceedsThreshold reports whether an application's total is strictly
// greater than the threshold. A total exactly at the threshold does not
// qualify.
func (l *Ledger) ExceedsThreshold(app string, threshold uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totals[app] > threshold
}

// Over returns the applications whose totals are strictly greater than the
// threshold, sorted by name for deterministic iteration.
func (l *Ledger) Over(threshold uint64) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var apps []string
	for app, total := range l.totals {
		if total > threshold {
			apps = append(apps, app)
		}
	}
	sort.Strings(apps)
	return apps
}

// Snapshot returns a point-in-time copy of all totals. The copy is taken
// under the ledger lock; callers persist or inspect it without holding up
// concurrent merges.
func (l *Ledger) Snapshot() map[string]uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := make(map[string]uint64, len(l.totals))
	for app, total := range l.totals {
		totals[app] = total
	}
	return totals
}

// Replace overwrites the ledger wholesale with previously persisted totals.
// The input map is copied, so the caller may keep mutating it afterwards.
func (l *Ledger) Replace(totals map[string]uint64) {
	fresh := make(map[string]uint64, len(totals))
	for app, total := range totals {
		fresh[app] = total
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.totals = fresh
}

// Len returns the number of applications tracked.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.totals)
}

// saturatingAdd returns a+b, clamped at the maximum counter value so
// long-running totals never wrap.
func saturatingAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}
