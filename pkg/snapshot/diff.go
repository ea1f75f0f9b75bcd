package snapshot

// Delta holds per-application byte increments between two snapshots.
// Values are never negative. A zero entry means the application was
// observed in both snapshots but its counters did not advance (or moved
// backwards after a restart).
type Delta map[string]uint64

// Diff computes per-application byte increments between two consecutive
// snapshots.
//
// A process contributes only when its PID exists in both snapshots under
// the same name. A PID that disappeared, or that now hosts a differently
// named process (PID reuse), contributes nothing. When a surviving process
// reports a counter lower than before, the increment saturates at zero and
// the application still receives an explicit zero entry.
//
// Processes sharing one name accumulate into a single entry. Diff is a
// pure function and safe for concurrent use.
func Diff(previous, current Snapshot) Delta {
	delta := make(Delta)

	for pid, cur := range current {
		prev, ok := previous[pid]
		if !ok || prev.Name != cur.Name {
			continue
		}
		delta[cur.Name] += saturatingSub(cur.IOBytes, prev.IOBytes)
	}

	return delta
}

// saturatingSub returns a-b, clamped at zero when the counter moved backwards.
func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
