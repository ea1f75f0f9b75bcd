package snapshot

import "context"

// PID identifies a process within a single snapshot. PIDs are recycled by
// the operating system, so a PID is only meaningful together with the
// process name captured alongside it.
type PID uint32

// Proc describes one process observed in a snapshot.
type Proc struct {
	// Name is the short command name the process reported (comm on Linux).
	// Names are case-sensitive and identify the application in the ledger.
	Name string

	// IOBytes is the cumulative disk I/O (bytes read plus bytes written)
	// since the process started. The counter resets when a process restarts.
	IOBytes uint64
}

// Snapshot is a point-in-time view of all observable processes. Sources
// build a fresh map on every capture; consumers treat it as immutable.
type Snapshot map[PID]Proc

// Source captures process snapshots from the underlying platform.
//
// Capturing may be slow (it walks the process table), so callers must not
// invoke Snapshot while holding locks on shared state.
type Source interface {
	// Snapshot returns a fresh view of all observable processes.
	Snapshot(ctx context.Context) (Snapshot, error)
}
