// Package usage maintains the per-application disk usage ledger.
//
// # Overview
//
// The ledger maps application names to cumulative byte totals. Snapshot
// deltas are merged in as they are observed; totals only grow, saturating
// at the maximum counter value instead of wrapping. Replace is the single
// exception to monotonic growth and exists to restore persisted state at
// startup.
//
// # Persistence
//
// The ledger itself never touches disk. Callers take a consistent copy
// with Snapshot and hand it to a storage backend, so no ledger lock is
// held during I/O.
//
// # Thread Safety
//
// All operations are safe for concurrent use; each takes the ledger lock
// for the duration of a single map pass at most.
package usage
