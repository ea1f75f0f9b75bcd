// Package snapshot captures per-process disk I/O counters and turns pairs
// of captures into per-application usage deltas.
//
// # Capture Model
//
// A Source produces an immutable Snapshot: every observable process keyed
// by PID, carrying its command name and cumulative I/O byte counter.
// Consecutive snapshots are compared with Diff to produce a Delta of
// per-application byte increments, which feeds the usage ledger.
//
// # PID Reuse
//
// Operating systems recycle PIDs. Diff guards against reuse by requiring
// the same PID to carry the same name in both snapshots before any bytes
// are attributed. A recycled PID therefore contributes nothing until the
// next capture pair establishes its identity.
//
// # Platforms
//
// ProcfsSource reads the /proc filesystem and is only available on Linux.
// Other platforms can supply their own Source implementation.
package snapshot
