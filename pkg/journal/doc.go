// Package journal provides durable recording of alert attempts made by the
// Datawarden Vigil monitor. Every attempt to notify the user about an
// application exceeding its disk I/O limit is journaled as an immutable
// entry, whether or not delivery succeeded.
//
// # Architecture
//
// The journal consists of three layers:
//
//  1. Recorder - Accepts alert attempts and writes them asynchronously
//  2. Storage Backend - Persists entries (SQLite, memory)
//  3. Retention - Prunes old entries on a schedule
//
// # Entries
//
// Each entry captures:
//   - The application that exceeded its limit
//   - Usage and limit values at attempt time
//   - The notifier used and whether delivery succeeded
//   - The delivery error, if any
//
// Checks suppressed by the alert cooldown window are not attempts and never
// reach the journal.
//
// # Recording Flow
//
// Entries are recorded asynchronously so the accounting loop never waits on
// storage:
//
//	Limit Exceeded -> Notifier Send
//	     |
//	Journal Recorder (async)
//	     |
//	Storage Backend (SQLite)
//
// # Basic Usage
//
//	// Initialize storage backend
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: "data/journal.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	// Create recorder
//	rec := recorder.NewRecorder(store, recorder.DefaultConfig())
//	defer rec.Close()
//
//	// Record an attempt (async, does not wait on storage)
//	rec.Record(ctx, &journal.Entry{
//	    App:        "firefox",
//	    UsageBytes: 2 << 30,
//	    LimitBytes: 1 << 30,
//	    Notifier:   "desktop",
//	    Outcome:    journal.OutcomeDelivered,
//	})
//
// # Querying
//
//	query := &journal.Query{
//	    App:     "firefox",
//	    Outcome: journal.OutcomeFailed,
//	    Limit:   100,
//	}
//	entries, err := store.Query(ctx, query)
//
// # Retention
//
// Entries can be pruned automatically by age and count:
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    RetentionDays: 90,
//	    PruneSchedule: "0 3 * * *", // Daily at 3 AM
//	})
//	pruner.Start(ctx)
//	defer pruner.Stop()
//
// # Thread Safety
//
// All journal types are safe for concurrent use:
//   - Recorder: thread-safe async channel
//   - Storage: thread-safe, WAL mode for concurrent reads/writes
//   - Query: stateless, can be executed concurrently
package journal
