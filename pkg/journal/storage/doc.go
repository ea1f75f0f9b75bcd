// Package storage provides storage backends for journal entries.
//
// # Storage Backends
//
// Two implementations of the journal.Storage interface are provided:
//
//   - SQLite: Durable single-file database, the default for the daemon
//   - Memory: In-memory storage for testing and ephemeral journaling
//
// # SQLite Backend
//
// The SQLite backend runs in WAL mode so journal writes never block
// concurrent reads from the history command. The schema version is tracked
// in a schema_version table for future migrations.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: "data/journal.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.Store(ctx, entry)
//
//	entries, err := store.Query(ctx, &journal.Query{
//	    App:   "firefox",
//	    Limit: 100,
//	})
package storage
