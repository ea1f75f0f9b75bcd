package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteBackend persists the ledger as one row per application. It suits
// installs that want to inspect or mutate state with external tooling.
//
// The backend uses a write-ahead log (WAL) for better concurrent
// performance and checkpoints it periodically in the background.
type SQLiteBackend struct {
	db                 *sql.DB
	dbPath             string
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	// preparedStatements contains pre-compiled SQL statements for reuse
	loadStmt   *sql.Stmt
	insertStmt *sql.Stmt
}

// SQLiteBackendConfig configures the SQLite backend.
type SQLiteBackendConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteBackend creates a new SQLite storage backend with default settings.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	return NewSQLiteBackendWithConfig(SQLiteBackendConfig{
		DBPath:             dbPath,
		CheckpointInterval: 5 * time.Minute,
		BusyTimeout:        5 * time.Second,
	})
}

// NewSQLiteBackendWithConfig creates a new SQLite backend with custom configuration.
func NewSQLiteBackendWithConfig(cfg SQLiteBackendConfig) (*SQLiteBackend, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	backend := &SQLiteBackend{
		db:                 db,
		dbPath:             cfg.DBPath,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := backend.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go backend.checkpointLoop()

	return backend, nil
}

// initSchema creates the database schema if it doesn't exist.
// Totals are stored as text because SQLite integers are signed and the
// ledger counts in unsigned 64-bit bytes.
func (s *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage_totals (
		app TEXT PRIMARY KEY,
		total_bytes TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteBackend) prepareStatements() error {
	var err error

	s.loadStmt, err = s.db.Prepare(`SELECT app, total_bytes FROM usage_totals`)
	if err != nil {
		return fmt.Errorf("failed to prepare load statement: %w", err)
	}

	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO usage_totals (app, total_bytes, updated_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}

	return nil
}

// Load retrieves all persisted totals. An empty table is a fresh install
// and yields an empty map.
func (s *SQLiteBackend) Load(ctx context.Context) (map[string]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.loadStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]uint64)
	for rows.Next() {
		var (
			app string
			raw string
		)
		if err := rows.Scan(&app, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		total, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid total for %q: %w", app, err)
		}
		totals[app] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return totals, nil
}

// Save replaces the persisted totals wholesale in a single transaction.
func (s *SQLiteBackend) Save(ctx context.Context, totals map[string]uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM usage_totals`); err != nil {
		return fmt.Errorf("failed to clear totals: %w", err)
	}

	now := time.Now().Unix()
	insert := tx.StmtContext(ctx, s.insertStmt)
	for app, total := range totals {
		if _, err := insert.ExecContext(ctx, app, strconv.FormatUint(total, 10), now); err != nil {
			return fmt.Errorf("failed to save total for %q: %w", app, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit totals: %w", err)
	}

	return nil
}

// Close releases any resources held by the backend.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteBackend) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		if s.loadStmt != nil {
			s.loadStmt.Close()
		}
		if s.insertStmt != nil {
			s.insertStmt.Close()
		}

		if s.db != nil {
			// Run final checkpoint
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteBackend) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}
