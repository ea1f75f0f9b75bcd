package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"datawarden-hq/vigil/pkg/journal"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 2
	MaxIdleConns int

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/journal.db",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage creates a new SQLite storage backend.
// It initializes the database schema and enables WAL mode.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "journal.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite journal storage initialized", "path", config.Path)

	return s, nil
}

// initialize sets up the database schema. The journal always runs in WAL
// mode so the daemon's writer never blocks the history CLI's reads.
func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return journal.NewStorageError("sqlite", "enable_wal", err)
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return journal.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return journal.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return journal.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return journal.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return journal.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a journal entry to the database.
func (s *SQLiteStorage) Store(ctx context.Context, entry *journal.Entry) error {
	query := `
		INSERT INTO alerts (
			id, time, app, usage_bytes, limit_bytes, notifier, outcome, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	// Convert empty error to NULL
	var errorVal interface{}
	if entry.Error != "" {
		errorVal = entry.Error
	}

	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Time.UTC(),
		entry.App,
		strconv.FormatUint(entry.UsageBytes, 10),
		strconv.FormatUint(entry.LimitBytes, 10),
		entry.Notifier,
		entry.Outcome,
		errorVal,
	)
	if err != nil {
		return journal.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves journal entries matching the query filters, newest first.
func (s *SQLiteStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT id, time, app, usage_bytes, limit_bytes, notifier, outcome, error FROM alerts"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += " ORDER BY time DESC"

	if query.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", query.Limit)
	}
	if query.Offset > 0 {
		if query.Limit <= 0 {
			// SQLite requires LIMIT before OFFSET; -1 means unlimited
			sqlQuery += " LIMIT -1"
		}
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	entries := []*journal.Entry{}
	for rows.Next() {
		entry, err := s.scanRow(rows)
		if err != nil {
			return nil, journal.NewStorageError("sqlite", "scan", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, journal.NewStorageError("sqlite", "query", err)
	}

	return entries, nil
}

// Count returns the number of journal entries matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM alerts"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, journal.NewStorageError("sqlite", "count", err)
	}

	return count, nil
}

// Delete removes journal entries matching the query filters.
// Returns the number of entries deleted.
func (s *SQLiteStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	whereClause, args := s.buildWhereClause(query)

	sqlQuery := "DELETE FROM alerts"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, journal.NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}

// Close releases resources held by the storage backend.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return journal.NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite journal storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func (s *SQLiteStorage) buildWhereClause(query *journal.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.Since != nil {
		conditions = append(conditions, "time >= ?")
		args = append(args, query.Since.UTC())
	}
	if query.Until != nil {
		conditions = append(conditions, "time <= ?")
		args = append(args, query.Until.UTC())
	}
	if query.App != "" {
		conditions = append(conditions, "app = ?")
		args = append(args, query.App)
	}
	if query.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, query.Outcome)
	}

	return strings.Join(conditions, " AND "), args
}

// scanRow scans a database row into an Entry.
func (s *SQLiteStorage) scanRow(row *sql.Rows) (*journal.Entry, error) {
	var entry journal.Entry
	var usageBytes, limitBytes string
	var errorVal sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.Time,
		&entry.App,
		&usageBytes,
		&limitBytes,
		&entry.Notifier,
		&entry.Outcome,
		&errorVal,
	)
	if err != nil {
		return nil, err
	}

	entry.UsageBytes, err = strconv.ParseUint(usageBytes, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid usage_bytes %q: %w", usageBytes, err)
	}
	entry.LimitBytes, err = strconv.ParseUint(limitBytes, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid limit_bytes %q: %w", limitBytes, err)
	}

	if errorVal.Valid {
		entry.Error = errorVal.String
	}

	return &entry, nil
}
