package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the journal database schema.
const Schema = `
-- Alert attempt journal
CREATE TABLE IF NOT EXISTS alerts (
    id TEXT PRIMARY KEY,
    time TIMESTAMP NOT NULL,
    app TEXT NOT NULL,

    -- Byte counts are uint64 and stored as text; SQLite integers are
    -- signed and would truncate values above 2^63-1
    usage_bytes TEXT NOT NULL,
    limit_bytes TEXT NOT NULL,

    notifier TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error TEXT
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_alerts_time ON alerts(time);
CREATE INDEX IF NOT EXISTS idx_alerts_app ON alerts(app);
CREATE INDEX IF NOT EXISTS idx_alerts_outcome ON alerts(outcome);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
