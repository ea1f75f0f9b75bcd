package config

import "time"

// Config is the root configuration structure for Datawarden Vigil.
// It contains all configuration sections for the accounting loop, alert
// delivery, state persistence, and telemetry.
type Config struct {
	// Monitor contains configuration for the accounting loop including the
	// per-application data limit and the check and persist cadence.
	Monitor MonitorConfig `yaml:"monitor"`

	// Alerts contains configuration for alert delivery including the
	// cooldown window, the notifier backend, and the alert journal.
	Alerts AlertsConfig `yaml:"alerts"`

	// Store contains configuration for usage state persistence including
	// backend selection and the on-disk location.
	Store StoreConfig `yaml:"store"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// WatchConfig controls whether the daemon watches the configuration
	// file and hot-reloads runtime-tunable settings (data limit, cooldown
	// window) when it changes. Settings that require a restart, such as
	// the store backend, are not reloaded.
	// Default: false
	WatchConfig bool `yaml:"watch_config"`
}

// MonitorConfig contains configuration for the accounting loop.
type MonitorConfig struct {
	// DataLimitBytes is the per-application disk I/O threshold in bytes.
	// An alert is dispatched when an application's running total strictly
	// exceeds this value. Must be at least 1 MiB.
	// Default: 1073741824 (1 GiB)
	DataLimitBytes uint64 `yaml:"data_limit_bytes"`

	// CheckInterval is how often processes are sampled and usage deltas
	// are folded into the ledger. Must be at least 1s.
	// Default: 60s
	CheckInterval time.Duration `yaml:"check_interval"`

	// PersistInterval is how often the running totals are written to the
	// store. Must be at least 10s. The totals are also written once on
	// shutdown regardless of this interval.
	// Default: 5m
	PersistInterval time.Duration `yaml:"persist_interval"`
}

// AlertsConfig contains configuration for alert delivery.
type AlertsConfig struct {
	// CooldownWindow is the minimum time between alerts for the same
	// application. Breaches inside the window are suppressed.
	// Default: 5m
	CooldownWindow time.Duration `yaml:"cooldown_window"`

	// Notifier selects the delivery backend. Valid values are "desktop"
	// (native desktop notification), "log" (structured log record only),
	// and "none" (alerts evaluated and journaled but not delivered).
	// Default: "desktop"
	Notifier string `yaml:"notifier"`

	// CooldownRetention enables eviction of stale cooldown entries: entries
	// whose last attempt is older than this are dropped hourly. Zero keeps
	// entries forever, matching the ever-growing map of earlier releases.
	// Must be at least the cooldown window when set, or pruning would
	// re-arm applications early.
	// Default: 0 (disabled)
	CooldownRetention time.Duration `yaml:"cooldown_retention"`

	// Journal contains configuration for the alert attempt journal.
	Journal JournalConfig `yaml:"journal"`
}

// JournalConfig contains configuration for the alert attempt journal.
// When enabled, every dispatch attempt is recorded with its outcome.
type JournalConfig struct {
	// Enabled controls whether alert attempts are journaled.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the journal storage backend. Valid values are
	// "sqlite" and "memory". The memory backend is lost on restart and
	// exists for tests and short-lived runs.
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite JournalSQLiteConfig `yaml:"sqlite"`

	// Recorder contains asynchronous recorder configuration.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention contains journal retention configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// JournalSQLiteConfig contains SQLite settings for the alert journal.
type JournalSQLiteConfig struct {
	// Path is the path to the SQLite database file.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 2
	MaxIdleConns int `yaml:"max_idle_conns"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig contains configuration for the asynchronous journal
// recorder. Entries are buffered in memory and written by a background
// worker so recording never blocks the accounting loop.
type RecorderConfig struct {
	// AsyncBuffer is the size of the in-memory entry buffer.
	// Default: 256
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the maximum duration for a single journal write.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig contains configuration for journal retention.
type RetentionConfig struct {
	// Days is how long journal entries are kept. Entries older than this
	// are pruned on the schedule below. Zero uses the default; a negative
	// value disables age-based pruning.
	// Default: 90
	Days int `yaml:"days"`

	// PruneSchedule is a cron expression controlling when pruning runs.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`

	// ArchiveBeforeDelete controls whether pruned entries are exported to
	// a JSON archive before deletion.
	// Default: false
	ArchiveBeforeDelete bool `yaml:"archive_before_delete"`

	// ArchivePath is the directory where archives are written.
	// Default: "data/archives/"
	ArchivePath string `yaml:"archive_path"`

	// MaxEntries caps the total number of journal entries. When the cap
	// is exceeded the oldest entries are pruned. Zero means unlimited.
	// Default: 0
	MaxEntries int64 `yaml:"max_entries"`
}

// StoreConfig contains configuration for usage state persistence.
type StoreConfig struct {
	// Backend selects the persistence backend. Valid values are "file"
	// (single compressed state blob) and "sqlite" (one row per
	// application, inspectable with external tooling).
	// Default: "file"
	Backend string `yaml:"backend"`

	// Path is the state file location for the file backend, or the
	// database file location for the sqlite backend.
	// Default: "data/vigil.state" (file) or "data/vigil.db" (sqlite)
	Path string `yaml:"path"`

	// CompressionLevel is the gzip level used by the file backend.
	// Levels 1 (fastest compression) through 9 (smallest output). In the
	// yaml schema zero means "use the default"; the stored-uncompressed
	// level 0 cannot be selected through configuration.
	// Default: 6
	CompressionLevel int `yaml:"compression_level"`

	// ResetOnCorrupt controls what happens when the state file cannot be
	// decoded at startup. When false the daemon refuses to start and
	// reports the corruption; when true it logs the error, moves the bad
	// file aside, and starts with an empty ledger.
	// Default: false
	ResetOnCorrupt bool `yaml:"reset_on_corrupt"`

	// SQLite contains settings specific to the sqlite backend.
	SQLite StoreSQLiteConfig `yaml:"sqlite"`
}

// StoreSQLiteConfig contains SQLite settings for the usage store.
type StoreSQLiteConfig struct {
	// CheckpointInterval is how often the write-ahead log is checkpointed.
	// Default: 5m
	CheckpointInterval time.Duration `yaml:"checkpoint_interval"`

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level. Valid values are "debug", "info",
	// "warn", and "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format. Valid values are "json", "text",
	// and "auto". With "auto" the daemon picks text when standard output
	// is a terminal and JSON otherwise.
	// Default: "auto"
	Format string `yaml:"format"`

	// AddSource controls whether log records include the source file and
	// line of the logging call.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics HTTP endpoint is served.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address and port for the metrics endpoint.
	// Format: "host:port".
	// Default: "127.0.0.1:9477"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path the metrics are served on.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
