package config

import "time"

// Default values for configuration fields.
const (
	// Monitor defaults
	DefaultDataLimitBytes  = uint64(1 << 30) // 1 GiB
	DefaultCheckInterval   = 60 * time.Second
	DefaultPersistInterval = 5 * time.Minute

	// Alerts defaults
	DefaultCooldownWindow = 5 * time.Minute
	DefaultNotifier       = "desktop"

	// Journal defaults
	DefaultJournalBackend       = "sqlite"
	DefaultJournalSQLitePath    = "data/journal.db"
	DefaultJournalMaxOpenConns  = 4
	DefaultJournalMaxIdleConns  = 2
	DefaultJournalBusyTimeout   = 5 * time.Second
	DefaultJournalAsyncBuffer   = 256
	DefaultJournalWriteTimeout  = 5 * time.Second
	DefaultRetentionDays        = 90
	DefaultRetentionSchedule    = "0 3 * * *"
	DefaultRetentionArchivePath = "data/archives/"

	// Store defaults
	DefaultStoreBackend            = "file"
	DefaultStorePath               = "data/vigil.state"
	DefaultStoreSQLitePath         = "data/vigil.db"
	DefaultStoreCompressionLevel   = 6
	DefaultStoreCheckpointInterval = 5 * time.Minute
	DefaultStoreBusyTimeout        = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "auto"
	DefaultMetricsListenAddress = "127.0.0.1:9477"
	DefaultMetricsPath          = "/metrics"
)

// Validation bounds. The monitor refuses configurations below these
// floors; anything tighter either hammers the process table or makes
// the limit meaningless.
const (
	MinDataLimitBytes   = uint64(1 << 20) // 1 MiB
	MinCheckInterval    = time.Second
	MinPersistInterval  = 10 * time.Second
	MaxCompressionLevel = 9
	MaxRetentionDays    = 3650 // 10 years
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Monitor defaults
	if cfg.Monitor.DataLimitBytes == 0 {
		cfg.Monitor.DataLimitBytes = DefaultDataLimitBytes
	}
	if cfg.Monitor.CheckInterval == 0 {
		cfg.Monitor.CheckInterval = DefaultCheckInterval
	}
	if cfg.Monitor.PersistInterval == 0 {
		cfg.Monitor.PersistInterval = DefaultPersistInterval
	}

	// Alerts defaults
	if cfg.Alerts.CooldownWindow == 0 {
		cfg.Alerts.CooldownWindow = DefaultCooldownWindow
	}
	if cfg.Alerts.Notifier == "" {
		cfg.Alerts.Notifier = DefaultNotifier
	}

	// Journal defaults. Enabled stays false unless the configuration
	// asks for it.
	if cfg.Alerts.Journal.Backend == "" {
		cfg.Alerts.Journal.Backend = DefaultJournalBackend
	}
	if cfg.Alerts.Journal.SQLite.Path == "" {
		cfg.Alerts.Journal.SQLite.Path = DefaultJournalSQLitePath
	}
	if cfg.Alerts.Journal.SQLite.MaxOpenConns == 0 {
		cfg.Alerts.Journal.SQLite.MaxOpenConns = DefaultJournalMaxOpenConns
	}
	if cfg.Alerts.Journal.SQLite.MaxIdleConns == 0 {
		cfg.Alerts.Journal.SQLite.MaxIdleConns = DefaultJournalMaxIdleConns
	}
	if cfg.Alerts.Journal.SQLite.BusyTimeout == 0 {
		cfg.Alerts.Journal.SQLite.BusyTimeout = DefaultJournalBusyTimeout
	}
	if cfg.Alerts.Journal.Recorder.AsyncBuffer == 0 {
		cfg.Alerts.Journal.Recorder.AsyncBuffer = DefaultJournalAsyncBuffer
	}
	if cfg.Alerts.Journal.Recorder.WriteTimeout == 0 {
		cfg.Alerts.Journal.Recorder.WriteTimeout = DefaultJournalWriteTimeout
	}

	// Retention defaults. Days zero means "use the default"; disabling
	// age-based pruning takes an explicit negative value.
	if cfg.Alerts.Journal.Retention.Days == 0 {
		cfg.Alerts.Journal.Retention.Days = DefaultRetentionDays
	}
	if cfg.Alerts.Journal.Retention.PruneSchedule == "" {
		cfg.Alerts.Journal.Retention.PruneSchedule = DefaultRetentionSchedule
	}
	if cfg.Alerts.Journal.Retention.ArchivePath == "" {
		cfg.Alerts.Journal.Retention.ArchivePath = DefaultRetentionArchivePath
	}

	// Store defaults. The default path depends on the backend, so the
	// backend default has to land first.
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Path == "" {
		if cfg.Store.Backend == "sqlite" {
			cfg.Store.Path = DefaultStoreSQLitePath
		} else {
			cfg.Store.Path = DefaultStorePath
		}
	}
	if cfg.Store.CompressionLevel == 0 {
		cfg.Store.CompressionLevel = DefaultStoreCompressionLevel
	}
	if cfg.Store.SQLite.CheckpointInterval == 0 {
		cfg.Store.SQLite.CheckpointInterval = DefaultStoreCheckpointInterval
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultStoreBusyTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
