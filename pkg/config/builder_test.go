package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithDataLimit sets the per-application data limit.
func (b *ConfigBuilder) WithDataLimit(bytes uint64) *ConfigBuilder {
	b.cfg.Monitor.DataLimitBytes = bytes
	return b
}

// WithCheckInterval sets the process sampling interval.
func (b *ConfigBuilder) WithCheckInterval(d time.Duration) *ConfigBuilder {
	b.cfg.Monitor.CheckInterval = d
	return b
}

// WithPersistInterval sets the state persistence interval.
func (b *ConfigBuilder) WithPersistInterval(d time.Duration) *ConfigBuilder {
	b.cfg.Monitor.PersistInterval = d
	return b
}

// WithCooldownWindow sets the alert cooldown window.
func (b *ConfigBuilder) WithCooldownWindow(d time.Duration) *ConfigBuilder {
	b.cfg.Alerts.CooldownWindow = d
	return b
}

// WithNotifier sets the alert notifier backend.
func (b *ConfigBuilder) WithNotifier(notifier string) *ConfigBuilder {
	b.cfg.Alerts.Notifier = notifier
	return b
}

// WithJournalEnabled enables the alert journal with the given backend.
func (b *ConfigBuilder) WithJournalEnabled(backend string) *ConfigBuilder {
	b.cfg.Alerts.Journal.Enabled = true
	b.cfg.Alerts.Journal.Backend = backend
	return b
}

// WithJournalSQLitePath sets the journal database path and selects the
// sqlite backend.
func (b *ConfigBuilder) WithJournalSQLitePath(path string) *ConfigBuilder {
	b.cfg.Alerts.Journal.Enabled = true
	b.cfg.Alerts.Journal.Backend = "sqlite"
	b.cfg.Alerts.Journal.SQLite.Path = path
	return b
}

// WithStoreBackend sets the usage store backend.
func (b *ConfigBuilder) WithStoreBackend(backend string) *ConfigBuilder {
	b.cfg.Store.Backend = backend
	return b
}

// WithStorePath sets the usage store path.
func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.Store.Path = path
	return b
}

// WithCompressionLevel sets the file backend compression level.
func (b *ConfigBuilder) WithCompressionLevel(level int) *ConfigBuilder {
	b.cfg.Store.CompressionLevel = level
	return b
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithLoggingFormat sets the logging format.
func (b *ConfigBuilder) WithLoggingFormat(format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithMetricsEnabled sets whether metrics are enabled.
func (b *ConfigBuilder) WithMetricsEnabled(enabled bool) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = enabled
	return b
}

// WithWatchConfig sets whether the configuration file is watched.
func (b *ConfigBuilder) WithWatchConfig(enabled bool) *ConfigBuilder {
	b.cfg.WatchConfig = enabled
	return b
}

// MinimalConfig returns a minimal valid configuration for testing.
// This is useful for tests that don't care about most configuration values.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
