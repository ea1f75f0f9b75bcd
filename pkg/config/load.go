package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention DATAWARDEN_SECTION_FIELD (e.g., DATAWARDEN_MONITOR_CHECK_INTERVAL).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults)
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format DATAWARDEN_SECTION_FIELD. Values that
// fail to parse are ignored; validation catches the resulting gaps.
func applyEnvOverrides(cfg *Config) {
	// Monitor overrides
	if val := os.Getenv("DATAWARDEN_MONITOR_DATA_LIMIT_BYTES"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			cfg.Monitor.DataLimitBytes = n
		}
	}
	if val := os.Getenv("DATAWARDEN_MONITOR_CHECK_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Monitor.CheckInterval = d
		}
	}
	if val := os.Getenv("DATAWARDEN_MONITOR_PERSIST_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Monitor.PersistInterval = d
		}
	}

	// Alerts overrides
	if val := os.Getenv("DATAWARDEN_ALERTS_COOLDOWN_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Alerts.CooldownWindow = d
		}
	}
	if val := os.Getenv("DATAWARDEN_ALERTS_NOTIFIER"); val != "" {
		cfg.Alerts.Notifier = val
	}

	// Journal overrides
	if val := os.Getenv("DATAWARDEN_ALERTS_JOURNAL_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Alerts.Journal.Enabled = b
		}
	}
	if val := os.Getenv("DATAWARDEN_ALERTS_JOURNAL_BACKEND"); val != "" {
		cfg.Alerts.Journal.Backend = val
	}
	if val := os.Getenv("DATAWARDEN_ALERTS_JOURNAL_SQLITE_PATH"); val != "" {
		cfg.Alerts.Journal.SQLite.Path = val
	}
	if val := os.Getenv("DATAWARDEN_ALERTS_JOURNAL_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Alerts.Journal.Retention.Days = i
		}
	}
	if val := os.Getenv("DATAWARDEN_ALERTS_JOURNAL_RETENTION_MAX_ENTRIES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Alerts.Journal.Retention.MaxEntries = i
		}
	}

	// Store overrides
	if val := os.Getenv("DATAWARDEN_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("DATAWARDEN_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("DATAWARDEN_STORE_COMPRESSION_LEVEL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.CompressionLevel = i
		}
	}
	if val := os.Getenv("DATAWARDEN_STORE_RESET_ON_CORRUPT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.ResetOnCorrupt = b
		}
	}

	// Telemetry overrides
	if val := os.Getenv("DATAWARDEN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("DATAWARDEN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("DATAWARDEN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("DATAWARDEN_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}

	// Watch override
	if val := os.Getenv("DATAWARDEN_WATCH_CONFIG"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.WatchConfig = b
		}
	}
}
