package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "monitor.check_interval").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateMonitor(&cfg.Monitor)...)
	errs = append(errs, validateAlerts(&cfg.Alerts)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateMonitor validates the accounting loop configuration.
// The floors come from the monitor itself: below them the daemon either
// spins on process sampling or alerts on noise.
func validateMonitor(cfg *MonitorConfig) []FieldError {
	var errs []FieldError

	if cfg.DataLimitBytes < MinDataLimitBytes {
		errs = append(errs, FieldError{
			Field:   "monitor.data_limit_bytes",
			Message: fmt.Sprintf("data limit must be at least %d bytes (1 MiB), got %d", MinDataLimitBytes, cfg.DataLimitBytes),
		})
	}
	if cfg.CheckInterval < MinCheckInterval {
		errs = append(errs, FieldError{
			Field:   "monitor.check_interval",
			Message: fmt.Sprintf("check interval must be at least %v, got %v", MinCheckInterval, cfg.CheckInterval),
		})
	}
	if cfg.PersistInterval < MinPersistInterval {
		errs = append(errs, FieldError{
			Field:   "monitor.persist_interval",
			Message: fmt.Sprintf("persist interval must be at least %v, got %v", MinPersistInterval, cfg.PersistInterval),
		})
	}

	return errs
}

// validateAlerts validates alert delivery and journal configuration.
func validateAlerts(cfg *AlertsConfig) []FieldError {
	var errs []FieldError

	if cfg.CooldownWindow < 0 {
		errs = append(errs, FieldError{
			Field:   "alerts.cooldown_window",
			Message: "cooldown window must be non-negative",
		})
	}

	if cfg.CooldownRetention != 0 && cfg.CooldownRetention < cfg.CooldownWindow {
		errs = append(errs, FieldError{
			Field:   "alerts.cooldown_retention",
			Message: fmt.Sprintf("cooldown retention must be at least the cooldown window (%v), got %v", cfg.CooldownWindow, cfg.CooldownRetention),
		})
	}

	validNotifiers := map[string]bool{"desktop": true, "log": true, "none": true}
	if cfg.Notifier == "" {
		errs = append(errs, FieldError{
			Field:   "alerts.notifier",
			Message: "notifier is required",
		})
	} else if !validNotifiers[cfg.Notifier] {
		errs = append(errs, FieldError{
			Field:   "alerts.notifier",
			Message: fmt.Sprintf("invalid notifier %q: must be 'desktop', 'log', or 'none'", cfg.Notifier),
		})
	}

	errs = append(errs, validateJournal(&cfg.Journal)...)

	return errs
}

// validateJournal validates alert journal configuration.
func validateJournal(cfg *JournalConfig) []FieldError {
	var errs []FieldError

	// If the journal is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	validBackends := map[string]bool{"sqlite": true, "memory": true}
	if cfg.Backend == "" {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.backend",
			Message: "backend is required when the journal is enabled",
		})
	} else if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'sqlite' or 'memory'", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" {
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{
				Field:   "alerts.journal.sqlite.path",
				Message: "SQLite path is required when backend is 'sqlite'",
			})
		}
		if cfg.SQLite.MaxOpenConns < 0 {
			errs = append(errs, FieldError{
				Field:   "alerts.journal.sqlite.max_open_conns",
				Message: "max open connections must be non-negative",
			})
		}
		if cfg.SQLite.MaxIdleConns < 0 {
			errs = append(errs, FieldError{
				Field:   "alerts.journal.sqlite.max_idle_conns",
				Message: "max idle connections must be non-negative",
			})
		}
		if cfg.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "alerts.journal.sqlite.busy_timeout",
				Message: "busy timeout must be positive",
			})
		}
	}

	if cfg.Recorder.AsyncBuffer < 0 {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.recorder.async_buffer",
			Message: "async buffer must be non-negative",
		})
	}
	if cfg.Recorder.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.recorder.write_timeout",
			Message: "write timeout must be positive",
		})
	}

	if cfg.Retention.Days > MaxRetentionDays {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.retention.days",
			Message: fmt.Sprintf("retention days exceeds reasonable limit (%d days / 10 years)", MaxRetentionDays),
		})
	}
	if cfg.Retention.MaxEntries < 0 {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.retention.max_entries",
			Message: "max entries must be non-negative",
		})
	}
	if cfg.Retention.ArchiveBeforeDelete && cfg.Retention.ArchivePath == "" {
		errs = append(errs, FieldError{
			Field:   "alerts.journal.retention.archive_path",
			Message: "archive path is required when archive_before_delete is enabled",
		})
	}

	return errs
}

// validateStore validates usage state persistence configuration.
func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	validBackends := map[string]bool{"file": true, "sqlite": true}
	if cfg.Backend == "" {
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: "backend is required",
		})
	} else if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'file' or 'sqlite'", cfg.Backend),
		})
	}

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "store.path",
			Message: "path is required",
		})
	}

	if cfg.CompressionLevel < 0 || cfg.CompressionLevel > MaxCompressionLevel {
		errs = append(errs, FieldError{
			Field:   "store.compression_level",
			Message: fmt.Sprintf("compression level must be between 0 and %d, got %d", MaxCompressionLevel, cfg.CompressionLevel),
		})
	}

	if cfg.Backend == "sqlite" {
		if cfg.SQLite.CheckpointInterval < 0 {
			errs = append(errs, FieldError{
				Field:   "store.sqlite.checkpoint_interval",
				Message: "checkpoint interval must be positive",
			})
		}
		if cfg.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "store.sqlite.busy_timeout",
				Message: "busy timeout must be positive",
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"auto": true, "json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'auto', 'json', or 'text'", cfg.Logging.Format),
		})
	}

	// Validate metrics endpoint
	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if cfg.Metrics.Path == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path is required when metrics are enabled",
			})
		} else if cfg.Metrics.Path[0] != '/' {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "metrics path must start with /",
			})
		}
	}

	return errs
}
