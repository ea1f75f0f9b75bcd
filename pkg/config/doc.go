// Package config provides configuration management for Datawarden Vigil.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention DATAWARDEN_SECTION_FIELD.
// For example:
//
//   - DATAWARDEN_MONITOR_DATA_LIMIT_BYTES overrides monitor.data_limit_bytes
//   - DATAWARDEN_ALERTS_COOLDOWN_WINDOW overrides alerts.cooldown_window
//   - DATAWARDEN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Monitor.CheckInterval)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Hot Reload
//
// When watch_config is enabled, a Watcher observes the configuration file
// and calls ReloadConfig after each (debounced) change. The daemon then
// re-applies the runtime-tunable settings: the data limit and the alert
// cooldown window. Settings that shape long-lived resources, such as the
// store backend or the journal database path, require a restart.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Lower bounds on the monitor cadence (check_interval >= 1s,
//     persist_interval >= 10s, data_limit_bytes >= 1 MiB)
//   - Enum checks (e.g., notifier must be desktop, log, or none)
//   - Range validation (e.g., compression level must be 0-9)
//   - Conditional requirements (e.g., archive path when archiving is on)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - monitor.check_interval: check interval must be at least 1s, got 250ms
//	  - alerts.notifier: invalid notifier "growl": must be 'desktop', 'log', or 'none'
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	monitor:
//	  data_limit_bytes: 1073741824
//	  check_interval: "60s"
//
//	alerts:
//	  cooldown_window: "5m"
//	  notifier: "desktop"
//
//	store:
//	  backend: "file"
//	  path: "data/vigil.state"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "auto"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
