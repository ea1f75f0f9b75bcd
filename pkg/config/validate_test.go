package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := MinimalConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		// Zero monitor values are all below the validation floors, and
		// the notifier and logging fields are empty.
	}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	// Verify error message includes multiple errors
	errMsg := validationErr.Error()
	if !strings.Contains(errMsg, "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", errMsg)
	}
}

func TestValidate_MonitorConfig(t *testing.T) {
	tests := []struct {
		name       string
		monitor    MonitorConfig
		wantError  bool
		errorField string
	}{
		{
			name: "valid monitor config",
			monitor: MonitorConfig{
				DataLimitBytes:  DefaultDataLimitBytes,
				CheckInterval:   DefaultCheckInterval,
				PersistInterval: DefaultPersistInterval,
			},
			wantError: false,
		},
		{
			name: "limit exactly at the floor",
			monitor: MonitorConfig{
				DataLimitBytes:  MinDataLimitBytes,
				CheckInterval:   MinCheckInterval,
				PersistInterval: MinPersistInterval,
			},
			wantError: false,
		},
		{
			name: "data limit below one MiB",
			monitor: MonitorConfig{
				DataLimitBytes:  1024,
				CheckInterval:   DefaultCheckInterval,
				PersistInterval: DefaultPersistInterval,
			},
			wantError:  true,
			errorField: "monitor.data_limit_bytes",
		},
		{
			name: "check interval below one second",
			monitor: MonitorConfig{
				DataLimitBytes:  DefaultDataLimitBytes,
				CheckInterval:   250 * time.Millisecond,
				PersistInterval: DefaultPersistInterval,
			},
			wantError:  true,
			errorField: "monitor.check_interval",
		},
		{
			name: "persist interval below ten seconds",
			monitor: MonitorConfig{
				DataLimitBytes:  DefaultDataLimitBytes,
				CheckInterval:   DefaultCheckInterval,
				PersistInterval: 5 * time.Second,
			},
			wantError:  true,
			errorField: "monitor.persist_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateMonitor(&tt.monitor)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_AlertsConfig(t *testing.T) {
	tests := []struct {
		name       string
		alerts     AlertsConfig
		wantError  bool
		errorField string
	}{
		{
			name: "valid alerts config",
			alerts: AlertsConfig{
				CooldownWindow: DefaultCooldownWindow,
				Notifier:       "desktop",
			},
			wantError: false,
		},
		{
			name: "log notifier is valid",
			alerts: AlertsConfig{
				CooldownWindow: DefaultCooldownWindow,
				Notifier:       "log",
			},
			wantError: false,
		},
		{
			name: "unknown notifier",
			alerts: AlertsConfig{
				CooldownWindow: DefaultCooldownWindow,
				Notifier:       "growl",
			},
			wantError:  true,
			errorField: "alerts.notifier",
		},
		{
			name: "empty notifier",
			alerts: AlertsConfig{
				CooldownWindow: DefaultCooldownWindow,
			},
			wantError:  true,
			errorField: "alerts.notifier",
		},
		{
			name: "negative cooldown window",
			alerts: AlertsConfig{
				CooldownWindow: -time.Minute,
				Notifier:       "desktop",
			},
			wantError:  true,
			errorField: "alerts.cooldown_window",
		},
		{
			name: "cooldown retention at least the window",
			alerts: AlertsConfig{
				CooldownWindow:    DefaultCooldownWindow,
				CooldownRetention: 24 * time.Hour,
				Notifier:          "desktop",
			},
			wantError: false,
		},
		{
			name: "cooldown retention below the window",
			alerts: AlertsConfig{
				CooldownWindow:    DefaultCooldownWindow,
				CooldownRetention: time.Minute,
				Notifier:          "desktop",
			},
			wantError:  true,
			errorField: "alerts.cooldown_retention",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateAlerts(&tt.alerts)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_JournalConfig(t *testing.T) {
	tests := []struct {
		name       string
		journal    JournalConfig
		wantError  bool
		errorField string
	}{
		{
			name:      "disabled journal skips validation",
			journal:   JournalConfig{Enabled: false, Backend: "carrier-pigeon"},
			wantError: false,
		},
		{
			name: "valid sqlite journal",
			journal: JournalConfig{
				Enabled: true,
				Backend: "sqlite",
				SQLite:  JournalSQLiteConfig{Path: "data/journal.db"},
			},
			wantError: false,
		},
		{
			name: "valid memory journal",
			journal: JournalConfig{
				Enabled: true,
				Backend: "memory",
			},
			wantError: false,
		},
		{
			name: "unknown backend",
			journal: JournalConfig{
				Enabled: true,
				Backend: "postgres",
			},
			wantError:  true,
			errorField: "alerts.journal.backend",
		},
		{
			name: "sqlite backend without path",
			journal: JournalConfig{
				Enabled: true,
				Backend: "sqlite",
			},
			wantError:  true,
			errorField: "alerts.journal.sqlite.path",
		},
		{
			name: "retention days over ten years",
			journal: JournalConfig{
				Enabled:   true,
				Backend:   "memory",
				Retention: RetentionConfig{Days: 5000},
			},
			wantError:  true,
			errorField: "alerts.journal.retention.days",
		},
		{
			name: "archive enabled without path",
			journal: JournalConfig{
				Enabled:   true,
				Backend:   "memory",
				Retention: RetentionConfig{ArchiveBeforeDelete: true},
			},
			wantError:  true,
			errorField: "alerts.journal.retention.archive_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateJournal(&tt.journal)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_StoreConfig(t *testing.T) {
	tests := []struct {
		name       string
		store      StoreConfig
		wantError  bool
		errorField string
	}{
		{
			name: "valid file store",
			store: StoreConfig{
				Backend:          "file",
				Path:             "data/vigil.state",
				CompressionLevel: 6,
			},
			wantError: false,
		},
		{
			name: "valid sqlite store",
			store: StoreConfig{
				Backend:          "sqlite",
				Path:             "data/vigil.db",
				CompressionLevel: 6,
			},
			wantError: false,
		},
		{
			name: "unknown backend",
			store: StoreConfig{
				Backend:          "redis",
				Path:             "data/vigil.state",
				CompressionLevel: 6,
			},
			wantError:  true,
			errorField: "store.backend",
		},
		{
			name: "empty path",
			store: StoreConfig{
				Backend:          "file",
				CompressionLevel: 6,
			},
			wantError:  true,
			errorField: "store.path",
		},
		{
			name: "compression level above nine",
			store: StoreConfig{
				Backend:          "file",
				Path:             "data/vigil.state",
				CompressionLevel: 10,
			},
			wantError:  true,
			errorField: "store.compression_level",
		},
		{
			name: "negative compression level",
			store: StoreConfig{
				Backend:          "file",
				Path:             "data/vigil.state",
				CompressionLevel: -2,
			},
			wantError:  true,
			errorField: "store.compression_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateStore(&tt.store)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

func TestValidate_TelemetryConfig(t *testing.T) {
	tests := []struct {
		name       string
		telemetry  TelemetryConfig
		wantError  bool
		errorField string
	}{
		{
			name: "valid telemetry config",
			telemetry: TelemetryConfig{
				Logging: LoggingConfig{Level: "info", Format: "auto"},
			},
			wantError: false,
		},
		{
			name: "invalid logging level",
			telemetry: TelemetryConfig{
				Logging: LoggingConfig{Level: "verbose", Format: "json"},
			},
			wantError:  true,
			errorField: "telemetry.logging.level",
		},
		{
			name: "invalid logging format",
			telemetry: TelemetryConfig{
				Logging: LoggingConfig{Level: "info", Format: "xml"},
			},
			wantError:  true,
			errorField: "telemetry.logging.format",
		},
		{
			name: "metrics enabled without listen address",
			telemetry: TelemetryConfig{
				Logging: LoggingConfig{Level: "info", Format: "json"},
				Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
			},
			wantError:  true,
			errorField: "telemetry.metrics.listen_address",
		},
		{
			name: "metrics path without leading slash",
			telemetry: TelemetryConfig{
				Logging: LoggingConfig{Level: "info", Format: "json"},
				Metrics: MetricsConfig{Enabled: true, ListenAddress: "127.0.0.1:9477", Path: "metrics"},
			},
			wantError:  true,
			errorField: "telemetry.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validateTelemetry(&tt.telemetry)
			checkFieldErrors(t, errs, tt.wantError, tt.errorField)
		})
	}
}

// checkFieldErrors asserts the presence or absence of a validation error
// for a specific field.
func checkFieldErrors(t *testing.T, errs []FieldError, wantError bool, errorField string) {
	t.Helper()

	if wantError && len(errs) == 0 {
		t.Error("expected validation error, got none")
	}
	if !wantError && len(errs) > 0 {
		t.Errorf("expected no validation error, got: %v", errs)
	}
	if wantError && len(errs) > 0 {
		found := false
		for _, err := range errs {
			if err.Field == errorField {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected error for field %q, got errors: %v", errorField, errs)
		}
	}
}

func TestFieldError_Message(t *testing.T) {
	err := FieldError{Field: "monitor.check_interval", Message: "check interval must be at least 1s, got 250ms"}

	want := "monitor.check_interval: check interval must be at least 1s, got 250ms"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError_SingleError(t *testing.T) {
	err := ValidationError{Errors: []FieldError{
		{Field: "store.backend", Message: "backend is required"},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "store.backend") {
		t.Errorf("expected message to name the field, got %q", msg)
	}
	if strings.Contains(msg, "errors:") {
		t.Errorf("single error should not use the multi-error format, got %q", msg)
	}
}
