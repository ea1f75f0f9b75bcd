package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestInitialize(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
monitor:
  check_interval: "45s"

telemetry:
  logging:
    level: "info"
    format: "json"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	err := Initialize(configPath)
	if err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config after initialization")
	}

	if cfg.Monitor.CheckInterval.String() != "45s" {
		t.Errorf("expected check interval %q, got %q", "45s", cfg.Monitor.CheckInterval)
	}
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	tmpDir := t.TempDir()
	configPath1 := filepath.Join(tmpDir, "config1.yaml")
	configPath2 := filepath.Join(tmpDir, "config2.yaml")

	config1Content := `
alerts:
  notifier: "desktop"
`

	config2Content := `
alerts:
  notifier: "log"
`

	if err := os.WriteFile(configPath1, []byte(config1Content), 0644); err != nil {
		t.Fatalf("failed to write config1 file: %v", err)
	}
	if err := os.WriteFile(configPath2, []byte(config2Content), 0644); err != nil {
		t.Fatalf("failed to write config2 file: %v", err)
	}

	// First initialization
	err := Initialize(configPath1)
	if err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	firstConfig := GetConfig()

	// Second initialization should be ignored
	Initialize(configPath2)

	secondConfig := GetConfig()

	// Should still have the first config
	if firstConfig.Alerts.Notifier != secondConfig.Alerts.Notifier {
		t.Error("second Initialize call should be ignored")
	}
	if secondConfig.Alerts.Notifier != "desktop" {
		t.Errorf("expected notifier %q, got %q", "desktop", secondConfig.Alerts.Notifier)
	}
}

func TestGetConfig_BeforeInitialize(t *testing.T) {
	// Reset global state
	globalConfig = nil

	cfg := GetConfig()
	if cfg != nil {
		t.Error("expected nil config before initialization")
	}
}

func TestSetConfig(t *testing.T) {
	// Reset global state
	globalConfig = nil

	testCfg := NewTestConfig().
		WithNotifier("log").
		Build()

	SetConfig(testCfg)

	retrievedCfg := GetConfig()
	if retrievedCfg == nil {
		t.Fatal("expected non-nil config after SetConfig")
	}

	if retrievedCfg.Alerts.Notifier != "log" {
		t.Errorf("expected notifier %q, got %q", "log", retrievedCfg.Alerts.Notifier)
	}
}

func TestReloadConfig(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	initialContent := `
monitor:
  data_limit_bytes: 1073741824

alerts:
  notifier: "desktop"

telemetry:
  logging:
    level: "info"
    format: "json"
`

	if err := os.WriteFile(configPath, []byte(initialContent), 0644); err != nil {
		t.Fatalf("failed to write initial config file: %v", err)
	}

	// Initialize with initial config
	if err := Initialize(configPath); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	initialCfg := GetConfig()
	if initialCfg.Monitor.DataLimitBytes != 1073741824 {
		t.Error("initial config not loaded correctly")
	}

	// Update the file
	updatedContent := `
monitor:
  data_limit_bytes: 2147483648

alerts:
  notifier: "log"

telemetry:
  logging:
    level: "debug"
    format: "text"
`

	if err := os.WriteFile(configPath, []byte(updatedContent), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	// Reload config
	if err := ReloadConfig(configPath); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	reloadedCfg := GetConfig()
	if reloadedCfg.Monitor.DataLimitBytes != 2147483648 {
		t.Errorf("expected updated data limit %d, got %d", 2147483648, reloadedCfg.Monitor.DataLimitBytes)
	}
	if reloadedCfg.Alerts.Notifier != "log" {
		t.Errorf("expected updated notifier %q, got %q", "log", reloadedCfg.Alerts.Notifier)
	}
	if reloadedCfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected updated logging level %q, got %q", "debug", reloadedCfg.Telemetry.Logging.Level)
	}
}

func TestReloadConfig_ValidationFailure(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	validContent := `
alerts:
  notifier: "desktop"
`

	if err := os.WriteFile(configPath, []byte(validContent), 0644); err != nil {
		t.Fatalf("failed to write initial config file: %v", err)
	}

	// Initialize with valid config
	if err := Initialize(configPath); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}

	originalCfg := GetConfig()

	// Update file with invalid config
	invalidContent := `
alerts:
  notifier: "growl"
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("failed to write invalid config file: %v", err)
	}

	// Try to reload - should fail
	err := ReloadConfig(configPath)
	if err == nil {
		t.Fatal("expected error when reloading invalid config")
	}

	// Original config should be preserved
	currentCfg := GetConfig()
	if currentCfg.Alerts.Notifier != originalCfg.Alerts.Notifier {
		t.Error("original config should be preserved on reload failure")
	}
}

func TestMustGetConfig(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	// Test panic when not initialized
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustGetConfig to panic when not initialized")
		}
	}()

	MustGetConfig()
}

func TestMustGetConfig_AfterInitialize(t *testing.T) {
	// Reset global state
	globalConfig = nil
	initOnce = *new(sync.Once)

	SetConfig(MinimalConfig())

	// Should not panic
	cfg := MustGetConfig()
	if cfg == nil {
		t.Error("expected non-nil config from MustGetConfig")
	}
}
