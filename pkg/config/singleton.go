package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig is the process-wide configuration.
	globalConfig *Config

	// configMutex guards globalConfig.
	configMutex sync.RWMutex

	// initOnce makes Initialize first-call-wins.
	initOnce sync.Once
)

// Initialize loads the configuration file, applies environment overrides,
// and installs the result as the process-wide configuration. Call it once
// during startup; later calls are no-ops regardless of the path given.
func Initialize(path string) error {
	var initErr error

	initOnce.Do(func() {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			initErr = err
			return
		}

		configMutex.Lock()
		globalConfig = cfg
		configMutex.Unlock()
	})

	return initErr
}

// GetConfig returns the process-wide configuration, or nil before a
// successful Initialize. Safe for concurrent use.
//
// Tests should pass explicit *Config values around instead of reading
// the singleton.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the process-wide configuration directly, bypassing
// loading and validation. Test helper; production code goes through
// Initialize.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// ReloadConfig re-reads the configuration from path and swaps it in. The
// file watcher drives this on config changes. A load or validation
// failure leaves the current configuration in place.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	configMutex.Lock()
	globalConfig = cfg
	configMutex.Unlock()

	return nil
}

// MustGetConfig is GetConfig that panics when the configuration is not
// initialized. For paths that only run after a successful startup.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not initialized: call Initialize first")
	}
	return cfg
}
