package config

import (
	"fmt"
	"os"
	"time"

	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/validate"
	"gopkg.in/yaml.v2"
)

// Config holds all daemon configuration values. Loaded from an optional YAML
// file merged over defaults, then overridden by CLI flags.
type Config struct {
	APIAddr  string `yaml:"api_addr"`  // HTTP surface bind address ("host:port")
	LogLevel string `yaml:"log_level"` // DEBUG, INFO, WARN, ERROR
	LogFile  string `yaml:"log_file"`  // Rotating log file path; empty keeps stdout/stderr

	LogMaxSizeMB  int `yaml:"log_max_size_mb"` // Rotation threshold
	LogMaxBackups int `yaml:"log_max_backups"` // Retained rotated files

	Verbose bool `yaml:"verbose"` // Verbose manager logging, plumbed into created managers

	Wifi     WifiConfig    `yaml:"wifi"`
	Features FeatureConfig `yaml:"features"`
	Timing   TimingConfig  `yaml:"timing"`
	DBus     DBusConfig    `yaml:"dbus"`
}

// WifiConfig holds the boot-time desired state the settings collaborator
// serves until an external settings store takes over.
type WifiConfig struct {
	EnabledOnBoot       bool `yaml:"enabled_on_boot"`       // Create a primary client manager at startup
	ScanAlwaysAvailable bool `yaml:"scan_always_available"` // Allow a scan-only manager when wifi is off
	LocationMode        bool `yaml:"location_mode"`         // Location services enabled (gates scan-only)
	DisableInEmergency  bool `yaml:"disable_in_emergency"`  // Tear down client managers during emergency calls
}

// FeatureConfig gates each secondary client role family independently.
type FeatureConfig struct {
	LocalOnlyClient    bool `yaml:"local_only_client"`
	SecondaryLongLived bool `yaml:"secondary_long_lived"`
	SecondaryTransient bool `yaml:"secondary_transient"`
}

// TimingConfig holds orchestrator timing knobs. Durations are stored in
// milliseconds because yaml.v2 has no native time.Duration support.
type TimingConfig struct {
	RecoveryDelayMs int `yaml:"recovery_delay_ms"`
}

// RecoveryDelay returns the configured recovery delay as a duration.
func (t TimingConfig) RecoveryDelay() time.Duration {
	return time.Duration(t.RecoveryDelayMs) * time.Millisecond
}

// DBusConfig controls the OS signal monitor.
type DBusConfig struct {
	Enabled bool `yaml:"enabled"` // Subscribe to airplane/telephony/location signals
}

// DefaultConfig returns a configuration populated with shared defaults.
func DefaultConfig() *Config {
	return &Config{
		APIAddr:       DefaultAPIAddr,
		LogLevel:      DefaultLogLevel,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		Wifi: WifiConfig{
			EnabledOnBoot:      true,
			DisableInEmergency: true,
		},
		Features: FeatureConfig{
			LocalOnlyClient:    true,
			SecondaryLongLived: true,
			SecondaryTransient: true,
		},
		Timing: TimingConfig{
			RecoveryDelayMs: int(DefaultRecoveryDelay / time.Millisecond),
		},
	}
}

// Load reads a YAML config file and merges it over defaults. A missing path
// returns defaults unchanged so the daemon runs with zero configuration.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if _, err := validate.ParseBindAddress(c.APIAddr); err != nil {
		return fmt.Errorf("invalid api_addr: %w", err)
	}

	if err := logging.ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}

	if err := validate.ValidatePositiveTimeout(c.Timing.RecoveryDelay(), "recovery_delay_ms"); err != nil {
		return err
	}

	if c.LogFile != "" {
		if c.LogMaxSizeMB < 1 {
			return fmt.Errorf("log_max_size_mb must be positive, got: %d", c.LogMaxSizeMB)
		}
		if c.LogMaxBackups < 0 {
			return fmt.Errorf("log_max_backups cannot be negative, got: %d", c.LogMaxBackups)
		}
	}

	return nil
}
