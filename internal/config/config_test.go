package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig tests that defaults validate cleanly
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v, want nil", err)
	}

	if cfg.APIAddr != DefaultAPIAddr {
		t.Errorf("DefaultConfig() APIAddr = %q, want %q", cfg.APIAddr, DefaultAPIAddr)
	}

	if cfg.Timing.RecoveryDelay() != DefaultRecoveryDelay {
		t.Errorf("DefaultConfig() RecoveryDelay = %v, want %v",
			cfg.Timing.RecoveryDelay(), DefaultRecoveryDelay)
	}
}

// TestLoadMissingPath tests that an empty path returns defaults
func TestLoadMissingPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v, want nil", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Load(\"\") LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
}

// TestLoadFile tests YAML parsing merged over defaults
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wavemoded.yaml")

	content := `
api_addr: "127.0.0.1:9900"
log_level: "DEBUG"
wifi:
  enabled_on_boot: false
  scan_always_available: true
  location_mode: true
timing:
  recovery_delay_ms: 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.APIAddr != "127.0.0.1:9900" {
		t.Errorf("Load() APIAddr = %q, want 127.0.0.1:9900", cfg.APIAddr)
	}
	if cfg.Wifi.EnabledOnBoot {
		t.Error("Load() Wifi.EnabledOnBoot = true, want false")
	}
	if !cfg.Wifi.ScanAlwaysAvailable {
		t.Error("Load() Wifi.ScanAlwaysAvailable = false, want true")
	}
	if cfg.Timing.RecoveryDelay() != 500*time.Millisecond {
		t.Errorf("Load() RecoveryDelay = %v, want 500ms", cfg.Timing.RecoveryDelay())
	}
	// Unset fields keep defaults
	if cfg.LogMaxSizeMB != DefaultLogMaxSizeMB {
		t.Errorf("Load() LogMaxSizeMB = %d, want default %d", cfg.LogMaxSizeMB, DefaultLogMaxSizeMB)
	}
}

// TestLoadInvalid tests that invalid files are rejected with errors
func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "api_addr: [unclosed"},
		{"bad address", `api_addr: "not-an-address"`},
		{"bad log level", `log_level: "LOUD"`},
		{"zero recovery delay", "timing:\n  recovery_delay_ms: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%s) should return error", tt.name)
			}
		})
	}
}
