// Package config provides configuration management for the wavemodectl CLI.
package config

import "github.com/wavemode/wavemode/internal/version"

const (
	DefaultAPIAddr = "127.0.0.1:8700" // Default wavemoded API address
)

// Version returns the current wavemodectl CLI version from the centralized version package
var Version = version.WavemodectlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of the wavemoded API server to connect to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// SoftAp holds the softap command configuration
var SoftAp struct {
	Role       string // Interface role: tethered-ap, local-only-ap
	SSID       string // Network name to broadcast
	Passphrase string // WPA2 passphrase (open network when empty)
	Band       string // Radio band: 2.4ghz, 5ghz, 6ghz
	Channel    int    // Fixed channel (0 lets the driver pick)
	MaxClients int    // Station limit (0 uses the driver default)
}

// Service holds the restart and fault command configuration
var Service struct {
	Reason string // Operator-supplied reason recorded with the action
}
