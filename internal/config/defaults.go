// Package config provides configuration management for the wavemode daemon:
// shared defaults, the YAML config file schema, and validation. This
// centralizes configuration so the warden, the HTTP surface, and the OS
// signal monitor agree on one source of truth.
package config

import "time"

const (
	// DefaultAPIAddr is the default bind address for the HTTP intent/status surface.
	// Loopback only: mode intents are a local-operator surface, not a network service.
	DefaultAPIAddr = "127.0.0.1:8700"

	// DefaultLogLevel is the default log level for all components.
	// INFO provides good balance of visibility without verbose debug output.
	DefaultLogLevel = "INFO"

	// DefaultRecoveryDelay is how long the warden waits after the last manager
	// stop completes before recreating managers during a recovery restart.
	// Gives firmware and the driver time to settle after a teardown burst.
	DefaultRecoveryDelay = 2 * time.Second

	// DefaultLogMaxSizeMB is the rotation threshold for file logging.
	DefaultLogMaxSizeMB = 20

	// DefaultLogMaxBackups is how many rotated log files are retained.
	DefaultLogMaxBackups = 5
)
