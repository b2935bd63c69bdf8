// Package api provides the HTTP API server for the wavemode daemon.
// The server exposes mode-orchestration intents and status via REST
// endpoints, allowing CLI tools and platform services to drive the warden
// without linking against the daemon.
package api

import (
	"fmt"

	"github.com/wavemode/wavemode/internal/validate"
	"github.com/wavemode/wavemode/internal/warden"
)

const (
	// DefaultAPIPort is the default port for the HTTP API server
	DefaultAPIPort = 8700
)

// Config holds all configuration parameters required for running the HTTP
// API server alongside the warden.
//
// The struct acts as a dependency injection container: the daemon wires the
// warden in, and the server translates HTTP intents into warden calls.
//
// TODO: Add support for TLS/HTTPS configuration (cert/key files)
type Config struct {
	BindAddr string         // HTTP server bind address (e.g., "127.0.0.1")
	BindPort int            // HTTP server bind port
	Warden   *warden.Warden // Reference to the mode orchestrator
}

// DefaultConfig creates a Config with defaults for local operation. The API
// binds to loopback: intents reconfigure the device radio, so exposure
// beyond the local host is an explicit operator decision.
func DefaultConfig() *Config {
	return &Config{
		BindAddr: "127.0.0.1",
		BindPort: DefaultAPIPort,
		Warden:   nil, // Must be set by caller
	}
}

// Validate checks that the server can start and reach the warden.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.Warden == nil {
		return fmt.Errorf("warden cannot be nil")
	}
	return nil
}
