// Package validate provides input validation utilities for wavemode
// configuration and API surfaces, ensuring malformed parameters are rejected
// before they reach the mode orchestrator.
//
// Implements IP address, port range, and address format validation using the
// go-playground/validator library, plus wireless-specific validators for soft
// AP configurations and interface names.
//
// VALIDATION FEATURES:
//   - IP Address: IPv4 and IPv6 format validation
//   - Port Range: Valid port numbers for the HTTP surface
//   - Format: Proper "host:port" address formatting
//   - Wireless: SSID, passphrase, band, and interface name rules
//
// Used for validating daemon bind addresses, config files, CLI arguments, and
// API requests at every external entry point.
package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// NetworkAddress represents a validated network address with host and port
// components. Uses struct tags for automatic validation via the
// go-playground/validator library.
type NetworkAddress struct {
	Host string `validate:"required,ip"`              // Built-in IP validator
	Port int    `validate:"required,min=0,max=65535"` // Built-in range validator
}

// String returns the network address in standard "host:port" format suitable
// for network connections, configuration display, and logging.
func (na NetworkAddress) String() string {
	return fmt.Sprintf("%s:%d", na.Host, na.Port)
}

// ParseBindAddress parses and validates a "host:port" address string for the
// daemon's HTTP surface. Provides format checking, IP address validation, and
// port range verification.
//
// Essential for processing user-provided network addresses from configuration
// files and CLI arguments, preventing runtime bind failures with clear error
// messages instead.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates individual values against specified validation rules
// using the go-playground/validator library. Provides flexible validation for
// single fields without requiring struct definitions.
//
// Example: ValidateField("192.168.1.1", "required,ip")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateStruct validates a struct against its `validate` tags. Used by the
// API layer to check request bodies after JSON binding.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
