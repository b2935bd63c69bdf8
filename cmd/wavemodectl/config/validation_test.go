// Package config provides configuration validation tests for the wavemodectl CLI.
//
// This test suite validates the global flag checks every command runs before
// contacting the daemon: API address parsing, unroutable address rejection,
// and output format validation.
package config

import (
	"strings"
	"testing"
)

func TestValidateAPIAddress(t *testing.T) {
	tests := []struct {
		name          string
		apiAddr       string
		expectError   bool
		errorContains string
	}{
		{
			name:        "loopback_ok",
			apiAddr:     "127.0.0.1:8700",
			expectError: false,
		},
		{
			name:        "routable_ip_ok",
			apiAddr:     "192.168.1.50:8700",
			expectError: false,
		},
		{
			name:          "unroutable_wildcard_error",
			apiAddr:       "0.0.0.0:8700",
			expectError:   true,
			errorContains: "unroutable",
		},
		{
			name:          "missing_port_error",
			apiAddr:       "127.0.0.1",
			expectError:   true,
			errorContains: "host:port",
		},
		{
			name:          "port_zero_error",
			apiAddr:       "127.0.0.1:0",
			expectError:   true,
			errorContains: "1-65535",
		},
		{
			name:          "garbage_error",
			apiAddr:       "not an address",
			expectError:   true,
			errorContains: "host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Global.APIAddr
			defer func() { Global.APIAddr = prev }()
			Global.APIAddr = tt.apiAddr

			err := ValidateAPIAddress()
			if tt.expectError {
				if err == nil {
					t.Fatalf("ValidateAPIAddress() = nil, want error for %q", tt.apiAddr)
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("ValidateAPIAddress() error = %q, want substring %q", err, tt.errorContains)
				}
			} else if err != nil {
				t.Errorf("ValidateAPIAddress() = %v, want nil for %q", err, tt.apiAddr)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		expectError bool
	}{
		{name: "table_ok", output: "table", expectError: false},
		{name: "json_ok", output: "json", expectError: false},
		{name: "yaml_error", output: "yaml", expectError: true},
		{name: "empty_error", output: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := Global.Output
			defer func() { Global.Output = prev }()
			Global.Output = tt.output

			err := ValidateOutputFormat()
			if tt.expectError && err == nil {
				t.Errorf("ValidateOutputFormat() = nil, want error for %q", tt.output)
			}
			if !tt.expectError && err != nil {
				t.Errorf("ValidateOutputFormat() = %v, want nil for %q", err, tt.output)
			}
		})
	}
}
