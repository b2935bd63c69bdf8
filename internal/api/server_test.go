package api

import (
	"testing"

	"github.com/wavemode/wavemode/internal/warden"
)

// TestNewServer tests NewServer creation
func TestNewServer(t *testing.T) {
	config := &Config{
		BindAddr: "127.0.0.1",
		BindPort: 8700,
		Warden:   &warden.Warden{}, // Mock reference
	}

	server := NewServer(config)

	if server == nil {
		t.Error("NewServer() returned nil")
		return
	}

	if server.bindAddr != config.BindAddr {
		t.Errorf("NewServer() bindAddr = %q, want %q", server.bindAddr, config.BindAddr)
	}

	if server.bindPort != config.BindPort {
		t.Errorf("NewServer() bindPort = %d, want %d", server.bindPort, config.BindPort)
	}

	if server.warden != config.Warden {
		t.Error("NewServer() did not set warden correctly")
	}
}

// TestConfigValidate tests API config validation
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  &Config{BindAddr: "127.0.0.1", BindPort: 8700, Warden: &warden.Warden{}},
			wantErr: false,
		},
		{
			name:    "empty bind address",
			config:  &Config{BindAddr: "", BindPort: 8700, Warden: &warden.Warden{}},
			wantErr: true,
		},
		{
			name:    "invalid port",
			config:  &Config{BindAddr: "127.0.0.1", BindPort: 70000, Warden: &warden.Warden{}},
			wantErr: true,
		},
		{
			name:    "nil warden",
			config:  &Config{BindAddr: "127.0.0.1", BindPort: 8700, Warden: nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestServer_HandlerFactories tests that handler factory methods return non-nil functions
func TestServer_HandlerFactories(t *testing.T) {
	config := &Config{
		BindAddr: "127.0.0.1",
		BindPort: 8700,
		Warden:   &warden.Warden{},
	}

	server := NewServer(config)

	tests := []struct {
		name    string
		handler func() interface{}
	}{
		{"getHandlerHealth", func() interface{} { return server.getHandlerHealth() }},
		{"getHandlerStatus", func() interface{} { return server.getHandlerStatus() }},
		{"getHandlerWifi", func() interface{} { return server.getHandlerWifi() }},
		{"getHandlerScanAlways", func() interface{} { return server.getHandlerScanAlways() }},
		{"getHandlerLocationMode", func() interface{} { return server.getHandlerLocationMode() }},
		{"getHandlerAirplane", func() interface{} { return server.getHandlerAirplane() }},
		{"getHandlerSoftApStart", func() interface{} { return server.getHandlerSoftApStart() }},
		{"getHandlerSoftApStop", func() interface{} { return server.getHandlerSoftApStop() }},
		{"getHandlerSoftApUpdate", func() interface{} { return server.getHandlerSoftApUpdate() }},
		{"getHandlerEmergencyCallback", func() interface{} { return server.getHandlerEmergencyCallback() }},
		{"getHandlerEmergencyCall", func() interface{} { return server.getHandlerEmergencyCall() }},
		{"getHandlerRestart", func() interface{} { return server.getHandlerRestart() }},
		{"getHandlerFault", func() interface{} { return server.getHandlerFault() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler()
			if handler == nil {
				t.Errorf("%s() returned nil handler", tt.name)
			}
		})
	}
}
