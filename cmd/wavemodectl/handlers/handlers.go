// Package handlers provides command handler functions for wavemodectl.
//
// This package contains all the command execution logic for wavemodectl
// commands, organized by intent group for maintainability:
//
// - wifi.go: Client radio intents (toggle, scan-always, location-mode)
// - softap.go: Access point lifecycle (start, stop, update)
// - radio.go: Status display, airplane mode, emergency signals, restart, fault
//
// All handlers follow consistent patterns:
// - cobra.Command RunE function signature for CLI integration
// - Standardized error handling and logging using the logging package
// - Consistent output formatting through the display package
// - Clean separation between API communication and presentation logic
package handlers

import (
	"fmt"
	"strings"
)

// parseOnOff converts the on/off positional argument commands take.
func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid argument %q - expected 'on' or 'off'", arg)
	}
}
