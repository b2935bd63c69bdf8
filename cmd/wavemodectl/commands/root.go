// Package commands provides the complete command tree implementation for wavemodectl.
//
// This package defines the hierarchical command structure for the wavemode CLI,
// organized into logical groups that match the daemon's intent surface:
//
//   - status: Orchestrator state inspection (managers, roles, staged recovery)
//   - wifi: Client radio intents (on/off, scan-always, location-mode)
//   - softap: Access point lifecycle (start, stop, update)
//   - airplane: Airplane mode intents
//   - emergency: Emergency signal injection for testing and diagnostics
//   - restart / fault: Interface recovery and fault reporting
//
// All commands follow consistent patterns with standardized flag handling, error
// messages, and output formatting.
package commands

import (
	"github.com/spf13/cobra"
)

// Root command
var RootCmd = &cobra.Command{
	Use:   "wavemodectl",
	Short: "CLI tool for the wavemode wireless interface orchestrator",
	Long: `Wavemode CLI (wavemodectl) is a command-line tool for inspecting and
driving the wavemoded wireless interface orchestrator.

It submits the same intents the platform surfaces would (wifi toggles,
access point requests, airplane mode, emergency signals) and renders the
daemon's status snapshot for troubleshooting.`,
	SilenceUsage: true,
	Example: `  # Show orchestrator status
  wavemodectl status

  # Enable and disable the client radio
  wavemodectl wifi on
  wavemodectl wifi off

  # Start a tethering access point
  wavemodectl softap start --ssid=field-kit --passphrase=changeme1 --band=5ghz

  # Stop every running access point
  wavemodectl softap stop all

  # Restart all wireless interfaces
  wavemodectl restart --reason="stuck scan"

  # Connect to a remote daemon
  wavemodectl --api=192.168.1.50:8700 status

  # Output in JSON format
  wavemodectl -o json status`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(wifiCmd)
	RootCmd.AddCommand(softApCmd)
	RootCmd.AddCommand(airplaneCmd)
	RootCmd.AddCommand(emergencyCmd)
	RootCmd.AddCommand(restartCmd)
	RootCmd.AddCommand(faultCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultAPIAddr string) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"wavemoded API server address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", 8,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
