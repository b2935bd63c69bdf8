// Package commands provides the complete command tree implementation for wavemodectl.
package commands

import (
	"github.com/spf13/cobra"
)

// Status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show orchestrator status",
	Long: `Display the daemon's current state: global toggles, the emergency
overlay, staged recovery, and every active interface manager with its
role, lifecycle state, and owning work source.`,
	Example: `  # Show orchestrator status
  wavemodectl status

  # Status in JSON format
  wavemodectl -o json status

  # Include interface and network detail
  wavemodectl --verbose status`,
	Args: cobra.NoArgs,
}

// Airplane command
var airplaneCmd = &cobra.Command{
	Use:   "airplane <on|off>",
	Short: "Report the airplane mode setting",
	Long: `Report an airplane mode change to the daemon.

Airplane mode grounds all interfaces while preserving the wifi toggle,
so leaving airplane mode restores whatever was running before.`,
	Example: `  # Ground all radios
  wavemodectl airplane on

  # Leave airplane mode
  wavemodectl airplane off`,
	Args: cobra.ExactArgs(1),
}

// Emergency command (parent command for emergency signal injection)
var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Inject emergency telephony signals",
	Long: `Commands for injecting emergency telephony signals into the daemon.

Intended for testing and diagnostics: production deployments receive
these signals from the telephony stack over D-Bus.`,
}

var emergencyCallbackCmd = &cobra.Command{
	Use:   "callback-mode <on|off>",
	Short: "Set the emergency callback mode latch",
	Args:  cobra.ExactArgs(1),
}

var emergencyCallCmd = &cobra.Command{
	Use:   "call-state <on|off>",
	Short: "Set the emergency call active latch",
	Args:  cobra.ExactArgs(1),
}

// Restart command
var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart all wireless interfaces",
	Long: `Tear down every active interface manager and recreate the surviving
roles after a settle delay. The daemon snapshots which roles were
active before the teardown, so only those come back.`,
	Example: `  # Restart after a stuck interface
  wavemodectl restart --reason="scan results stale"`,
	Args: cobra.NoArgs,
}

// Fault command
var faultCmd = &cobra.Command{
	Use:   "fault",
	Short: "Report a hardware fault to the daemon",
	Example: `  # Report a firmware wedge
  wavemodectl fault --reason="firmware unresponsive"`,
	Args: cobra.NoArgs,
}

// SetupRadioCommands initializes status, airplane, emergency, restart, and fault commands
func SetupRadioCommands() {
	emergencyCmd.AddCommand(emergencyCallbackCmd)
	emergencyCmd.AddCommand(emergencyCallCmd)
}

// GetStatusCommand returns the status command reference for handler assignment
func GetStatusCommand() *cobra.Command {
	return statusCmd
}

// GetRadioCommands returns radio command references for handler assignment
func GetRadioCommands() (airplane, emergencyCallback, emergencyCall, restart, fault *cobra.Command) {
	return airplaneCmd, emergencyCallbackCmd, emergencyCallCmd, restartCmd, faultCmd
}
