// Package commands provides the complete command tree implementation for wavemodectl.
package commands

import (
	"github.com/spf13/cobra"
)

// SoftAp command (parent command for access point operations)
var softApCmd = &cobra.Command{
	Use:   "softap",
	Short: "Manage software access points",
	Long: `Commands for starting, stopping, and reconfiguring software access points.

Two roles are supported: 'tethered-ap' shares the uplink connection and
'local-only-ap' creates an isolated local network. At most one access
point per role runs at a time; starting a role that is already running
with a different configuration replaces it.`,
}

// SoftAp start command
var softApStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a software access point",
	Example: `  # Start a tethering AP on 5GHz
  wavemodectl softap start --ssid=field-kit --passphrase=changeme1 --band=5ghz

  # Start an open local-only AP
  wavemodectl softap start --role=local-only-ap --ssid=camera-link`,
	Args: cobra.NoArgs,
}

// SoftAp stop command
var softApStopCmd = &cobra.Command{
	Use:   "stop <role|all>",
	Short: "Stop a software access point",
	Long: `Stop the access point with the given role, or every access point
when the argument is 'all'.`,
	Example: `  # Stop the tethering AP
  wavemodectl softap stop tethered-ap

  # Stop every running AP
  wavemodectl softap stop all`,
	Args: cobra.ExactArgs(1),
}

// SoftAp update command
var softApUpdateCmd = &cobra.Command{
	Use:   "update <role>",
	Short: "Update a running access point in place",
	Long: `Apply a new configuration to a running access point without a
stop/start cycle. Only changes the driver can apply live (SSID,
passphrase, station limit) take effect immediately.`,
	Example: `  # Rotate the tethering passphrase
  wavemodectl softap update tethered-ap --ssid=field-kit --passphrase=rotated-9`,
	Args: cobra.ExactArgs(1),
}

// SetupSoftApCommands initializes the softap command hierarchy
func SetupSoftApCommands() {
	softApCmd.AddCommand(softApStartCmd)
	softApCmd.AddCommand(softApStopCmd)
	softApCmd.AddCommand(softApUpdateCmd)
}

// GetSoftApCommands returns softap command references for handler assignment
func GetSoftApCommands() (startCmd, stopCmd, updateCmd *cobra.Command) {
	return softApStartCmd, softApStopCmd, softApUpdateCmd
}
