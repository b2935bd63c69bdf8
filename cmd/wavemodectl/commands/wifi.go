// Package commands provides the complete command tree implementation for wavemodectl.
package commands

import (
	"github.com/spf13/cobra"
)

// Wifi command (parent command for client radio intents)
var wifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Control the client wifi radio",
	Long: `Commands for controlling the client side of the wifi radio.

These submit the same intents the platform settings surface would: the
daemon reconciles interface managers toward the requested state, so a
command returning success means the intent was accepted, not that the
interface is already up. Use 'wavemodectl status' to observe progress.`,
}

// Wifi on/off commands
var wifiOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Enable the client wifi radio",
	Example: `  # Enable wifi
  wavemodectl wifi on`,
	Args: cobra.NoArgs,
}

var wifiOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Disable the client wifi radio",
	Example: `  # Disable wifi
  wavemodectl wifi off`,
	Args: cobra.NoArgs,
}

// Scan-always command
var wifiScanAlwaysCmd = &cobra.Command{
	Use:   "scan-always <on|off>",
	Short: "Control scan-always availability",
	Long: `Control whether background scanning stays available while wifi is off.

With scan-always on and location mode enabled, the daemon keeps a
scan-only interface up even when the wifi toggle is off.`,
	Example: `  # Keep background scanning available
  wavemodectl wifi scan-always on

  # Turn background scanning off
  wavemodectl wifi scan-always off`,
	Args: cobra.ExactArgs(1),
}

// Location-mode command
var wifiLocationCmd = &cobra.Command{
	Use:   "location-mode <on|off>",
	Short: "Report the platform location mode setting",
	Example: `  # Report location mode enabled
  wavemodectl wifi location-mode on`,
	Args: cobra.ExactArgs(1),
}

// SetupWifiCommands initializes the wifi command hierarchy
func SetupWifiCommands() {
	wifiCmd.AddCommand(wifiOnCmd)
	wifiCmd.AddCommand(wifiOffCmd)
	wifiCmd.AddCommand(wifiScanAlwaysCmd)
	wifiCmd.AddCommand(wifiLocationCmd)
}

// GetWifiCommands returns wifi command references for handler assignment
func GetWifiCommands() (onCmd, offCmd, scanAlwaysCmd, locationCmd *cobra.Command) {
	return wifiOnCmd, wifiOffCmd, wifiScanAlwaysCmd, wifiLocationCmd
}
