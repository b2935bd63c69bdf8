// Package main provides the entry point for the wavemode CLI tool (wavemodectl).
//
// This package implements the main executable for the wireless orchestrator
// management CLI that lets operators inspect and drive a running wavemoded
// daemon. The CLI submits the same intents the platform surfaces would and
// renders the daemon's state for troubleshooting.
//
// INITIALIZATION FLOW:
// 1. Command structure setup with hierarchical organization
// 2. Flag configuration for global and command-specific options
// 3. Handler assignment linking commands to API operations
// 4. Configuration validation and CLI state management
// 5. Command execution with proper error handling and exit codes
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wavemode/wavemode/cmd/wavemodectl/commands"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/cmd/wavemodectl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	// Setup all command structures
	commands.SetupCommands()
	commands.SetupWifiCommands()
	commands.SetupSoftApCommands()
	commands.SetupRadioCommands()

	// Setup global flags
	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output, config.DefaultAPIAddr)

	// Setup softap and service command flags
	softApStartCmd, _, softApUpdateCmd := commands.GetSoftApCommands()
	setupSoftApFlags(softApStartCmd, softApUpdateCmd)

	_, _, _, restartCmd, faultCmd := commands.GetRadioCommands()
	restartCmd.Flags().StringVar(&config.Service.Reason, "reason", "", "Reason recorded with the restart (required)")
	faultCmd.Flags().StringVar(&config.Service.Reason, "reason", "", "Description of the observed fault (required)")

	// Setup command handlers
	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	wifiOnCmd, wifiOffCmd, scanAlwaysCmd, locationCmd := commands.GetWifiCommands()
	wifiOnCmd.RunE = handlers.HandleWifiOn
	wifiOffCmd.RunE = handlers.HandleWifiOff
	scanAlwaysCmd.RunE = handlers.HandleScanAlways
	locationCmd.RunE = handlers.HandleLocationMode

	softApStartCmd, softApStopCmd, softApUpdateCmd := commands.GetSoftApCommands()
	softApStartCmd.RunE = handlers.HandleSoftApStart
	softApStopCmd.RunE = handlers.HandleSoftApStop
	softApUpdateCmd.RunE = handlers.HandleSoftApUpdate

	commands.GetStatusCommand().RunE = handlers.HandleStatus

	airplaneCmd, emergencyCallbackCmd, emergencyCallCmd, restartCmd, faultCmd := commands.GetRadioCommands()
	airplaneCmd.RunE = handlers.HandleAirplane
	emergencyCallbackCmd.RunE = handlers.HandleEmergencyCallback
	emergencyCallCmd.RunE = handlers.HandleEmergencyCall
	restartCmd.RunE = handlers.HandleRestart
	faultCmd.RunE = handlers.HandleFault
}

// setupSoftApFlags configures flags shared by softap start and update
func setupSoftApFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		cmd.Flags().StringVar(&config.SoftAp.SSID, "ssid", "", "Network name to broadcast (required)")
		cmd.Flags().StringVar(&config.SoftAp.Passphrase, "passphrase", "", "WPA2 passphrase, 8-63 characters (open network when omitted)")
		cmd.Flags().StringVar(&config.SoftAp.Band, "band", "", "Radio band: 2.4ghz, 5ghz, 6ghz (driver default when omitted)")
		cmd.Flags().IntVar(&config.SoftAp.Channel, "channel", 0, "Fixed channel (0 lets the driver pick)")
		cmd.Flags().IntVar(&config.SoftAp.MaxClients, "max-clients", 0, "Station limit (0 uses the driver default)")
		cmd.MarkFlagRequired("ssid")
	}

	// Only start chooses a role; update takes it as a positional argument.
	startCmd := cmds[0]
	startCmd.Flags().StringVar(&config.SoftAp.Role, "role", "tethered-ap", "Access point role: tethered-ap, local-only-ap")
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
