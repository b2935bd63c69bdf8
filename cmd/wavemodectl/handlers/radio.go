// Package handlers provides command handler functions for wavemodectl status,
// airplane mode, emergency signals, and recovery operations.
package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavemode/wavemode/cmd/wavemodectl/client"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/cmd/wavemodectl/display"
	"github.com/wavemode/wavemode/cmd/wavemodectl/utils"
	"github.com/wavemode/wavemode/internal/logging"
)

// HandleStatus handles the status command. Fetches the orchestrator snapshot;
// verbose mode also fetches the daemon health summary so one command answers
// both "is it up" and "what is it doing".
func HandleStatus(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	logging.Info("Fetching orchestrator status from API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient()

	if config.Global.Verbose && config.Global.Output != "json" {
		health, err := apiClient.Health()
		if err != nil {
			return err
		}
		display.DisplayHealth(health)
		fmt.Println()
	}

	status, err := apiClient.Status()
	if err != nil {
		return err
	}

	display.DisplayStatus(status)
	logging.Success("Successfully retrieved orchestrator status")
	return nil
}

// HandleAirplane handles the airplane command.
func HandleAirplane(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetAirplane(on); err != nil {
		return err
	}

	display.DisplayAccepted("airplane")
	return nil
}

// HandleEmergencyCallback handles the emergency callback-mode subcommand.
func HandleEmergencyCallback(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	active, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetEmergencyCallbackMode(active); err != nil {
		return err
	}

	display.DisplayAccepted("emergency-callback-mode")
	return nil
}

// HandleEmergencyCall handles the emergency call-state subcommand.
func HandleEmergencyCall(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	active, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetEmergencyCallState(active); err != nil {
		return err
	}

	display.DisplayAccepted("emergency-call-state")
	return nil
}

// HandleRestart handles the restart command.
func HandleRestart(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if config.Service.Reason == "" {
		return fmt.Errorf("--reason is required")
	}

	logging.Info("Requesting interface restart via API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient()
	if err := apiClient.Restart(config.Service.Reason); err != nil {
		return err
	}

	display.DisplayAccepted("restart")
	logging.Success("Interface restart accepted")
	return nil
}

// HandleFault handles the fault command.
func HandleFault(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if config.Service.Reason == "" {
		return fmt.Errorf("--reason is required")
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.ReportFault(config.Service.Reason); err != nil {
		return err
	}

	display.DisplayAccepted("fault")
	return nil
}
