// Package handlers provides command handler functions for wavemodectl wifi intents.
package handlers

import (
	"github.com/spf13/cobra"
	"github.com/wavemode/wavemode/cmd/wavemodectl/client"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/cmd/wavemodectl/display"
	"github.com/wavemode/wavemode/cmd/wavemodectl/utils"
	"github.com/wavemode/wavemode/internal/logging"
)

// HandleWifiOn handles the wifi on subcommand.
func HandleWifiOn(cmd *cobra.Command, args []string) error {
	return submitWifiToggle(true)
}

// HandleWifiOff handles the wifi off subcommand.
func HandleWifiOff(cmd *cobra.Command, args []string) error {
	return submitWifiToggle(false)
}

func submitWifiToggle(enabled bool) error {
	utils.SetupLogging()
	logging.Info("Submitting wifi toggle to API server: %s", config.Global.APIAddr)

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetWifi(enabled); err != nil {
		return err
	}

	display.DisplayAccepted("wifi")
	logging.Success("Wifi toggle accepted")
	return nil
}

// HandleScanAlways handles the wifi scan-always subcommand.
func HandleScanAlways(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	enabled, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetScanAlways(enabled); err != nil {
		return err
	}

	display.DisplayAccepted("scan-always")
	return nil
}

// HandleLocationMode handles the wifi location-mode subcommand.
func HandleLocationMode(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	enabled, err := parseOnOff(args[0])
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.SetLocationMode(enabled); err != nil {
		return err
	}

	display.DisplayAccepted("location-mode")
	return nil
}
