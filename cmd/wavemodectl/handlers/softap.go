// Package handlers provides command handler functions for wavemodectl access
// point operations.
package handlers

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wavemode/wavemode/cmd/wavemodectl/client"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/cmd/wavemodectl/display"
	"github.com/wavemode/wavemode/cmd/wavemodectl/utils"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/validate"
)

// softApRequestFromFlags builds the API payload from the softap flag set.
// Validation happens client-side first so flag mistakes fail fast with a
// format error instead of a daemon round trip.
func softApRequestFromFlags() (client.SoftApRequest, error) {
	req := client.SoftApRequest{
		Role:       config.SoftAp.Role,
		SSID:       config.SoftAp.SSID,
		Passphrase: config.SoftAp.Passphrase,
		Band:       config.SoftAp.Band,
		Channel:    config.SoftAp.Channel,
		MaxClients: config.SoftAp.MaxClients,
	}

	if err := validate.SSIDFormat(req.SSID); err != nil {
		return req, fmt.Errorf("invalid --ssid: %w", err)
	}
	if req.Passphrase != "" {
		if err := validate.PassphraseFormat(req.Passphrase); err != nil {
			return req, fmt.Errorf("invalid --passphrase: %w", err)
		}
	}
	if req.Band != "" {
		if err := validate.BandFormat(req.Band); err != nil {
			return req, fmt.Errorf("invalid --band: %w", err)
		}
	}
	return req, nil
}

// validApRole guards the role argument before it reaches the daemon.
func validApRole(role string) error {
	switch role {
	case "tethered-ap", "local-only-ap":
		return nil
	default:
		return fmt.Errorf("invalid access point role %q - valid: tethered-ap, local-only-ap", role)
	}
}

// HandleSoftApStart handles the softap start subcommand.
func HandleSoftApStart(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	if err := validApRole(config.SoftAp.Role); err != nil {
		return err
	}
	req, err := softApRequestFromFlags()
	if err != nil {
		return err
	}

	logging.Info("Starting %s access point '%s' via API server: %s",
		req.Role, req.SSID, config.Global.APIAddr)

	apiClient := client.CreateAPIClient()
	if err := apiClient.StartSoftAp(req); err != nil {
		return err
	}

	display.DisplayAccepted("softap-start")
	logging.Success("Access point start accepted")
	return nil
}

// HandleSoftApStop handles the softap stop subcommand.
func HandleSoftApStop(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	role := args[0]
	if role != "all" {
		if err := validApRole(role); err != nil {
			return err
		}
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.StopSoftAp(role); err != nil {
		return err
	}

	display.DisplayAccepted("softap-stop")
	return nil
}

// HandleSoftApUpdate handles the softap update subcommand.
func HandleSoftApUpdate(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	role := args[0]
	if err := validApRole(role); err != nil {
		return err
	}

	// Update reuses the start flag set; role comes from the positional arg.
	config.SoftAp.Role = role
	req, err := softApRequestFromFlags()
	if err != nil {
		return err
	}

	apiClient := client.CreateAPIClient()
	if err := apiClient.UpdateSoftAp(role, req); err != nil {
		return err
	}

	display.DisplayAccepted("softap-update")
	return nil
}
