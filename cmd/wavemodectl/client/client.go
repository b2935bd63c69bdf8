// Package client provides the HTTP client layer for the wavemodectl CLI.
// It wraps Resty with wavemode-specific request helpers: JSON intents in,
// status snapshots out, with retries on connection failures.
package client

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/cmd/wavemodectl/utils"
	"github.com/wavemode/wavemode/internal/version"
	"github.com/wavemode/wavemode/internal/warden"
)

// ToggleRequest mirrors the daemon's boolean intent payload.
type ToggleRequest struct {
	Enabled       bool   `json:"enabled"`
	RequesterUID  int    `json:"requester_uid,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
}

// SoftApRequest mirrors the daemon's access point payload.
type SoftApRequest struct {
	Role       string `json:"role"`
	SSID       string `json:"ssid"`
	Passphrase string `json:"passphrase,omitempty"`
	Band       string `json:"band,omitempty"`
	Channel    int    `json:"channel,omitempty"`
	MaxClients int    `json:"max_clients,omitempty"`
}

// ReasonRequest mirrors the daemon's restart/fault payload.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// HealthResponse mirrors the daemon's health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// WavemodeAPIClient wraps Resty for daemon API communication.
type WavemodeAPIClient struct {
	client *resty.Client
}

// NewWavemodeAPIClient creates a configured API client for the daemon at
// apiAddr (host:port), with per-request timeout in seconds.
func NewWavemodeAPIClient(apiAddr string, timeout int) *WavemodeAPIClient {
	client := resty.New()

	client.
		SetLogger(utils.RestyLogger{}).
		SetTimeout(time.Duration(timeout)*time.Second).
		SetBaseURL(fmt.Sprintf("http://%s/api/v1", apiAddr)).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("wavemodectl/%s", version.WavemodectlVersion))

	// Retry on connection errors only, not HTTP errors
	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil
		})

	return &WavemodeAPIClient{client: client}
}

// CreateAPIClient creates an API client from the current global CLI
// configuration. Keeps command handlers free of connection plumbing.
func CreateAPIClient() *WavemodeAPIClient {
	return NewWavemodeAPIClient(config.Global.APIAddr, config.Global.Timeout)
}

// checkResponse converts transport and HTTP errors into one error value.
func checkResponse(resp *resty.Response, err error, what string) error {
	if err != nil {
		return fmt.Errorf("failed to reach daemon for %s: %w", what, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%s failed: %s: %s", what, resp.Status(), resp.String())
	}
	return nil
}

// Health fetches the daemon health summary.
func (api *WavemodeAPIClient) Health() (*HealthResponse, error) {
	var health HealthResponse
	resp, err := api.client.R().
		SetResult(&health).
		Get("/health")
	if err := checkResponse(resp, err, "health check"); err != nil {
		return nil, err
	}
	return &health, nil
}

// Status fetches the warden status snapshot.
func (api *WavemodeAPIClient) Status() (*warden.StatusSnapshot, error) {
	var status warden.StatusSnapshot
	resp, err := api.client.R().
		SetResult(&status).
		Get("/status")
	if err := checkResponse(resp, err, "status query"); err != nil {
		return nil, err
	}
	return &status, nil
}

// postToggle submits a boolean intent to the given path.
func (api *WavemodeAPIClient) postToggle(path string, enabled bool) error {
	resp, err := api.client.R().
		SetBody(ToggleRequest{Enabled: enabled, RequesterName: "wavemodectl"}).
		Post(path)
	return checkResponse(resp, err, path)
}

// SetWifi submits a wifi enable/disable intent.
func (api *WavemodeAPIClient) SetWifi(enabled bool) error {
	return api.postToggle("/wifi", enabled)
}

// SetScanAlways submits a scan-always availability intent.
func (api *WavemodeAPIClient) SetScanAlways(enabled bool) error {
	return api.postToggle("/wifi/scan-always", enabled)
}

// SetLocationMode submits a location-mode intent.
func (api *WavemodeAPIClient) SetLocationMode(enabled bool) error {
	return api.postToggle("/wifi/location-mode", enabled)
}

// SetAirplane submits an airplane-mode intent.
func (api *WavemodeAPIClient) SetAirplane(on bool) error {
	return api.postToggle("/airplane", on)
}

// SetEmergencyCallbackMode submits an emergency callback-mode signal.
func (api *WavemodeAPIClient) SetEmergencyCallbackMode(active bool) error {
	return api.postToggle("/emergency/callback-mode", active)
}

// SetEmergencyCallState submits an emergency call-state signal.
func (api *WavemodeAPIClient) SetEmergencyCallState(active bool) error {
	return api.postToggle("/emergency/call-state", active)
}

// StartSoftAp submits an access point start intent.
func (api *WavemodeAPIClient) StartSoftAp(req SoftApRequest) error {
	resp, err := api.client.R().
		SetBody(req).
		Post("/softap")
	return checkResponse(resp, err, "soft AP start")
}

// StopSoftAp stops the access point with the given role ("all" for every AP).
func (api *WavemodeAPIClient) StopSoftAp(role string) error {
	resp, err := api.client.R().
		Delete("/softap/" + role)
	return checkResponse(resp, err, "soft AP stop")
}

// UpdateSoftAp submits an in-place configuration update for the given role.
func (api *WavemodeAPIClient) UpdateSoftAp(role string, req SoftApRequest) error {
	resp, err := api.client.R().
		SetBody(req).
		Put("/softap/" + role)
	return checkResponse(resp, err, "soft AP update")
}

// Restart submits a restart-all intent with a reason.
func (api *WavemodeAPIClient) Restart(reason string) error {
	resp, err := api.client.R().
		SetBody(ReasonRequest{Reason: reason}).
		Post("/restart")
	return checkResponse(resp, err, "restart")
}

// ReportFault submits a hardware fault report.
func (api *WavemodeAPIClient) ReportFault(reason string) error {
	resp, err := api.client.R().
		SetBody(ReasonRequest{Reason: reason}).
		Post("/fault")
	return checkResponse(resp, err, "fault report")
}
