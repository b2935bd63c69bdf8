// Package handlers provides HTTP request handlers for the wavemode API
// server. Handlers translate JSON intent payloads into orchestrator calls
// and render status snapshots. Intents are fire-and-forget: the orchestrator
// serializes them internally and the HTTP response only acknowledges
// acceptance, with outcomes visible through the status endpoint.
package handlers

import (
	"github.com/wavemode/wavemode/internal/mode"
	"github.com/wavemode/wavemode/internal/warden"
)

// Orchestrator is the warden surface the handlers drive. Defined here to
// keep the handlers testable with a fake and to avoid a dependency cycle
// with the parent api package.
type Orchestrator interface {
	SetWifiEnabled(enable bool, ws mode.WorkSource)
	SetScanAlwaysAvailable(available bool)
	SetLocationModeEnabled(enabled bool)
	SetAirplaneMode(on bool)
	StartSoftAp(cfg mode.SoftApConfig, role mode.Role, ws mode.WorkSource)
	StopSoftAp(role mode.Role)
	UpdateSoftApConfiguration(cfg mode.SoftApConfig, role mode.Role)
	SetEmergencyCallbackModeActive(active bool)
	SetEmergencyCallStateActive(active bool)
	RestartAll(reason string)
	ReportHardwareFault(reason string)
	Status() warden.StatusSnapshot
}
