package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// ToggleRequest is the payload for boolean intents (wifi, scan-always,
// location mode, airplane, emergency signals). Requester attribution is
// optional; intents without one are attributed to the API itself.
type ToggleRequest struct {
	Enabled       bool   `json:"enabled"`
	RequesterUID  int    `json:"requester_uid,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
}

// ReasonRequest is the payload for restart and fault intents.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AcceptedResponse acknowledges a queued intent.
type AcceptedResponse struct {
	Accepted bool   `json:"accepted"`
	Intent   string `json:"intent"`
}

func (r *ToggleRequest) workSource() mode.WorkSource {
	if r.RequesterName == "" {
		return mode.WorkSource{Name: "api"}
	}
	return mode.WorkSource{UID: r.RequesterUID, Name: r.RequesterName}
}

func accepted(c *gin.Context, intent string) {
	c.JSON(http.StatusAccepted, AcceptedResponse{Accepted: true, Intent: intent})
}

func bindToggle(c *gin.Context) (*ToggleRequest, bool) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.Warn("Rejected malformed intent payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return nil, false
	}
	return &req, true
}

// HandleWifiToggle queues a SetWifiEnabled intent
func HandleWifiToggle(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetWifiEnabled(req.Enabled, req.workSource())
		accepted(c, "wifi")
	}
}

// HandleScanAlways queues a SetScanAlwaysAvailable intent
func HandleScanAlways(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetScanAlwaysAvailable(req.Enabled)
		accepted(c, "scan-always")
	}
}

// HandleLocationMode queues a SetLocationModeEnabled intent
func HandleLocationMode(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetLocationModeEnabled(req.Enabled)
		accepted(c, "location-mode")
	}
}

// HandleAirplaneMode queues a SetAirplaneMode intent
func HandleAirplaneMode(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetAirplaneMode(req.Enabled)
		accepted(c, "airplane")
	}
}

// HandleEmergencyCallback queues an emergency callback-mode signal
func HandleEmergencyCallback(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetEmergencyCallbackModeActive(req.Enabled)
		accepted(c, "emergency-callback-mode")
	}
}

// HandleEmergencyCall queues an emergency call-state signal
func HandleEmergencyCall(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindToggle(c)
		if !ok {
			return
		}
		orch.SetEmergencyCallStateActive(req.Enabled)
		accepted(c, "emergency-call-state")
	}
}

// HandleRestart queues a RestartAll intent
func HandleRestart(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReasonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "restart requires a reason: " + err.Error()})
			return
		}
		orch.RestartAll(req.Reason)
		accepted(c, "restart")
	}
}

// HandleFault queues a hardware fault report
func HandleFault(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReasonRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fault report requires a reason: " + err.Error()})
			return
		}
		orch.ReportHardwareFault(req.Reason)
		accepted(c, "fault")
	}
}
