package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
	"github.com/wavemode/wavemode/internal/validate"
)

// SoftApRequest is the payload for starting or updating an access point.
type SoftApRequest struct {
	Role          string `json:"role" binding:"required"`
	SSID          string `json:"ssid" binding:"required"`
	Passphrase    string `json:"passphrase,omitempty"`
	Band          string `json:"band,omitempty"`
	Channel       int    `json:"channel,omitempty"`
	MaxClients    int    `json:"max_clients,omitempty"`
	RequesterUID  int    `json:"requester_uid,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
}

// parseApRole maps the wire role name onto an access-point role.
func parseApRole(s string) (mode.Role, bool) {
	switch s {
	case "tethered-ap":
		return mode.RoleTetheredAP, true
	case "local-only-ap":
		return mode.RoleLocalOnlyAP, true
	default:
		return mode.RoleUnspecified, false
	}
}

func (r *SoftApRequest) validate() error {
	if err := validate.SSIDFormat(r.SSID); err != nil {
		return err
	}
	if err := validate.PassphraseFormat(r.Passphrase); err != nil {
		return err
	}
	if r.Band != "" {
		if err := validate.BandFormat(r.Band); err != nil {
			return err
		}
	}
	return nil
}

func (r *SoftApRequest) config() mode.SoftApConfig {
	return mode.SoftApConfig{
		SSID:       r.SSID,
		Passphrase: r.Passphrase,
		Band:       r.Band,
		Channel:    r.Channel,
		MaxClients: r.MaxClients,
	}
}

// HandleSoftApStart queues a StartSoftAp intent
func HandleSoftApStart(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SoftApRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
			return
		}
		role, ok := parseApRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown access point role: " + req.Role})
			return
		}
		if err := req.validate(); err != nil {
			logging.Warn("Rejected soft AP configuration: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ws := mode.WorkSource{UID: req.RequesterUID, Name: req.RequesterName}
		if ws.Name == "" {
			ws.Name = "api"
		}
		orch.StartSoftAp(req.config(), role, ws)
		accepted(c, "softap-start")
	}
}

// HandleSoftApStop queues a StopSoftAp intent for the role in the path.
// The special role "all" stops every access point.
func HandleSoftApStop(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleParam := c.Param("role")
		if roleParam == "all" {
			orch.StopSoftAp(mode.RoleUnspecified)
			accepted(c, "softap-stop")
			return
		}
		role, ok := parseApRole(roleParam)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown access point role: " + roleParam})
			return
		}
		orch.StopSoftAp(role)
		accepted(c, "softap-stop")
	}
}

// HandleSoftApUpdate queues an in-place configuration update for the role in
// the path. Only fields an AP can change without restarting apply.
func HandleSoftApUpdate(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := parseApRole(c.Param("role"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown access point role: " + c.Param("role")})
			return
		}
		var req SoftApRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		orch.UpdateSoftApConfiguration(req.config(), role)
		accepted(c, "softap-update")
	}
}
