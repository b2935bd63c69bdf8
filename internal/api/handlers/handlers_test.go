package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wavemode/wavemode/internal/mode"
	"github.com/wavemode/wavemode/internal/warden"
)

// fakeOrchestrator records intent calls for assertions.
type fakeOrchestrator struct {
	calls    []string
	lastRole mode.Role
	lastCfg  mode.SoftApConfig
	lastWS   mode.WorkSource
	status   warden.StatusSnapshot
}

func (f *fakeOrchestrator) SetWifiEnabled(enable bool, ws mode.WorkSource) {
	f.calls = append(f.calls, "wifi")
	f.lastWS = ws
}

func (f *fakeOrchestrator) SetScanAlwaysAvailable(bool) { f.calls = append(f.calls, "scan-always") }
func (f *fakeOrchestrator) SetLocationModeEnabled(bool) { f.calls = append(f.calls, "location") }
func (f *fakeOrchestrator) SetAirplaneMode(bool)        { f.calls = append(f.calls, "airplane") }

func (f *fakeOrchestrator) StartSoftAp(cfg mode.SoftApConfig, role mode.Role, ws mode.WorkSource) {
	f.calls = append(f.calls, "softap-start")
	f.lastCfg = cfg
	f.lastRole = role
	f.lastWS = ws
}

func (f *fakeOrchestrator) StopSoftAp(role mode.Role) {
	f.calls = append(f.calls, "softap-stop")
	f.lastRole = role
}

func (f *fakeOrchestrator) UpdateSoftApConfiguration(cfg mode.SoftApConfig, role mode.Role) {
	f.calls = append(f.calls, "softap-update")
	f.lastCfg = cfg
	f.lastRole = role
}

func (f *fakeOrchestrator) SetEmergencyCallbackModeActive(bool) {
	f.calls = append(f.calls, "emergency-callback")
}

func (f *fakeOrchestrator) SetEmergencyCallStateActive(bool) {
	f.calls = append(f.calls, "emergency-call")
}

func (f *fakeOrchestrator) RestartAll(reason string)          { f.calls = append(f.calls, "restart:"+reason) }
func (f *fakeOrchestrator) ReportHardwareFault(reason string) { f.calls = append(f.calls, "fault:"+reason) }
func (f *fakeOrchestrator) Status() warden.StatusSnapshot     { return f.status }

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

func TestHandleWifiToggle(t *testing.T) {
	orch := &fakeOrchestrator{}
	w := performJSON(t, HandleWifiToggle(orch), "POST", "/api/v1/wifi",
		map[string]interface{}{"enabled": true, "requester_uid": 1000, "requester_name": "settings-app"})

	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if len(orch.calls) != 1 || orch.calls[0] != "wifi" {
		t.Errorf("calls = %v, want [wifi]", orch.calls)
	}
	if orch.lastWS.Name != "settings-app" || orch.lastWS.UID != 1000 {
		t.Errorf("work source = %+v, want settings-app/1000", orch.lastWS)
	}
}

func TestHandleWifiToggleDefaultsWorkSource(t *testing.T) {
	orch := &fakeOrchestrator{}
	performJSON(t, HandleWifiToggle(orch), "POST", "/api/v1/wifi",
		map[string]interface{}{"enabled": false})

	if orch.lastWS.Name != "api" {
		t.Errorf("work source name = %q, want api", orch.lastWS.Name)
	}
}

func TestHandleWifiToggleMalformedBody(t *testing.T) {
	orch := &fakeOrchestrator{}
	w := httptest.NewRecorder()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/wifi", bytes.NewBufferString("{not json"))
	HandleWifiToggle(orch)(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if len(orch.calls) != 0 {
		t.Errorf("calls = %v, want none for malformed payload", orch.calls)
	}
}

func TestHandleSoftApStart(t *testing.T) {
	orch := &fakeOrchestrator{}
	w := performJSON(t, HandleSoftApStart(orch), "POST", "/api/v1/softap", map[string]interface{}{
		"role":       "tethered-ap",
		"ssid":       "garage",
		"passphrase": "hunter22",
		"band":       "5GHz",
		"channel":    36,
	})

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusAccepted, w.Body.String())
	}
	if orch.lastRole != mode.RoleTetheredAP {
		t.Errorf("role = %s, want tethered-ap", orch.lastRole)
	}
	if orch.lastCfg.SSID != "garage" || orch.lastCfg.Band != "5GHz" || orch.lastCfg.Channel != 36 {
		t.Errorf("config = %+v, want garage/5GHz/36", orch.lastCfg)
	}
}

func TestHandleSoftApStartRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown role", map[string]interface{}{"role": "primary", "ssid": "garage"}},
		{"missing ssid", map[string]interface{}{"role": "tethered-ap"}},
		{"short passphrase", map[string]interface{}{"role": "tethered-ap", "ssid": "garage", "passphrase": "abc"}},
		{"bad band", map[string]interface{}{"role": "tethered-ap", "ssid": "garage", "band": "7GHz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := &fakeOrchestrator{}
			w := performJSON(t, HandleSoftApStart(orch), "POST", "/api/v1/softap", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if len(orch.calls) != 0 {
				t.Errorf("calls = %v, want none", orch.calls)
			}
		})
	}
}

func TestHandleSoftApStopRoles(t *testing.T) {
	orch := &fakeOrchestrator{}
	w := performJSON(t, HandleSoftApStop(orch), "DELETE", "/api/v1/softap/local-only-ap", nil,
		gin.Param{Key: "role", Value: "local-only-ap"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if orch.lastRole != mode.RoleLocalOnlyAP {
		t.Errorf("role = %s, want local-only-ap", orch.lastRole)
	}

	w = performJSON(t, HandleSoftApStop(orch), "DELETE", "/api/v1/softap/all", nil,
		gin.Param{Key: "role", Value: "all"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if orch.lastRole != mode.RoleUnspecified {
		t.Errorf("role = %s, want unspecified for stop-all", orch.lastRole)
	}
}

func TestHandleRestartRequiresReason(t *testing.T) {
	orch := &fakeOrchestrator{}
	w := performJSON(t, HandleRestart(orch), "POST", "/api/v1/restart", map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for missing reason", w.Code, http.StatusBadRequest)
	}

	w = performJSON(t, HandleRestart(orch), "POST", "/api/v1/restart",
		map[string]interface{}{"reason": "driver-crash"})
	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
	if len(orch.calls) != 1 || orch.calls[0] != "restart:driver-crash" {
		t.Errorf("calls = %v, want [restart:driver-crash]", orch.calls)
	}
}

func TestHandleStatus(t *testing.T) {
	orch := &fakeOrchestrator{status: warden.StatusSnapshot{
		Enabled:     true,
		WifiDesired: true,
		ClientManagers: []warden.ClientManagerStatus{
			{ID: "abc123", Role: "primary", State: "started", Primary: true},
		},
	}}

	w := performJSON(t, HandleStatus(orch), "GET", "/api/v1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var got warden.StatusSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !got.Enabled || len(got.ClientManagers) != 1 || got.ClientManagers[0].Role != "primary" {
		t.Errorf("snapshot = %+v, want enabled with one primary manager", got)
	}
}
