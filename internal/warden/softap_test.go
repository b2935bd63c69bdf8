package warden

import (
	"testing"

	"github.com/wavemode/wavemode/internal/mode"
)

func TestSoftApStartAndStop(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.settle()

	cfg := mode.SoftApConfig{SSID: "garage", Passphrase: "hunter22", Band: "2.4GHz", Channel: 6}
	h.w.StartSoftAp(cfg, mode.RoleTetheredAP, testWS)
	h.settle()
	s := h.status()
	if len(s.SoftApManagers) != 1 {
		t.Fatalf("len(SoftApManagers) = %d, want 1", len(s.SoftApManagers))
	}
	ap := s.SoftApManagers[0]
	if ap.Role != "tethered-ap" || ap.State != "started" || ap.SSID != "garage" {
		t.Errorf("AP = %s/%s ssid=%q, want tethered-ap/started ssid=garage", ap.Role, ap.State, ap.SSID)
	}
	// An AP alone does not enable the client axis.
	if s.Enabled || len(s.ClientManagers) != 0 {
		t.Errorf("client axis touched by AP start: enabled=%t clients=%d", s.Enabled, len(s.ClientManagers))
	}

	h.w.StopSoftAp(mode.RoleTetheredAP)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Errorf("len(SoftApManagers) = %d after stop, want 0", n)
	}
}

func TestSoftApDuplicateStartIgnored(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	cfg := mode.SoftApConfig{SSID: "garage", Band: "5GHz"}
	h.w.StartSoftAp(cfg, mode.RoleTetheredAP, testWS)
	h.settle()
	id := h.status().SoftApManagers[0].ID

	h.w.StartSoftAp(cfg, mode.RoleTetheredAP, testWS)
	h.settle()
	s := h.status()
	if len(s.SoftApManagers) != 1 || s.SoftApManagers[0].ID != id {
		t.Errorf("duplicate start changed managers: %+v, want untouched %s", s.SoftApManagers, id)
	}
	if len(h.cb.added) != 1 {
		t.Errorf("added callbacks = %d, want 1", len(h.cb.added))
	}
}

func TestSoftApReplacementCoalesces(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage", Band: "2.4GHz"}, mode.RoleTetheredAP, testWS)
	h.settle()
	oldID := h.status().SoftApManagers[0].ID

	// Same role, different config: the old AP stops and the new config
	// starts only after the old teardown completes.
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage-5g", Band: "5GHz"}, mode.RoleTetheredAP, testWS)
	h.w.drain()
	if st := h.status().SoftApManagers[0].State; st != "stopping" {
		t.Fatalf("old AP state = %s, want stopping", st)
	}

	h.settle()
	s := h.status()
	if len(s.SoftApManagers) != 1 {
		t.Fatalf("len(SoftApManagers) = %d, want 1 replacement", len(s.SoftApManagers))
	}
	ap := s.SoftApManagers[0]
	if ap.ID == oldID {
		t.Errorf("AP was not replaced, same ID %s", oldID)
	}
	if ap.SSID != "garage-5g" || ap.State != "started" {
		t.Errorf("replacement AP = ssid=%q state=%s, want garage-5g/started", ap.SSID, ap.State)
	}
}

func TestSoftApStopAllRoles(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage"}, mode.RoleTetheredAP, testWS)
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "local"}, mode.RoleLocalOnlyAP, testWS)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 2 {
		t.Fatalf("len(SoftApManagers) = %d, want 2", n)
	}

	h.w.StopSoftAp(mode.RoleUnspecified)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Errorf("len(SoftApManagers) = %d after stop-all, want 0", n)
	}
}

func TestSoftApCapacityRefusal(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.driver.SetMaxConcurrency(1, 0)

	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage"}, mode.RoleTetheredAP, testWS)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Fatalf("len(SoftApManagers) = %d, want 0 with no AP capacity", n)
	}
	if got := h.apcb.lastState(); got != "tethered-ap/failed/no interface capacity" {
		t.Errorf("AP callback = %q, want capacity refusal", got)
	}
}

func TestSoftApClientRoleRejected(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage"}, mode.RolePrimary, testWS)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Errorf("len(SoftApManagers) = %d, want 0 for non-AP role", n)
	}
	if got := h.apcb.lastState(); got != "primary/failed/invalid role" {
		t.Errorf("AP callback = %q, want invalid role refusal", got)
	}
}

func TestSoftApConfigurationUpdateInPlace(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage", Passphrase: "hunter22", MaxClients: 8}, mode.RoleTetheredAP, testWS)
	h.settle()
	id := h.status().SoftApManagers[0].ID

	h.w.UpdateSoftApConfiguration(mode.SoftApConfig{SSID: "garage", Passphrase: "newpass99", MaxClients: 4}, mode.RoleTetheredAP)
	h.settle()
	s := h.status()
	if s.SoftApManagers[0].ID != id {
		t.Errorf("configuration update replaced the manager, want in-place")
	}
	if s.SoftApManagers[0].State != "started" {
		t.Errorf("State = %s after update, want started", s.SoftApManagers[0].State)
	}
}

func TestSoftApCapabilityUpdateClampsClientLimit(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage", MaxClients: 16}, mode.RoleTetheredAP, testWS)
	h.settle()

	h.w.UpdateSoftApCapability(mode.SoftApCapability{MaxSupportedClients: 5})
	h.settle()

	ap := h.w.softAps[0]
	if got := ap.Config().MaxClients; got != 5 {
		t.Errorf("MaxClients = %d after capability update, want 5", got)
	}
	if h.status().SoftApManagers[0].State != "started" {
		t.Errorf("capability update disturbed the running AP")
	}
}

func TestAirplaneModeGroundsAccessPoints(t *testing.T) {
	h := newHarness(t, &fakeSettings{})
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage"}, mode.RoleTetheredAP, testWS)
	h.settle()

	h.w.SetAirplaneMode(true)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Fatalf("len(SoftApManagers) = %d in airplane mode, want 0", n)
	}

	// Clearing airplane mode does not restore the AP.
	h.w.SetAirplaneMode(false)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Errorf("len(SoftApManagers) = %d after airplane off, want 0 (explicit restart required)", n)
	}
}
