package warden

import (
	"testing"

	"github.com/wavemode/wavemode/internal/mode"
)

func TestEmergencyStopsAccessPointsAlways(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true})
	h.settle()
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage", Band: "2.4GHz"}, mode.RoleTetheredAP, testWS)
	h.settle()

	// disable-in-emergency is off: APs go down, the client stays.
	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	s := h.status()
	if !s.EmergencyActive {
		t.Fatalf("EmergencyActive = false, want true")
	}
	if len(s.SoftApManagers) != 0 {
		t.Errorf("%d AP managers during emergency, want 0", len(s.SoftApManagers))
	}
	if len(s.ClientManagers) != 1 {
		t.Errorf("%d client managers, want 1 (disable-in-emergency off)", len(s.ClientManagers))
	}

	// APs are never restored on exit.
	h.w.SetEmergencyCallStateActive(false)
	h.settle()
	if n := len(h.status().SoftApManagers); n != 0 {
		t.Errorf("%d AP managers restored after emergency, want 0", n)
	}
}

func TestEmergencyDisablesAndRestoresClient(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	h.w.SetEmergencyCallbackModeActive(true)
	h.settle()
	if n := len(h.status().ClientManagers); n != 0 {
		t.Fatalf("%d client managers during emergency, want 0", n)
	}

	h.w.SetEmergencyCallbackModeActive(false)
	h.settle()
	s := h.status()
	if len(s.ClientManagers) != 1 || s.ClientManagers[0].Role != "primary" {
		t.Errorf("after emergency exit: %+v, want one primary manager restored", s.ClientManagers)
	}
}

func TestEmergencyDerivedStateIsOrOfLatches(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	h.w.SetEmergencyCallStateActive(true)
	h.w.SetEmergencyCallbackModeActive(true)
	h.settle()
	teardowns := h.driver.TeardownCalls

	// Spurious repeats must not re-run shutdown side effects.
	h.w.SetEmergencyCallStateActive(true)
	h.w.SetEmergencyCallbackModeActive(true)
	h.settle()
	if got := h.driver.TeardownCalls; got != teardowns {
		t.Errorf("teardown calls = %d, want %d (no repeat side effects)", got, teardowns)
	}

	// One latch clearing keeps the emergency in effect.
	h.w.SetEmergencyCallbackModeActive(false)
	h.settle()
	s := h.status()
	if !s.EmergencyActive {
		t.Fatalf("EmergencyActive = false with call latch still set, want true")
	}
	if n := len(s.ClientManagers); n != 0 {
		t.Errorf("%d client managers restored early, want 0", n)
	}

	h.w.SetEmergencyCallStateActive(false)
	h.settle()
	s = h.status()
	if s.EmergencyActive {
		t.Errorf("EmergencyActive = true after both latches cleared, want false")
	}
	if len(s.ClientManagers) != 1 {
		t.Errorf("%d client managers after exit, want 1 restored", len(s.ClientManagers))
	}
}

func TestEmergencyToggleOffSuppressesRestore(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	h.w.SetWifiEnabled(false, testWS)
	h.w.drain()

	h.w.SetEmergencyCallStateActive(false)
	h.settle()
	s := h.status()
	if len(s.ClientManagers) != 0 {
		t.Errorf("%d client managers after exit, want 0 (user toggled off mid-emergency)", len(s.ClientManagers))
	}
	if s.WifiDesired {
		t.Errorf("WifiDesired = true, want false")
	}
}

func TestEmergencyExitBeforeTeardownCompletesDefersRestore(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	// Enter and exit while the emergency stop is still in flight.
	h.w.SetEmergencyCallStateActive(true)
	h.w.drain()
	h.w.SetEmergencyCallStateActive(false)
	h.w.drain()
	if st := h.status().ClientManagers[0].State; st != "stopping" {
		t.Fatalf("State = %s, want stopping", st)
	}

	h.settle()
	s := h.status()
	if len(s.ClientManagers) != 1 || s.ClientManagers[0].State != "started" {
		t.Errorf("after deferred restore: %+v, want one started manager", s.ClientManagers)
	}
	if s.ClientManagers[0].Role != "primary" {
		t.Errorf("Role = %s, want primary", s.ClientManagers[0].Role)
	}
}

func TestEmergencyReentryBeforeRestoreStaysDown(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	h.w.SetEmergencyCallStateActive(true)
	h.w.drain()
	h.w.SetEmergencyCallStateActive(false)
	h.w.drain()
	// Emergency re-enters before the deferred restore could run.
	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	s := h.status()
	if !s.EmergencyActive {
		t.Fatalf("EmergencyActive = false after re-entry, want true")
	}
	if n := len(s.ClientManagers); n != 0 {
		t.Errorf("%d client managers, want 0 while re-entered emergency holds", n)
	}

	h.w.SetEmergencyCallStateActive(false)
	h.settle()
	if n := len(h.status().ClientManagers); n != 1 {
		t.Errorf("%d client managers after final exit, want 1 restored", n)
	}
}

func TestEmergencyDisablePolicySampledAtEntry(t *testing.T) {
	settings := &fakeSettings{wifiEnabled: true, disableInEmergency: false}
	h := newHarness(t, settings)
	h.settle()

	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	if n := len(h.status().ClientManagers); n != 1 {
		t.Fatalf("%d client managers, want 1 (policy off at entry)", n)
	}

	// Flipping the setting mid-emergency must not take effect until the
	// next emergency period.
	settings.setDisableInEmergency(true)
	h.w.SetEmergencyCallbackModeActive(true) // latch refresh, no transition
	h.settle()
	if n := len(h.status().ClientManagers); n != 1 {
		t.Errorf("%d client managers after mid-emergency policy change, want 1", n)
	}
}

func TestEmergencyCancelsStagedRestart(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true, disableInEmergency: true})
	h.settle()

	h.w.RestartAll(ReasonDriverCrash)
	h.w.drain()
	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	s := h.status()
	if s.RecoveryStaged {
		t.Errorf("RecoveryStaged = true, want false (emergency cancels restart)")
	}

	// A restart requested during the emergency is dropped outright.
	h.w.RestartAll(ReasonDriverCrash)
	h.settle()
	if h.status().RecoveryStaged {
		t.Errorf("restart accepted during emergency, want dropped")
	}

	h.w.SetEmergencyCallStateActive(false)
	h.settle()
	s = h.status()
	if len(s.ClientManagers) != 1 {
		t.Errorf("%d client managers after exit, want 1 restored", len(s.ClientManagers))
	}
}

func TestSoftApRefusedDuringEmergency(t *testing.T) {
	h := newHarness(t, &fakeSettings{wifiEnabled: true})
	h.settle()

	h.w.SetEmergencyCallStateActive(true)
	h.settle()
	h.w.StartSoftAp(mode.SoftApConfig{SSID: "garage"}, mode.RoleTetheredAP, testWS)
	h.settle()

	if n := len(h.status().SoftApManagers); n != 0 {
		t.Fatalf("%d AP managers created during emergency, want 0", n)
	}
	if got := h.apcb.lastState(); got != "tethered-ap/failed/emergency mode active" {
		t.Errorf("AP callback = %q, want refusal with emergency reason", got)
	}
}
