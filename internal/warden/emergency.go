package warden

import "github.com/wavemode/wavemode/internal/logging"

// emergencyLatch identifies one of the two OR-ed emergency input signals.
type emergencyLatch int

const (
	latchCallbackMode emergencyLatch = iota
	latchCallState
)

type overlayState int

const (
	// overlayInactive: no emergency in effect.
	overlayInactive overlayState = iota
	// overlayActive: emergency in effect; the overlay owns the client axis.
	overlayActive
	// overlayPendingExit: emergency has ended but clients stopped for it are
	// still tearing down; the restore fires when the last one completes.
	overlayPendingExit
)

// emergencyOverlay is the sub-state machine layered over the client axis
// while an emergency call or callback mode is in effect. The derived state
// is the OR of the two latches; side effects fire only on derived-state
// transitions, so repeated same-value signals are free.
type emergencyOverlay struct {
	callbackActive bool
	callActive     bool
	st             overlayState

	// wifiDisabled records that this emergency stopped client managers, and
	// therefore that exit owes a restore. Sampled once at entry.
	wifiDisabled bool
	// toggledOff records an ordinary wifi-off toggle during the emergency,
	// which cancels the restore.
	toggledOff bool
}

func (e *emergencyOverlay) derived() bool {
	return e.callbackActive || e.callActive
}

func (e *emergencyOverlay) active() bool {
	return e.st == overlayActive
}

// consumePendingExit resolves a deferred restore. Returns true exactly once
// per pending exit.
func (e *emergencyOverlay) consumePendingExit() bool {
	if e.st != overlayPendingExit {
		return false
	}
	e.st = overlayInactive
	e.wifiDisabled = false
	e.toggledOff = false
	return true
}

func (w *Warden) handleEmergencySignal(ev emergencySignalEvent) {
	e := &w.emergency
	before := e.derived()
	switch ev.latch {
	case latchCallbackMode:
		e.callbackActive = ev.active
	case latchCallState:
		e.callActive = ev.active
	}
	after := e.derived()
	if before == after {
		return // Latch refresh, no transition.
	}
	if after {
		w.enterEmergency()
	} else {
		w.exitEmergency()
	}
}

// enterEmergency applies the emergency shutdown side effects. Idempotent
// against re-entry from the pending-exit state: the earlier shutdown is
// still settling, so nothing is re-stopped.
func (w *Warden) enterEmergency() {
	e := &w.emergency
	if e.st == overlayActive {
		return
	}
	if e.st == overlayPendingExit {
		logging.Info("Emergency mode re-entered before restore completed")
		e.st = overlayActive
		return
	}

	logging.Warn("Emergency mode active")
	e.st = overlayActive
	e.wifiDisabled = false
	e.toggledOff = false

	// An emergency supersedes any staged restart or deferred toggle.
	w.recoveryCancel()
	w.pendingToggle = nil
	for role := range w.pendingSoftAp {
		delete(w.pendingSoftAp, role)
	}

	// Access points always go down; they are never restored on exit.
	for _, ap := range w.softAps {
		ap.Stop()
	}

	// The disable-wifi policy is sampled once at entry and holds for the
	// whole emergency period even if the setting changes mid-emergency.
	if w.cfg.Settings.IsWifiDisabledInEmergency() && len(w.clients) > 0 {
		logging.Warn("Stopping client managers for emergency mode")
		e.wifiDisabled = true
		w.stopAllClients()
	}
}

// exitEmergency ends the overlay and restores the client axis when this
// emergency was what disabled it. The restore is skipped if the user toggled
// wifi off during the period or a recovery restart is staged, and deferred
// if stops are still in flight.
func (w *Warden) exitEmergency() {
	e := &w.emergency
	if e.st == overlayInactive {
		return
	}
	logging.Info("Emergency mode ended")

	owesRestore := e.wifiDisabled && !e.toggledOff && w.wifiDesired
	if !owesRestore {
		e.st = overlayInactive
		e.wifiDisabled = false
		e.toggledOff = false
		w.reconcileClientAxis()
		return
	}
	if len(w.clients) > 0 {
		// Teardown still settling; restore on the last stop completion.
		e.st = overlayPendingExit
		return
	}
	e.st = overlayInactive
	e.wifiDisabled = false
	e.toggledOff = false
	w.reconcileClientAxis()
}
