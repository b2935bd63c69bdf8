package warden

import (
	"time"

	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// recoveryPlan captures which roles were active when a restart was
// requested, so they can be recreated once everything has stopped and the
// recovery delay has elapsed. Secondary client managers are not recreated;
// their requesters observe the removal and re-request if they still care.
type recoveryPlan struct {
	reason     string
	hadClient  bool
	clientRole mode.Role
	softAps    []stagedSoftAp

	// awaiting counts managers that still owe a removal before the delay
	// timer can be armed.
	awaiting int
}

type stagedSoftAp struct {
	cfg  mode.SoftApConfig
	role mode.Role
	ws   mode.WorkSource
}

func (w *Warden) handleRestartAll(e restartAllEvent) {
	if w.emergency.active() || w.emergency.st == overlayPendingExit {
		logging.Warn("Restart request dropped during emergency mode: %s", e.reason)
		return
	}
	if w.shuttingDown {
		logging.Info("Restart request dropped during shutdown: %s", e.reason)
		return
	}
	if w.recovery != nil {
		logging.Warn("Restart request dropped, restart already in flight: %s", e.reason)
		return
	}

	logging.Warn("Restarting all mode managers: %s", e.reason)
	if e.reason != ReasonWatchdogTimeout && w.cfg.Diagnostics != nil {
		w.cfg.Diagnostics.CaptureBugReport(e.reason)
	}

	plan := &recoveryPlan{reason: e.reason}
	if axis := w.axisClientManager(); axis != nil {
		plan.hadClient = true
		plan.clientRole = axis.Role()
	}
	for _, ap := range w.softAps {
		plan.softAps = append(plan.softAps, stagedSoftAp{
			cfg:  ap.Config(),
			role: ap.Role(),
			ws:   ap.WorkSource(),
		})
	}
	plan.awaiting = len(w.clients) + len(w.softAps)

	w.pendingToggle = nil
	for role := range w.pendingSoftAp {
		delete(w.pendingSoftAp, role)
	}
	w.recovery = plan

	if plan.awaiting == 0 {
		w.armRecoveryTimer()
		return
	}
	w.stopAllClients()
	for _, ap := range w.softAps {
		if ap.State() != mode.StateStopping {
			ap.Stop()
		}
	}
}

// recoveryObserveRemoved accounts one manager removal against the staged
// plan and arms the delay timer once the active set is empty.
func (w *Warden) recoveryObserveRemoved() {
	if w.recovery == nil {
		return
	}
	if w.recovery.awaiting > 0 {
		w.recovery.awaiting--
	}
	if w.recovery.awaiting == 0 {
		w.armRecoveryTimer()
	}
}

// armRecoveryTimer schedules the recreate after the recovery delay. The
// generation guards against a timer from a cancelled plan firing into a
// newer one.
func (w *Warden) armRecoveryTimer() {
	w.recoveryGen++
	gen := w.recoveryGen
	logging.Info("All managers stopped, restarting in %v", w.cfg.RecoveryDelay)
	time.AfterFunc(w.cfg.RecoveryDelay, func() {
		w.enqueue(recoveryTimerEvent{generation: gen})
	})
}

func (w *Warden) handleRecoveryTimer(e recoveryTimerEvent) {
	if w.recovery == nil || e.generation != w.recoveryGen {
		return // Stale timer from a cancelled plan.
	}
	plan := w.recovery
	w.recovery = nil
	w.pendingToggle = nil

	if w.shuttingDown {
		logging.Info("Recovery recreate skipped, device shutting down")
		return
	}

	logging.Info("Recreating managers after restart: %s", plan.reason)
	if plan.hadClient {
		// Recreate only if current settings still call for a client; the
		// fault window may have included a toggle-off or airplane mode.
		if target := w.targetClientRole(); target != mode.RoleUnspecified {
			w.createClientManager(target, mode.WorkSource{Name: "recovery"})
		}
	}
	for _, staged := range plan.softAps {
		w.createSoftApManager(staged.cfg, staged.role, staged.ws)
	}
}

// recoveryCancel abandons any staged restart. In-flight timers for the
// cancelled plan are invalidated by the generation bump.
func (w *Warden) recoveryCancel() {
	if w.recovery == nil {
		return
	}
	logging.Warn("Cancelling staged restart: %s", w.recovery.reason)
	w.recovery = nil
	w.recoveryGen++
}
