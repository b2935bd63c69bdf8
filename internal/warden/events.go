package warden

import (
	"github.com/wavemode/wavemode/internal/ifacedriver"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// event is the tagged union carried on the serial queue. Variant structs
// hold whatever the handler needs; handleEvent dispatches on concrete type.
type event interface{}

type bootEvent struct{}

type toggleEvent struct {
	enable bool
	ws     mode.WorkSource
}

type scanAlwaysEvent struct{ available bool }

type locationModeEvent struct{ enabled bool }

type airplaneModeEvent struct{ on bool }

type startSoftApEvent struct {
	cfg  mode.SoftApConfig
	role mode.Role
	ws   mode.WorkSource
}

type stopSoftApEvent struct{ role mode.Role }

type updateSoftApCapabilityEvent struct{ cap mode.SoftApCapability }

type updateSoftApConfigurationEvent struct {
	cfg  mode.SoftApConfig
	role mode.Role
}

type requestClientEvent struct {
	role        mode.Role
	ws          mode.WorkSource
	networkHint string
	deliver     func(*mode.ClientManager)
}

type removeClientEvent struct{ m *mode.ClientManager }

type hardwareFaultEvent struct{ reason string }

type restartAllEvent struct{ reason string }

type shuttingDownEvent struct{}

type emergencySignalEvent struct {
	latch  emergencyLatch
	active bool
}

type registerCallbackEvent struct{ cb Callback }

type broadcastEvent struct {
	m *mode.ClientManager
	b Broadcast
}

type statusRequestEvent struct{ reply chan StatusSnapshot }

type recoveryTimerEvent struct{ generation int }

type barrierEvent struct{ done chan struct{} }

// Manager lifecycle events, posted by the mode.Listener funnel.
type managerStartedEvent struct{ m mode.Manager }

type managerStartFailedEvent struct{ m mode.Manager }

type managerStoppedEvent struct{ m mode.Manager }

type managerRoleChangedEvent struct {
	m        mode.Manager
	previous mode.Role
}

// handleEvent routes an event to its handler. Runs on the event loop
// goroutine only.
func (w *Warden) handleEvent(ev event) {
	switch e := ev.(type) {
	case bootEvent:
		w.handleBoot()
	case toggleEvent:
		w.handleToggle(e)
	case scanAlwaysEvent:
		w.scanAlways = e.available
		w.reconcileClientAxis()
	case locationModeEvent:
		w.location = e.enabled
		w.reconcileClientAxis()
	case airplaneModeEvent:
		w.handleAirplaneMode(e)
	case startSoftApEvent:
		w.handleStartSoftAp(e)
	case stopSoftApEvent:
		w.handleStopSoftAp(e)
	case updateSoftApCapabilityEvent:
		w.handleUpdateSoftApCapability(e)
	case updateSoftApConfigurationEvent:
		w.handleUpdateSoftApConfiguration(e)
	case requestClientEvent:
		w.handleRequestClient(e)
	case removeClientEvent:
		w.handleRemoveClient(e)
	case hardwareFaultEvent:
		w.handleHardwareFault(e)
	case restartAllEvent:
		w.handleRestartAll(e)
	case shuttingDownEvent:
		w.handleShuttingDown()
	case emergencySignalEvent:
		w.handleEmergencySignal(e)
	case registerCallbackEvent:
		w.callbacks = append(w.callbacks, e.cb)
	case broadcastEvent:
		w.sequencer.submit(e.m, e.b)
	case statusRequestEvent:
		e.reply <- w.snapshot()
	case recoveryTimerEvent:
		w.handleRecoveryTimer(e)
	case barrierEvent:
		close(e.done)
	case managerStartedEvent:
		w.handleManagerStarted(e.m)
	case managerStartFailedEvent:
		w.handleManagerStartFailed(e.m)
	case managerStoppedEvent:
		w.handleManagerStopped(e.m)
	case managerRoleChangedEvent:
		w.handleManagerRoleChanged(e.m, e.previous)
	default:
		logging.Warn("Unknown warden event type: %T", ev)
	}
}

// handleBoot seeds warden state from persisted settings. A device that
// rebooted with wifi enabled gets its primary manager back without any
// toggle intent arriving.
func (w *Warden) handleBoot() {
	s := w.cfg.Settings
	w.wifiDesired = s.IsWifiEnabled()
	w.scanAlways = s.IsScanAlwaysAvailable()
	w.location = s.IsLocationModeEnabled()
	w.airplaneOn = s.IsAirplaneModeOn()

	logging.Info("Warden boot: wifi=%t scan_always=%t location=%t airplane=%t",
		w.wifiDesired, w.scanAlways, w.location, w.airplaneOn)
	w.reconcileClientAxis()
}

func (w *Warden) handleToggle(e toggleEvent) {
	logging.Info("Wifi toggle: enable=%t requested by %s", e.enable, e.ws)
	w.wifiDesired = e.enable

	if w.emergency.active() {
		// Only the desired state moves during an emergency. A toggle-off
		// additionally suppresses the restore on emergency exit.
		if !e.enable {
			w.emergency.toggledOff = true
		}
		return
	}
	if w.clientTeardownInFlight() {
		// Remember exactly one toggle; the newest wins.
		enable := e.enable
		w.pendingToggle = &enable
		return
	}
	w.reconcileClientAxis()
}

func (w *Warden) handleAirplaneMode(e airplaneModeEvent) {
	logging.Info("Airplane mode: on=%t", e.on)
	w.airplaneOn = e.on

	if w.emergency.active() {
		return
	}
	if e.on {
		// Airplane mode grounds access points immediately; they are not
		// restored when it clears.
		for _, ap := range w.softAps {
			ap.Stop()
		}
	}
	if w.clientTeardownInFlight() {
		enable := !e.on && w.wifiDesired
		w.pendingToggle = &enable
		return
	}
	w.reconcileClientAxis()
}

// targetClientRole derives the role the client axis should run, or
// RoleUnspecified when no client interface should exist.
func (w *Warden) targetClientRole() mode.Role {
	if w.shuttingDown || w.airplaneOn {
		return mode.RoleUnspecified
	}
	if w.wifiDesired {
		return mode.RolePrimary
	}
	if w.scanAlways && w.location {
		return mode.RoleScanOnly
	}
	return mode.RoleUnspecified
}

// reconcileClientAxis drives the active client set toward targetClientRole.
// No-op while the emergency overlay owns the client axis or a recovery
// restart is staged; both resume reconciliation when they resolve.
func (w *Warden) reconcileClientAxis() {
	if w.emergency.active() || w.emergency.st == overlayPendingExit || w.recovery != nil {
		return
	}

	target := w.targetClientRole()
	if target == mode.RoleUnspecified {
		w.stopAllClients()
		if len(w.clients) == 0 {
			w.enabled = false
		}
		return
	}

	axis := w.axisClientManager()
	if axis == nil {
		if w.clientTeardownInFlight() {
			return // Recreate when the teardown completes.
		}
		w.createClientManager(target, mode.WorkSource{Name: "system"})
		return
	}
	if axis.Role() == target {
		return
	}
	if w.cfg.Driver.SupportsRoleSwitch() && axis.State() == mode.StateStarted {
		// In-place switch keeps the connection and any secondary managers
		// alive across primary<->scan-only transitions.
		logging.Info("Switching client manager %s role %s -> %s", axis.ID(), axis.Role(), target)
		axis.SetRole(target)
		return
	}
	// Fall back to teardown and recreate; the stop completion re-enters
	// reconciliation with the same target.
	w.stopAllClients()
}

// axisClientManager returns the client manager occupying the primary or
// scan-only slot, if any. Secondary managers never occupy the axis.
func (w *Warden) axisClientManager() *mode.ClientManager {
	for _, m := range w.clients {
		if m.Role() == mode.RolePrimary || m.Role() == mode.RoleScanOnly {
			return m
		}
	}
	return nil
}

// clientTeardownInFlight reports whether any client manager is mid-stop.
func (w *Warden) clientTeardownInFlight() bool {
	for _, m := range w.clients {
		if m.State() == mode.StateStopping {
			return true
		}
	}
	return false
}

func (w *Warden) stopAllClients() {
	for _, m := range w.clients {
		if m.State() != mode.StateStopping {
			m.Stop()
		}
	}
}

func (w *Warden) createClientManager(role mode.Role, ws mode.WorkSource) *mode.ClientManager {
	m := w.cfg.Factory.CreateClientManager(w, ws, role, w.cfg.Verbose)
	w.clients = append(w.clients, m)
	w.enabled = true
	logging.Info("Created client manager %s role %s for %s", m.ID(), role, ws)
	for _, cb := range w.callbacks {
		cb.OnActiveManagerAdded(m)
	}
	m.Start()
	return m
}

func (w *Warden) createSoftApManager(cfg mode.SoftApConfig, role mode.Role, ws mode.WorkSource) *mode.SoftApManager {
	m := w.cfg.Factory.CreateSoftApManager(w, w.cfg.SoftApCallback, cfg, ws, role, w.cfg.Verbose)
	w.softAps = append(w.softAps, m)
	logging.Info("Created soft AP manager %s role %s ssid=%q", m.ID(), role, cfg.SSID)
	for _, cb := range w.callbacks {
		cb.OnActiveManagerAdded(m)
	}
	m.Start()
	return m
}

// ---------------------------------------------------------------------------
// Soft AP intents
// ---------------------------------------------------------------------------

// softApRequest is a coalesced replacement staged behind a stop of the
// same-role AP manager.
type softApRequest struct {
	cfg mode.SoftApConfig
	ws  mode.WorkSource
}

func (w *Warden) handleStartSoftAp(e startSoftApEvent) {
	if !e.role.IsAccessPoint() {
		logging.Error("Soft AP start rejected: %s is not an access point role", e.role)
		w.notifySoftApRefused(e.role, "invalid role")
		return
	}
	if w.emergency.active() || w.emergency.st == overlayPendingExit {
		logging.Warn("Soft AP start rejected during emergency mode")
		w.notifySoftApRefused(e.role, "emergency mode active")
		return
	}
	if w.shuttingDown || w.airplaneOn {
		logging.Warn("Soft AP start rejected: shutting_down=%t airplane=%t", w.shuttingDown, w.airplaneOn)
		w.notifySoftApRefused(e.role, "radio unavailable")
		return
	}

	if existing := w.findSoftApByRole(e.role); existing != nil {
		if existing.Config().Equal(e.cfg) && existing.State() != mode.StateStopping {
			logging.Debug("Soft AP start for role %s is a duplicate, ignoring", e.role)
			return
		}
		// Same role, different config: replace. Stop the old one and stage
		// the new start behind its completion.
		logging.Info("Replacing soft AP role %s with new configuration", e.role)
		w.pendingSoftAp[e.role] = &softApRequest{cfg: e.cfg, ws: e.ws}
		if existing.State() != mode.StateStopping {
			existing.Stop()
		}
		return
	}

	if !w.cfg.Driver.CanCreateAdditionalInterface(ifacedriver.PurposeAccessPoint) {
		logging.Warn("Soft AP start rejected: no interface capacity for role %s", e.role)
		w.notifySoftApRefused(e.role, "no interface capacity")
		return
	}
	w.createSoftApManager(e.cfg, e.role, e.ws)
}

func (w *Warden) handleStopSoftAp(e stopSoftApEvent) {
	if e.role == mode.RoleUnspecified {
		for role := range w.pendingSoftAp {
			delete(w.pendingSoftAp, role)
		}
		for _, ap := range w.softAps {
			ap.Stop()
		}
		return
	}
	delete(w.pendingSoftAp, e.role)
	if ap := w.findSoftApByRole(e.role); ap != nil {
		ap.Stop()
	}
}

func (w *Warden) handleUpdateSoftApCapability(e updateSoftApCapabilityEvent) {
	for _, ap := range w.softAps {
		ap.UpdateCapability(e.cap)
	}
}

func (w *Warden) handleUpdateSoftApConfiguration(e updateSoftApConfigurationEvent) {
	ap := w.findSoftApByRole(e.role)
	if ap == nil {
		logging.Warn("Soft AP configuration update dropped: no manager with role %s", e.role)
		return
	}
	ap.UpdateConfiguration(e.cfg)
}

func (w *Warden) findSoftApByRole(role mode.Role) *mode.SoftApManager {
	for _, ap := range w.softAps {
		if ap.Role() == role {
			return ap
		}
	}
	return nil
}

// notifySoftApRefused surfaces a refusal on the AP status callback so
// requesters see a terminal failure rather than silence.
func (w *Warden) notifySoftApRefused(role mode.Role, reason string) {
	if w.cfg.SoftApCallback != nil {
		w.cfg.SoftApCallback.OnSoftApStateChanged(role, mode.StateFailed, reason)
	}
}

// ---------------------------------------------------------------------------
// Faults, restart, shutdown
// ---------------------------------------------------------------------------

func (w *Warden) handleHardwareFault(e hardwareFaultEvent) {
	if w.shuttingDown {
		logging.Info("Hardware fault suppressed during shutdown: %s", e.reason)
		return
	}
	logging.Error("Hardware fault reported: %s", e.reason)
	if w.cfg.Diagnostics != nil {
		w.cfg.Diagnostics.CaptureBugReport(e.reason)
	}
	if w.cfg.Recovery != nil {
		w.cfg.Recovery.Trigger(e.reason)
	}
}

func (w *Warden) handleShuttingDown() {
	if w.shuttingDown {
		return
	}
	logging.Info("Device shutdown notified, stopping all managers")
	w.shuttingDown = true
	w.recoveryCancel()
	w.pendingToggle = nil
	for role := range w.pendingSoftAp {
		delete(w.pendingSoftAp, role)
	}
	w.stopAllClients()
	for _, ap := range w.softAps {
		ap.Stop()
	}
}

// ---------------------------------------------------------------------------
// Manager lifecycle
// ---------------------------------------------------------------------------

func (w *Warden) handleManagerStarted(m mode.Manager) {
	logging.Success("Manager %s started: role=%s iface=%s", m.ID(), m.Role(), m.InterfaceName())

	if cm, ok := m.(*mode.ClientManager); ok {
		if cm.Role() == mode.RolePrimary && w.primary != cm {
			w.setPrimary(cm)
		}
		if cm.Role().IsSecondaryClient() && w.primary != nil {
			// Bias multi-link scheduling toward the primary connection.
			w.cfg.Driver.SetMultiLinkPrimary(w.primary.InterfaceName())
		}
		w.fulfillRequests(cm)
	}
}

func (w *Warden) handleManagerStartFailed(m mode.Manager) {
	if !w.inActiveSet(m) {
		return // Duplicate or stale failure event.
	}
	logging.Error("Manager %s failed to start: role=%s", m.ID(), m.Role())

	if cm, ok := m.(*mode.ClientManager); ok {
		w.refuseRequests(cm)
	}
	w.removeFromActiveSet(m)
	w.afterManagerRemoved(m, true)
}

func (w *Warden) handleManagerStopped(m mode.Manager) {
	if !w.inActiveSet(m) {
		return // Duplicate or stale stop event.
	}
	logging.Info("Manager %s stopped: role=%s", m.ID(), m.Role())
	w.removeFromActiveSet(m)
	w.afterManagerRemoved(m, false)
}

// afterManagerRemoved runs the continuations that wait on teardown
// completion, in strict precedence order: recovery restart, emergency
// restore, then the ordinary pending-toggle / reconcile path. A removal
// caused by a start failure never reconciles: the failure is terminal for
// that attempt, and only an explicit intent or the restart path tries again.
func (w *Warden) afterManagerRemoved(m mode.Manager, startFailed bool) {
	if w.recovery != nil {
		w.recoveryObserveRemoved()
		return
	}

	if _, ok := m.(*mode.ClientManager); ok {
		if len(w.clients) > 0 {
			return // More teardowns in flight; act on the last one.
		}
		if w.emergency.consumePendingExit() {
			if !startFailed {
				w.reconcileClientAxis()
			}
			return
		}
		if w.emergency.active() {
			return // Restore happens on emergency exit.
		}
		if w.shuttingDown {
			w.enabled = false
			return
		}
		if w.pendingToggle != nil {
			w.pendingToggle = nil
		}
		if !startFailed {
			w.reconcileClientAxis()
		}
		if len(w.clients) == 0 {
			w.enabled = false
		}
		return
	}

	if ap, ok := m.(*mode.SoftApManager); ok {
		if w.emergency.active() || w.shuttingDown || w.airplaneOn {
			return
		}
		if pending, ok := w.pendingSoftAp[ap.Role()]; ok {
			delete(w.pendingSoftAp, ap.Role())
			w.createSoftApManager(pending.cfg, ap.Role(), pending.ws)
		}
	}
}

func (w *Warden) handleManagerRoleChanged(m mode.Manager, previous mode.Role) {
	logging.Info("Manager %s role changed: %s -> %s", m.ID(), previous, m.Role())
	for _, cb := range w.callbacks {
		cb.OnActiveManagerRoleChanged(m)
	}

	cm, ok := m.(*mode.ClientManager)
	if !ok {
		return
	}
	if cm.Role() == mode.RolePrimary && w.primary != cm {
		w.setPrimary(cm)
	} else if previous == mode.RolePrimary && w.primary == cm {
		w.setPrimary(nil)
	}
}

// setPrimary moves the primary slot, notifying observers and letting the
// sequencer flush or clear held broadcasts.
func (w *Warden) setPrimary(cm *mode.ClientManager) {
	old := w.primary
	if old == cm {
		return
	}
	w.primary = cm
	for _, cb := range w.callbacks {
		cb.OnPrimaryClientChanged(old, cm)
	}
	w.sequencer.onPrimaryChanged(cm)
}

func (w *Warden) inActiveSet(m mode.Manager) bool {
	switch v := m.(type) {
	case *mode.ClientManager:
		for _, c := range w.clients {
			if c == v {
				return true
			}
		}
	case *mode.SoftApManager:
		for _, a := range w.softAps {
			if a == v {
				return true
			}
		}
	}
	return false
}

// removeFromActiveSet drops a manager from its family slice and fires the
// removal notifications common to stop and start failure.
func (w *Warden) removeFromActiveSet(m mode.Manager) {
	switch v := m.(type) {
	case *mode.ClientManager:
		for i, c := range w.clients {
			if c == v {
				w.clients = append(w.clients[:i], w.clients[i+1:]...)
				break
			}
		}
		if w.primary == v {
			w.setPrimary(nil)
		}
		w.sequencer.onManagerRemoved(v)
		w.dropRequestsFor(v)
	case *mode.SoftApManager:
		for i, a := range w.softAps {
			if a == v {
				w.softAps = append(w.softAps[:i], w.softAps[i+1:]...)
				break
			}
		}
	}
	for _, cb := range w.callbacks {
		cb.OnActiveManagerRemoved(m)
	}
}
