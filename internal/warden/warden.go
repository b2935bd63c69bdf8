// Package warden implements the mode orchestration state machine: the single
// authority deciding which radio roles are active on the device and
// sequencing the startup and shutdown of the mode managers that implement
// them.
//
// SERIALIZATION MODEL:
// Every external intent (toggles, AP requests, emergency signals, recovery)
// and every manager lifecycle callback becomes a tagged event on one ordered
// queue, drained by a single goroutine. This gives a total order between
// caller intents and manager completions matching real-world arrival order,
// which is what makes the airplane-toggle deferral and the emergency-mode
// debouncing correct without any locking of warden state.
//
// Mode managers may run their internals on other goroutines, but they only
// talk back to the warden through this queue.
package warden

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wavemode/wavemode/internal/ifacedriver"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// Fault reasons accepted by RestartAll and ReportHardwareFault. The routine
// watchdog reason skips the diagnostic bug report; everything else captures
// one.
const (
	ReasonWatchdogTimeout = "watchdog-timeout"
	ReasonHardwareFault   = "hardware-fault"
	ReasonDriverCrash     = "driver-crash"
)

// DefaultEventBufferSize is the queue depth for the serial event channel.
// Sized generously: producers block (never drop) when the queue is full,
// since lifecycle events must not be lost.
const DefaultEventBufferSize = 256

// Settings is the read surface of the external settings collaborator.
// Queried at boot and on re-evaluation points; never written by the warden.
type Settings interface {
	IsWifiEnabled() bool
	IsScanAlwaysAvailable() bool
	IsAirplaneModeOn() bool
	IsLocationModeEnabled() bool
	IsWifiDisabledInEmergency() bool
}

// Recovery is the external self-recovery collaborator. Trigger is expected
// to eventually call back into RestartAll.
type Recovery interface {
	Trigger(reason string)
}

// Diagnostics is the external bug-report capture collaborator.
type Diagnostics interface {
	CaptureBugReport(reason string)
}

// Callback receives active-manager change notifications. All methods are
// invoked from the warden's event loop; implementations must not call back
// into the warden synchronously.
type Callback interface {
	OnActiveManagerAdded(m mode.Manager)
	OnActiveManagerRemoved(m mode.Manager)
	OnActiveManagerRoleChanged(m mode.Manager)
	OnPrimaryClientChanged(old, new *mode.ClientManager)
}

// FeatureFlags gates each secondary client role family independently.
type FeatureFlags struct {
	LocalOnlyClient    bool
	SecondaryLongLived bool
	SecondaryTransient bool
}

// Config holds warden construction parameters.
type Config struct {
	Factory     mode.Factory
	Driver      ifacedriver.Driver
	Settings    Settings
	Recovery    Recovery
	Diagnostics Diagnostics

	SoftApCallback mode.SoftApCallback // Optional AP status observer

	RecoveryDelay   time.Duration // Wait after last stop before recovery recreate
	Features        FeatureFlags
	EventBufferSize int
	Verbose         bool
}

// DefaultConfig returns a config with defaults for everything that has one.
// Factory, Driver, and Settings have no defaults and must be provided.
func DefaultConfig() *Config {
	return &Config{
		RecoveryDelay:   2 * time.Second,
		EventBufferSize: DefaultEventBufferSize,
	}
}

// validateConfig validates warden configuration.
func validateConfig(cfg *Config) error {
	if cfg.Factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}
	if cfg.Driver == nil {
		return fmt.Errorf("driver cannot be nil")
	}
	if cfg.Settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if cfg.RecoveryDelay <= 0 {
		return fmt.Errorf("recovery delay must be positive, got: %v", cfg.RecoveryDelay)
	}
	if cfg.EventBufferSize < 1 {
		return fmt.Errorf("event buffer size must be positive, got: %d", cfg.EventBufferSize)
	}
	return nil
}

// Warden owns the authoritative set of active mode managers and the
// top-level Disabled/Enabled client axis. All fields below the queue are
// owned exclusively by the event loop goroutine.
type Warden struct {
	cfg    *Config
	events chan event
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Client axis
	enabled     bool // Enabled iff at least one client manager exists
	wifiDesired bool // Last requested toggle state
	scanAlways  bool
	location    bool
	airplaneOn  bool

	// Active manager set, partitioned by family
	clients []*mode.ClientManager
	softAps []*mode.SoftApManager
	primary *mode.ClientManager

	// At most one remembered toggle while client teardown is in flight;
	// a newer toggle overwrites rather than queues behind an older one.
	pendingToggle *bool

	// Coalesced "stop old, start new" AP replacements keyed by role
	pendingSoftAp map[mode.Role]*softApRequest

	shuttingDown bool

	emergency   emergencyOverlay
	recovery    *recoveryPlan
	recoveryGen int

	requests  []*clientRequest
	callbacks []Callback
	sequencer *sequencer
}

// New creates a Warden. Call Start to begin processing.
func New(cfg *Config) (*Warden, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.RecoveryDelay == 0 {
		cfg.RecoveryDelay = DefaultConfig().RecoveryDelay
	}
	if cfg.EventBufferSize == 0 {
		cfg.EventBufferSize = DefaultEventBufferSize
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Warden{
		cfg:           cfg,
		events:        make(chan event, cfg.EventBufferSize),
		ctx:           ctx,
		cancel:        cancel,
		pendingSoftAp: make(map[mode.Role]*softApRequest),
		sequencer:     newSequencer(),
	}, nil
}

// Start launches the event loop and evaluates boot-time settings: a "wifi
// enabled" setting creates a primary client manager without any toggle call.
func (w *Warden) Start() error {
	logging.Info("Starting mode warden")

	w.wg.Add(1)
	go w.processEvents()

	w.enqueue(bootEvent{})
	return nil
}

// Shutdown stops the event loop. Managers are left to the OS to reap; use
// NotifyShuttingDown first if the device is going down in an orderly way.
func (w *Warden) Shutdown() {
	logging.Info("Shutting down mode warden")
	w.cancel()
	w.wg.Wait()
}

// enqueue posts an event onto the serial queue. Blocks if the queue is full;
// returns without posting once the warden is shut down.
func (w *Warden) enqueue(ev event) {
	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}

// processEvents drains the serial queue. All warden state mutation happens
// on this goroutine.
func (w *Warden) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case ev := <-w.events:
			w.handleEvent(ev)
		case <-w.ctx.Done():
			logging.Info("Mode warden event loop stopped")
			return
		}
	}
}

// ---------------------------------------------------------------------------
// Public intents. Each enqueues onto the serial queue; callers never block on
// orchestrator work and observe outcomes via callbacks or Status.
// ---------------------------------------------------------------------------

// SetWifiEnabled requests the client axis be enabled or disabled.
func (w *Warden) SetWifiEnabled(enable bool, ws mode.WorkSource) {
	w.enqueue(toggleEvent{enable: enable, ws: ws})
}

// SetScanAlwaysAvailable updates the scan-always setting and re-evaluates
// the client axis.
func (w *Warden) SetScanAlwaysAvailable(available bool) {
	w.enqueue(scanAlwaysEvent{available: available})
}

// SetLocationModeEnabled updates the location-mode setting and re-evaluates
// the client axis.
func (w *Warden) SetLocationModeEnabled(enabled bool) {
	w.enqueue(locationModeEvent{enabled: enabled})
}

// SetAirplaneMode applies an airplane-mode change. A change that lands while
// a client teardown is in flight is remembered and replayed when the
// teardown completes.
func (w *Warden) SetAirplaneMode(on bool) {
	w.enqueue(airplaneModeEvent{on: on})
}

// StartSoftAp requests an access-point manager for the given role. Refusals
// (emergency active, admission denied) surface on the configured soft AP
// callback as a Failed state with a reason.
func (w *Warden) StartSoftAp(cfg mode.SoftApConfig, role mode.Role, ws mode.WorkSource) {
	w.enqueue(startSoftApEvent{cfg: cfg, role: role, ws: ws})
}

// StopSoftAp stops all AP managers of the matching role, or all AP managers
// when role is RoleUnspecified.
func (w *Warden) StopSoftAp(role mode.Role) {
	w.enqueue(stopSoftApEvent{role: role})
}

// UpdateSoftApCapability forwards a hardware capability update to running
// AP managers.
func (w *Warden) UpdateSoftApCapability(cap mode.SoftApCapability) {
	w.enqueue(updateSoftApCapabilityEvent{cap: cap})
}

// UpdateSoftApConfiguration applies a shallow configuration update to the
// running AP manager of the matching role.
func (w *Warden) UpdateSoftApConfiguration(cfg mode.SoftApConfig, role mode.Role) {
	w.enqueue(updateSoftApConfigurationEvent{cfg: cfg, role: role})
}

// RequestLocalOnlyClientManager requests a local-only client manager.
// deliver is invoked from the event loop with the granted manager, or nil on
// refusal.
func (w *Warden) RequestLocalOnlyClientManager(ws mode.WorkSource, networkHint string, deliver func(*mode.ClientManager)) {
	w.enqueue(requestClientEvent{role: mode.RoleLocalOnlyClient, ws: ws, networkHint: networkHint, deliver: deliver})
}

// RequestSecondaryLongLivedClientManager requests a long-lived secondary
// client manager.
func (w *Warden) RequestSecondaryLongLivedClientManager(ws mode.WorkSource, networkHint string, deliver func(*mode.ClientManager)) {
	w.enqueue(requestClientEvent{role: mode.RoleSecondaryLongLived, ws: ws, networkHint: networkHint, deliver: deliver})
}

// RequestSecondaryTransientClientManager requests a transient secondary
// client manager.
func (w *Warden) RequestSecondaryTransientClientManager(ws mode.WorkSource, networkHint string, deliver func(*mode.ClientManager)) {
	w.enqueue(requestClientEvent{role: mode.RoleSecondaryTransient, ws: ws, networkHint: networkHint, deliver: deliver})
}

// RemoveClientManager releases a previously granted client manager.
func (w *Warden) RemoveClientManager(m *mode.ClientManager) {
	w.enqueue(removeClientEvent{m: m})
}

// ReportHardwareFault requests a diagnostic capture and triggers the
// recovery collaborator. Suppressed once the device is shutting down.
func (w *Warden) ReportHardwareFault(reason string) {
	w.enqueue(hardwareFaultEvent{reason: reason})
}

// RestartAll stops every active manager and recreates the previously active
// roles after the recovery delay. Dropped outright while emergency mode is
// active.
func (w *Warden) RestartAll(reason string) {
	w.enqueue(restartAllEvent{reason: reason})
}

// NotifyShuttingDown latches the device-shutdown state. One-way.
func (w *Warden) NotifyShuttingDown() {
	w.enqueue(shuttingDownEvent{})
}

// SetEmergencyCallbackModeActive ingests the emergency callback mode signal.
func (w *Warden) SetEmergencyCallbackModeActive(active bool) {
	w.enqueue(emergencySignalEvent{latch: latchCallbackMode, active: active})
}

// SetEmergencyCallStateActive ingests the emergency call state signal.
func (w *Warden) SetEmergencyCallStateActive(active bool) {
	w.enqueue(emergencySignalEvent{latch: latchCallState, active: active})
}

// RegisterCallback registers an active-manager observer. Registration is
// itself serialized, so a callback never misses events enqueued after the
// registration intent.
func (w *Warden) RegisterCallback(cb Callback) {
	w.enqueue(registerCallbackEvent{cb: cb})
}

// EnqueueBroadcast submits a role-scoped broadcast attributed to a client
// manager. Broadcasts from the primary manager dispatch immediately; others
// are held until that manager becomes primary, per the sequencing contract.
func (w *Warden) EnqueueBroadcast(m *mode.ClientManager, b Broadcast) {
	w.enqueue(broadcastEvent{m: m, b: b})
}

// Status returns a snapshot of warden state, served through the serial queue
// so it is consistent with event order. Blocks briefly for the round trip.
func (w *Warden) Status() StatusSnapshot {
	reply := make(chan StatusSnapshot, 1)
	w.enqueue(statusRequestEvent{reply: reply})
	select {
	case s := <-reply:
		return s
	case <-w.ctx.Done():
		return StatusSnapshot{}
	}
}

// drain posts a barrier event and waits for it, guaranteeing all previously
// enqueued events have been processed. Test synchronization helper.
func (w *Warden) drain() {
	done := make(chan struct{})
	w.enqueue(barrierEvent{done: done})
	select {
	case <-done:
	case <-w.ctx.Done():
	}
}

// ---------------------------------------------------------------------------
// mode.Listener implementation: manager lifecycle callbacks arrive on
// arbitrary goroutines and are funneled onto the serial queue.
// ---------------------------------------------------------------------------

// OnStarted implements mode.Listener.
func (w *Warden) OnStarted(m mode.Manager) {
	w.enqueue(managerStartedEvent{m: m})
}

// OnStartFailure implements mode.Listener.
func (w *Warden) OnStartFailure(m mode.Manager) {
	w.enqueue(managerStartFailedEvent{m: m})
}

// OnStopped implements mode.Listener.
func (w *Warden) OnStopped(m mode.Manager) {
	w.enqueue(managerStoppedEvent{m: m})
}

// OnRoleChanged implements mode.Listener.
func (w *Warden) OnRoleChanged(m mode.Manager, previous mode.Role) {
	w.enqueue(managerRoleChangedEvent{m: m, previous: previous})
}
