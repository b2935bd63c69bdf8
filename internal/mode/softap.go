package mode

import (
	"sync"

	"github.com/wavemode/wavemode/internal/ifacedriver"
	"github.com/wavemode/wavemode/internal/logging"
)

// SoftApConfig describes an access-point to run.
type SoftApConfig struct {
	SSID       string
	Passphrase string
	Band       string
	Channel    int
	MaxClients int
}

// Equal reports whether two configurations describe the same AP.
func (c SoftApConfig) Equal(o SoftApConfig) bool {
	return c == o
}

// SoftApCapability describes what the hardware supports for AP operation.
type SoftApCapability struct {
	MaxSupportedClients int
	SupportedBands      []string
}

// SoftApInfo carries the runtime facts observers care about once an AP is up.
type SoftApInfo struct {
	InterfaceName string
	Band          string
	Channel       int
}

// SoftApCallback receives access-point status notifications. For a
// non-primary originating manager these are gated through the broadcast
// sequencer before reaching external observers.
type SoftApCallback interface {
	OnSoftApStateChanged(role Role, state State, failureReason string)
	OnConnectedClientsChanged(role Role, count int)
	OnSoftApInfoChanged(role Role, info SoftApInfo)
}

// SoftApManager implements the access-point family roles. Unlike client
// managers its role is fixed at creation.
type SoftApManager struct {
	mu sync.Mutex

	id       string
	role     Role
	ws       WorkSource
	state    State
	iface    string
	cfg      SoftApConfig
	cap      SoftApCapability
	clients  int
	verbose  bool
	deferred bool

	driver   ifacedriver.Driver
	listener Listener
	callback SoftApCallback
}

// ID returns the opaque manager handle identifier.
func (m *SoftApManager) ID() string { return m.id }

// Role returns the manager's role.
func (m *SoftApManager) Role() Role { return m.role }

// State returns the manager's lifecycle state.
func (m *SoftApManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// InterfaceName returns the kernel interface name, empty until started.
func (m *SoftApManager) InterfaceName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.iface
}

// WorkSource returns the attribution context the manager was created with.
func (m *SoftApManager) WorkSource() WorkSource { return m.ws }

// Config returns the configuration the AP is running with.
func (m *SoftApManager) Config() SoftApConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// ConnectedClients returns the current station count.
func (m *SoftApManager) ConnectedClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clients
}

// Start requests AP interface setup. No-op unless the manager is Idle.
func (m *SoftApManager) Start() {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateStarting
	cfg := m.cfg
	m.mu.Unlock()

	if m.verbose {
		logging.Debug("Soft AP manager %s starting (ssid=%s role=%s)", m.id, cfg.SSID, m.role)
	}
	m.notifyState(StateStarting, "")

	m.driver.SetUpApInterface(ifacedriver.ApInterfaceRequest{
		Requester: m.ws.String(),
		SSID:      cfg.SSID,
		Band:      cfg.Band,
		Channel:   cfg.Channel,
	}, m.onSetup)
}

func (m *SoftApManager) onSetup(ifaceName string, err error) {
	m.mu.Lock()
	if err != nil {
		m.state = StateFailed
		m.mu.Unlock()
		logging.Error("Soft AP manager %s setup failed: %v", m.id, err)
		m.notifyState(StateFailed, err.Error())
		m.listener.OnStartFailure(m)
		return
	}

	m.state = StateStarted
	m.iface = ifaceName
	cfg := m.cfg
	deferred := m.deferred
	m.mu.Unlock()

	m.notifyState(StateStarted, "")
	if m.callback != nil {
		m.callback.OnSoftApInfoChanged(m.role, SoftApInfo{
			InterfaceName: ifaceName,
			Band:          cfg.Band,
			Channel:       cfg.Channel,
		})
	}
	m.listener.OnStarted(m)

	if deferred {
		m.Stop()
	}
}

// Stop implements Manager.
func (m *SoftApManager) Stop() {
	m.mu.Lock()
	switch m.state {
	case StateStarting:
		m.deferred = true
		m.mu.Unlock()
		return
	case StateStarted:
		m.state = StateStopping
		iface := m.iface
		m.mu.Unlock()
		m.notifyState(StateStopping, "")
		m.driver.TearDownInterface(iface, m.onTeardown)
		return
	default:
		m.mu.Unlock()
		return
	}
}

func (m *SoftApManager) onTeardown(err error) {
	if err != nil {
		logging.Warn("Soft AP manager %s teardown reported error: %v", m.id, err)
	}

	m.mu.Lock()
	m.state = StateStopped
	m.mu.Unlock()

	m.notifyState(StateStopped, "")
	m.listener.OnStopped(m)
}

// UpdateCapability applies a hardware capability update. The connected client
// limit is clamped to what the hardware now reports.
func (m *SoftApManager) UpdateCapability(cap SoftApCapability) {
	m.mu.Lock()
	m.cap = cap
	if cap.MaxSupportedClients > 0 && m.cfg.MaxClients > cap.MaxSupportedClients {
		m.cfg.MaxClients = cap.MaxSupportedClients
	}
	m.mu.Unlock()
}

// UpdateConfiguration applies shallow configuration changes (client limit,
// passphrase rotation) to a running AP without a restart. SSID, band, and
// channel changes require stop-and-restart through the orchestrator.
func (m *SoftApManager) UpdateConfiguration(cfg SoftApConfig) {
	m.mu.Lock()
	m.cfg.Passphrase = cfg.Passphrase
	m.cfg.MaxClients = cfg.MaxClients
	m.mu.Unlock()
}

// SetConnectedClients records the station count reported by the driver and
// notifies observers when it changes.
func (m *SoftApManager) SetConnectedClients(count int) {
	m.mu.Lock()
	changed := m.clients != count
	m.clients = count
	m.mu.Unlock()

	if changed && m.callback != nil {
		m.callback.OnConnectedClientsChanged(m.role, count)
	}
}

func (m *SoftApManager) notifyState(s State, reason string) {
	if m.callback != nil {
		m.callback.OnSoftApStateChanged(m.role, s, reason)
	}
}
