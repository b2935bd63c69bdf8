// Package mode defines the mode manager abstraction: the runtime unit that
// implements one radio role (client or access-point) on one wireless
// interface.
//
// Managers have an asynchronous lifecycle. Start and Stop are fire-and-forget
// against the radio driver; completion is reported through the Listener
// interface, which the orchestrator funnels onto its serial event queue. A
// manager handle is single-use: once it reports Stopped or Failed it is
// discarded, never restarted.
package mode

import (
	"fmt"
	"sync"

	"github.com/wavemode/wavemode/internal/ifacedriver"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/utils"
)

// WorkSource is the attribution context of the caller a manager works on
// behalf of.
type WorkSource struct {
	UID  int
	Name string
}

// String returns a human-readable representation of the work source.
func (ws WorkSource) String() string {
	if ws.Name == "" {
		return fmt.Sprintf("uid:%d", ws.UID)
	}
	return fmt.Sprintf("%s(uid:%d)", ws.Name, ws.UID)
}

// Listener receives manager lifecycle events. Implementations must be safe
// to call from any goroutine; the orchestrator satisfies this by enqueueing
// every event onto its serial queue.
type Listener interface {
	OnStarted(m Manager)
	OnStartFailure(m Manager)
	OnStopped(m Manager)
	OnRoleChanged(m Manager, previous Role)
}

// Manager is the read surface a mode manager exposes to everyone except its
// owning orchestrator. Role is mutated only by the orchestrator's single
// writer; all other parties observe it through this interface.
type Manager interface {
	ID() string
	Role() Role
	State() State
	InterfaceName() string
	WorkSource() WorkSource

	// Stop requests teardown. Safe to call in any state; redundant calls
	// are no-ops. A stop issued while setup is in flight is deferred until
	// the setup completes, since driver operations cannot be cancelled.
	Stop()
}

// generateManagerID returns a random hex handle so log lines can track a
// manager across its lifecycle.
func generateManagerID() string {
	id, err := utils.GenerateID()
	if err != nil {
		return "manager-unknown"
	}
	return id
}

// ClientManager implements the client-family roles on a station interface.
type ClientManager struct {
	mu sync.Mutex

	id       string
	role     Role
	ws       WorkSource
	state    State
	iface    string
	network  string
	verbose  bool
	deferred bool // Stop requested while setup in flight

	driver   ifacedriver.Driver
	listener Listener
}

// ID returns the opaque manager handle identifier.
func (m *ClientManager) ID() string { return m.id }

// Role returns the manager's current role.
func (m *ClientManager) Role() Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.role
}

// State returns the manager's lifecycle state.
func (m *ClientManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// InterfaceName returns the kernel interface name, empty until started.
func (m *ClientManager) InterfaceName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.iface
}

// WorkSource returns the attribution context the manager was created with.
func (m *ClientManager) WorkSource() WorkSource { return m.ws }

// ConnectedNetwork returns the identity of the network this manager is
// currently associated with, empty when disconnected. Written by the
// connectivity layer; read by the role-assignment policy.
func (m *ClientManager) ConnectedNetwork() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.network
}

// SetConnectedNetwork records the network identity the manager is associated
// with.
func (m *ClientManager) SetConnectedNetwork(network string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.network = network
}

// Start requests station interface setup. No-op unless the manager is Idle.
func (m *ClientManager) Start() {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return
	}
	m.state = StateStarting
	role := m.role
	m.mu.Unlock()

	if m.verbose {
		logging.Debug("Client manager %s starting with role %s", m.id, role)
	}

	m.driver.SetUpClientInterface(ifacedriver.ClientInterfaceRequest{
		Requester:  m.ws.String(),
		LowLatency: role == RoleSecondaryTransient,
	}, m.onSetup)
}

func (m *ClientManager) onSetup(ifaceName string, err error) {
	m.mu.Lock()
	if err != nil {
		m.state = StateFailed
		m.mu.Unlock()
		logging.Error("Client manager %s setup failed: %v", m.id, err)
		m.listener.OnStartFailure(m)
		return
	}

	m.state = StateStarted
	m.iface = ifaceName
	deferred := m.deferred
	m.mu.Unlock()

	if m.verbose {
		logging.Debug("Client manager %s started on %s", m.id, ifaceName)
	}
	m.listener.OnStarted(m)

	if deferred {
		m.Stop()
	}
}

// Stop implements Manager.
func (m *ClientManager) Stop() {
	m.mu.Lock()
	switch m.state {
	case StateStarting:
		// Setup cannot be cancelled; tear down once it completes.
		m.deferred = true
		m.mu.Unlock()
		return
	case StateStarted:
		m.state = StateStopping
		iface := m.iface
		m.mu.Unlock()
		m.driver.TearDownInterface(iface, m.onTeardown)
		return
	default:
		m.mu.Unlock()
		return
	}
}

func (m *ClientManager) onTeardown(err error) {
	if err != nil {
		logging.Warn("Client manager %s teardown reported error: %v", m.id, err)
	}

	m.mu.Lock()
	m.state = StateStopped
	m.mu.Unlock()

	m.listener.OnStopped(m)
}

// SetRole switches the manager's role in place. Only the owning orchestrator
// may call this, and only when the driver supports in-place role switching.
func (m *ClientManager) SetRole(role Role) {
	m.mu.Lock()
	previous := m.role
	if previous == role {
		m.mu.Unlock()
		return
	}
	m.role = role
	m.mu.Unlock()

	if m.verbose {
		logging.Debug("Client manager %s role %s -> %s", m.id, previous, role)
	}
	m.listener.OnRoleChanged(m, previous)
}
