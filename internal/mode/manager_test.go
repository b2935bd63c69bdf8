package mode

import (
	"errors"
	"testing"

	"github.com/wavemode/wavemode/internal/ifacedriver/fake"
)

// recordingListener captures lifecycle events in arrival order.
type recordingListener struct {
	events []string
}

func (l *recordingListener) OnStarted(m Manager)      { l.events = append(l.events, "started") }
func (l *recordingListener) OnStartFailure(m Manager) { l.events = append(l.events, "start-failure") }
func (l *recordingListener) OnStopped(m Manager)      { l.events = append(l.events, "stopped") }
func (l *recordingListener) OnRoleChanged(m Manager, previous Role) {
	l.events = append(l.events, "role-changed:"+previous.String()+"->"+m.Role().String())
}

func newTestClientManager(t *testing.T) (*ClientManager, *recordingListener, *fake.Driver) {
	t.Helper()
	driver := fake.New()
	listener := &recordingListener{}
	factory := NewDriverFactory(driver)
	m := factory.CreateClientManager(listener, WorkSource{UID: 1000, Name: "settings"}, RolePrimary, false)
	return m, listener, driver
}

// TestClientManagerLifecycle tests the happy path Idle→Starting→Started→Stopping→Stopped
func TestClientManagerLifecycle(t *testing.T) {
	m, listener, driver := newTestClientManager(t)

	if m.State() != StateIdle {
		t.Errorf("State() = %v, want idle", m.State())
	}

	m.Start()
	if m.State() != StateStarting {
		t.Errorf("State() after Start() = %v, want starting", m.State())
	}

	driver.CompleteAll()
	if m.State() != StateStarted {
		t.Errorf("State() after setup = %v, want started", m.State())
	}
	if m.InterfaceName() != "wlan0" {
		t.Errorf("InterfaceName() = %q, want wlan0", m.InterfaceName())
	}

	m.Stop()
	if m.State() != StateStopping {
		t.Errorf("State() after Stop() = %v, want stopping", m.State())
	}

	driver.CompleteAll()
	if m.State() != StateStopped {
		t.Errorf("State() after teardown = %v, want stopped", m.State())
	}

	want := []string{"started", "stopped"}
	if len(listener.events) != len(want) {
		t.Fatalf("events = %v, want %v", listener.events, want)
	}
	for i := range want {
		if listener.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, listener.events[i], want[i])
		}
	}
}

// TestClientManagerStartFailure tests that setup failure reports exactly one event
func TestClientManagerStartFailure(t *testing.T) {
	m, listener, driver := newTestClientManager(t)

	driver.FailNextSetup(errors.New("firmware crash"))
	m.Start()
	driver.CompleteAll()

	if m.State() != StateFailed {
		t.Errorf("State() = %v, want failed", m.State())
	}
	if len(listener.events) != 1 || listener.events[0] != "start-failure" {
		t.Errorf("events = %v, want [start-failure]", listener.events)
	}

	// A failed handle is terminal: Start and Stop are no-ops
	m.Start()
	m.Stop()
	if driver.PendingCount() != 0 {
		t.Errorf("PendingCount() = %d after calls on failed handle, want 0", driver.PendingCount())
	}
}

// TestClientManagerDeferredStop tests Stop during in-flight setup
func TestClientManagerDeferredStop(t *testing.T) {
	m, listener, driver := newTestClientManager(t)

	m.Start()
	m.Stop() // setup still in flight, teardown must wait

	driver.CompleteAll() // completes setup, which triggers the deferred teardown
	driver.CompleteAll() // completes teardown

	if m.State() != StateStopped {
		t.Errorf("State() = %v, want stopped", m.State())
	}
	want := []string{"started", "stopped"}
	for i := range want {
		if i >= len(listener.events) || listener.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", listener.events, want)
		}
	}
}

// TestClientManagerRedundantStop tests that repeated stops queue one teardown
func TestClientManagerRedundantStop(t *testing.T) {
	m, listener, driver := newTestClientManager(t)

	m.Start()
	driver.CompleteAll()

	m.Stop()
	m.Stop()
	m.Stop()

	if driver.PendingCount() != 1 {
		t.Errorf("PendingCount() = %d, want 1 teardown", driver.PendingCount())
	}
	driver.CompleteAll()

	stops := 0
	for _, e := range listener.events {
		if e == "stopped" {
			stops++
		}
	}
	if stops != 1 {
		t.Errorf("stopped events = %d, want 1", stops)
	}
}

// TestClientManagerSetRole tests in-place role switching
func TestClientManagerSetRole(t *testing.T) {
	m, listener, driver := newTestClientManager(t)
	m.Start()
	driver.CompleteAll()

	m.SetRole(RoleScanOnly)
	if m.Role() != RoleScanOnly {
		t.Errorf("Role() = %v, want scan-only", m.Role())
	}

	m.SetRole(RoleScanOnly) // same role, no event
	found := 0
	for _, e := range listener.events {
		if e == "role-changed:primary->scan-only" {
			found++
		}
	}
	if found != 1 {
		t.Errorf("role-changed events = %d, want 1 (got %v)", found, listener.events)
	}
}

// recordingSoftApCallback captures AP status notifications.
type recordingSoftApCallback struct {
	states  []State
	reasons []string
	clients []int
	infos   []SoftApInfo
}

func (c *recordingSoftApCallback) OnSoftApStateChanged(role Role, state State, failureReason string) {
	c.states = append(c.states, state)
	c.reasons = append(c.reasons, failureReason)
}
func (c *recordingSoftApCallback) OnConnectedClientsChanged(role Role, count int) {
	c.clients = append(c.clients, count)
}
func (c *recordingSoftApCallback) OnSoftApInfoChanged(role Role, info SoftApInfo) {
	c.infos = append(c.infos, info)
}

// TestSoftApManagerLifecycle tests AP start/stop with status callbacks
func TestSoftApManagerLifecycle(t *testing.T) {
	driver := fake.New()
	listener := &recordingListener{}
	cb := &recordingSoftApCallback{}
	factory := NewDriverFactory(driver)

	cfg := SoftApConfig{SSID: "garage", Band: "5GHz", Channel: 36, MaxClients: 8}
	m := factory.CreateSoftApManager(listener, cb, cfg, WorkSource{UID: 1000}, RoleTetheredAP, false)

	m.Start()
	driver.CompleteAll()

	if m.State() != StateStarted {
		t.Fatalf("State() = %v, want started", m.State())
	}
	if len(cb.infos) != 1 || cb.infos[0].InterfaceName != "wlan0" {
		t.Errorf("infos = %v, want one info for wlan0", cb.infos)
	}

	m.SetConnectedClients(3)
	m.SetConnectedClients(3) // unchanged, no extra notification
	if len(cb.clients) != 1 || cb.clients[0] != 3 {
		t.Errorf("client notifications = %v, want [3]", cb.clients)
	}

	m.Stop()
	driver.CompleteAll()

	wantStates := []State{StateStarting, StateStarted, StateStopping, StateStopped}
	if len(cb.states) != len(wantStates) {
		t.Fatalf("states = %v, want %v", cb.states, wantStates)
	}
	for i := range wantStates {
		if cb.states[i] != wantStates[i] {
			t.Errorf("states[%d] = %v, want %v", i, cb.states[i], wantStates[i])
		}
	}
}

// TestSoftApManagerCapabilityClamp tests that capability updates clamp the client limit
func TestSoftApManagerCapabilityClamp(t *testing.T) {
	driver := fake.New()
	factory := NewDriverFactory(driver)
	cfg := SoftApConfig{SSID: "garage", Band: "2.4GHz", MaxClients: 32}
	m := factory.CreateSoftApManager(&recordingListener{}, nil, cfg, WorkSource{}, RoleLocalOnlyAP, false)

	m.UpdateCapability(SoftApCapability{MaxSupportedClients: 10})
	if got := m.Config().MaxClients; got != 10 {
		t.Errorf("MaxClients after capability clamp = %d, want 10", got)
	}
}
