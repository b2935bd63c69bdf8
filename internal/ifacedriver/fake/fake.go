// Package fake provides a fake radio driver implementation for testing and
// for mock deployments without real hardware.
//
// Two completion modes exist:
//   - Manual (default): setup/teardown operations queue until the test calls
//     CompleteAll or FailNextSetup, giving tests full control over the order
//     in which lifecycle completions reach the orchestrator.
//   - Auto: operations complete synchronously inside the call, which is what
//     the daemon uses when configured without a vendor driver.
package fake

import (
	"fmt"
	"sync"

	"github.com/wavemode/wavemode/internal/ifacedriver"
)

// op is one queued driver operation awaiting completion.
type op struct {
	ifaceName string
	setup     ifacedriver.SetupDone
	teardown  ifacedriver.TeardownDone
	failWith  error
}

// Driver implements ifacedriver.Driver with controllable completions.
type Driver struct {
	mu sync.Mutex

	autoComplete bool
	nextIndex    int
	pending      []op

	// Capacity simulation
	maxClients int
	maxAps     int
	clients    int
	aps        int

	roleSwitch bool

	// Recorded calls for assertions
	SetupCalls       int
	TeardownCalls    int
	MultiLinkPrimary string
	failNextSetup    error
	failNextTeardown error
}

// New creates a manually pumped fake driver with room for two client
// interfaces and two AP interfaces, role switching supported.
func New() *Driver {
	return &Driver{
		maxClients: 2,
		maxAps:     2,
		roleSwitch: true,
	}
}

// NewAutoComplete creates a driver whose operations complete synchronously.
// Used by the daemon when running without real hardware.
func NewAutoComplete() *Driver {
	d := New()
	d.autoComplete = true
	return d
}

// SetMaxConcurrency adjusts the simulated hardware concurrency limits.
func (d *Driver) SetMaxConcurrency(clients, aps int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxClients = clients
	d.maxAps = aps
}

// SetRoleSwitchSupported toggles in-place role switch capability.
func (d *Driver) SetRoleSwitchSupported(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roleSwitch = v
}

// FailNextSetup makes the next setup operation complete with err.
func (d *Driver) FailNextSetup(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNextSetup = err
}

// SetUpClientInterface implements ifacedriver.Driver.
func (d *Driver) SetUpClientInterface(req ifacedriver.ClientInterfaceRequest, done ifacedriver.SetupDone) {
	d.setUp(done, true)
}

// SetUpApInterface implements ifacedriver.Driver.
func (d *Driver) SetUpApInterface(req ifacedriver.ApInterfaceRequest, done ifacedriver.SetupDone) {
	d.setUp(done, false)
}

func (d *Driver) setUp(done ifacedriver.SetupDone, client bool) {
	d.mu.Lock()
	d.SetupCalls++
	name := fmt.Sprintf("wlan%d", d.nextIndex)
	d.nextIndex++

	failure := d.failNextSetup
	d.failNextSetup = nil

	if failure == nil {
		if client {
			d.clients++
		} else {
			d.aps++
		}
	}

	o := op{ifaceName: name, setup: done, failWith: failure}
	if d.autoComplete {
		d.mu.Unlock()
		completeOne(o)
		return
	}
	d.pending = append(d.pending, o)
	d.mu.Unlock()
}

// TearDownInterface implements ifacedriver.Driver.
func (d *Driver) TearDownInterface(ifaceName string, done ifacedriver.TeardownDone) {
	d.mu.Lock()
	d.TeardownCalls++
	if d.clients > 0 {
		d.clients--
	} else if d.aps > 0 {
		d.aps--
	}

	failure := d.failNextTeardown
	d.failNextTeardown = nil

	o := op{ifaceName: ifaceName, teardown: done, failWith: failure}
	if d.autoComplete {
		d.mu.Unlock()
		completeOne(o)
		return
	}
	d.pending = append(d.pending, o)
	d.mu.Unlock()
}

// CanCreateAdditionalInterface implements ifacedriver.Driver.
func (d *Driver) CanCreateAdditionalInterface(p ifacedriver.Purpose) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch p {
	case ifacedriver.PurposeClient:
		return d.clients < d.maxClients
	case ifacedriver.PurposeAccessPoint:
		return d.aps < d.maxAps
	default:
		return false
	}
}

// SupportsRoleSwitch implements ifacedriver.Driver.
func (d *Driver) SupportsRoleSwitch() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.roleSwitch
}

// SetMultiLinkPrimary implements ifacedriver.Driver.
func (d *Driver) SetMultiLinkPrimary(ifaceName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.MultiLinkPrimary = ifaceName
}

// PendingCount returns the number of queued, uncompleted operations.
func (d *Driver) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// CompleteNext completes the oldest queued operation. Returns false if no
// operation is pending.
func (d *Driver) CompleteNext() bool {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return false
	}
	o := d.pending[0]
	d.pending = d.pending[1:]
	d.mu.Unlock()

	completeOne(o)
	return true
}

// CompleteAll completes every queued operation in submission order.
// Completions run on the caller's goroutine, so tests observe a
// deterministic ordering of lifecycle events.
func (d *Driver) CompleteAll() {
	for d.CompleteNext() {
	}
}

func completeOne(o op) {
	switch {
	case o.setup != nil && o.failWith != nil:
		o.setup("", o.failWith)
	case o.setup != nil:
		o.setup(o.ifaceName, nil)
	case o.teardown != nil:
		o.teardown(o.failWith)
	}
}
