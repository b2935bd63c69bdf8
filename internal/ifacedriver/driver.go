// Package ifacedriver defines the port between the mode orchestrator and the
// radio-control layer that actually brings wireless interfaces up and down.
//
// The orchestrator never blocks on hardware: interface setup and teardown are
// fire-and-forget calls whose completion arrives later through a done
// callback. Concrete drivers (vendor HALs, nl80211 shims) live behind this
// interface; the fake subpackage provides a manually pumped implementation
// for tests and a self-completing one for mock deployments.
package ifacedriver

// Purpose distinguishes the two interface families a driver can create.
type Purpose int

const (
	PurposeClient Purpose = iota
	PurposeAccessPoint
)

// String returns a human-readable representation of the purpose.
func (p Purpose) String() string {
	switch p {
	case PurposeClient:
		return "client"
	case PurposeAccessPoint:
		return "access-point"
	default:
		return "unknown"
	}
}

// ClientInterfaceRequest describes a client (station) interface to create.
type ClientInterfaceRequest struct {
	Requester  string // Attribution tag for driver-side accounting
	LowLatency bool   // Hint for transient secondary links
}

// ApInterfaceRequest describes an access-point interface to create.
type ApInterfaceRequest struct {
	Requester string
	SSID      string
	Band      string
	Channel   int
}

// SetupDone is invoked exactly once when an interface setup completes.
// On success ifaceName carries the kernel interface name; on failure err is
// non-nil and ifaceName is empty.
type SetupDone func(ifaceName string, err error)

// TeardownDone is invoked exactly once when an interface teardown completes.
type TeardownDone func(err error)

// Driver is the radio-control port the orchestrator drives. Implementations
// may complete operations on any goroutine; callers are expected to funnel
// completions back into their own serialization discipline.
type Driver interface {
	// SetUpClientInterface asynchronously creates a station interface.
	SetUpClientInterface(req ClientInterfaceRequest, done SetupDone)

	// SetUpApInterface asynchronously creates an access-point interface.
	SetUpApInterface(req ApInterfaceRequest, done SetupDone)

	// TearDownInterface asynchronously destroys an interface by name.
	TearDownInterface(ifaceName string, done TeardownDone)

	// CanCreateAdditionalInterface reports whether the hardware supports one
	// more concurrent interface of the given purpose alongside what exists.
	CanCreateAdditionalInterface(p Purpose) bool

	// SupportsRoleSwitch reports whether a station interface can change its
	// logical role in place, without teardown and recreation.
	SupportsRoleSwitch() bool

	// SetMultiLinkPrimary tells the firmware which interface to bias as the
	// primary link in multi-link operation. Empty name clears the hint.
	SetMultiLinkPrimary(ifaceName string)
}
