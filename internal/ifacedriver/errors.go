package ifacedriver

import "errors"

// Normalized driver error codes. Concrete drivers map vendor errors onto
// these so the orchestrator can react uniformly.
var (
	// ErrNoCapacity indicates the hardware cannot host another concurrent
	// interface of the requested purpose.
	ErrNoCapacity = errors.New("no interface capacity available")

	// ErrHardware indicates a low-level radio failure during setup or teardown.
	ErrHardware = errors.New("hardware failure")

	// ErrNotFound indicates a teardown referenced an interface the driver
	// does not know about.
	ErrNotFound = errors.New("interface not found")
)
