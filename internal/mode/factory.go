package mode

import (
	"github.com/wavemode/wavemode/internal/ifacedriver"
)

// Factory constructs concrete mode managers. The orchestrator owns the only
// reference to each created manager and is responsible for starting it.
type Factory interface {
	CreateClientManager(listener Listener, ws WorkSource, role Role, verbose bool) *ClientManager
	CreateSoftApManager(listener Listener, callback SoftApCallback, cfg SoftApConfig,
		ws WorkSource, role Role, verbose bool) *SoftApManager
}

// DriverFactory is the default factory, binding managers to one radio driver.
type DriverFactory struct {
	driver ifacedriver.Driver
}

// NewDriverFactory creates a factory producing managers backed by driver.
func NewDriverFactory(driver ifacedriver.Driver) *DriverFactory {
	return &DriverFactory{driver: driver}
}

// CreateClientManager implements Factory.
func (f *DriverFactory) CreateClientManager(listener Listener, ws WorkSource, role Role, verbose bool) *ClientManager {
	return &ClientManager{
		id:       generateManagerID(),
		role:     role,
		ws:       ws,
		state:    StateIdle,
		verbose:  verbose,
		driver:   f.driver,
		listener: listener,
	}
}

// CreateSoftApManager implements Factory.
func (f *DriverFactory) CreateSoftApManager(listener Listener, callback SoftApCallback,
	cfg SoftApConfig, ws WorkSource, role Role, verbose bool) *SoftApManager {
	return &SoftApManager{
		id:       generateManagerID(),
		role:     role,
		ws:       ws,
		state:    StateIdle,
		cfg:      cfg,
		verbose:  verbose,
		driver:   f.driver,
		listener: listener,
		callback: callback,
	}
}
