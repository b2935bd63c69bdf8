// Package osmon bridges OS signals into the mode orchestrator. It
// subscribes to PropertiesChanged broadcasts on the system D-Bus and
// translates platform radio/telephony/location property flips into warden
// intents, so airplane mode toggled from the system UI and emergency call
// state reported by the telephony stack reach the warden without polling.
package osmon

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/wavemode/wavemode/internal/logging"
)

const (
	propsIface  = "org.freedesktop.DBus.Properties"
	propsSignal = "org.freedesktop.DBus.Properties.PropertiesChanged"

	radioIface     = "org.freedesktop.Radio1"
	telephonyIface = "org.freedesktop.Telephony1"
	locationIface  = "org.freedesktop.Location1"

	matchRule = "type='signal',interface='" + propsIface + "',member='PropertiesChanged'"
)

// Intents is the warden surface the monitor drives.
type Intents interface {
	SetAirplaneMode(on bool)
	SetLocationModeEnabled(enabled bool)
	SetEmergencyCallbackModeActive(active bool)
	SetEmergencyCallStateActive(active bool)
}

// Monitor owns a system bus connection and a signal-draining goroutine.
type Monitor struct {
	conn    *dbus.Conn
	intents Intents
	signals chan *dbus.Signal
	wg      sync.WaitGroup
}

// New connects to the system bus and prepares a monitor feeding the given
// intents sink. Call Start to begin draining signals.
func New(intents Intents) (*Monitor, error) {
	if intents == nil {
		return nil, fmt.Errorf("intents sink cannot be nil")
	}
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect to system bus: %w", err)
	}
	return &Monitor{
		conn:    conn,
		intents: intents,
		signals: make(chan *dbus.Signal, 16),
	}, nil
}

// Start subscribes to property change broadcasts and starts the drain loop.
func (m *Monitor) Start() error {
	call := m.conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, matchRule)
	if call.Err != nil {
		return fmt.Errorf("subscribe to property changes: %w", call.Err)
	}
	m.conn.Signal(m.signals)

	m.wg.Add(1)
	go m.drain()

	logging.Info("OS signal monitor subscribed to system bus property changes")
	return nil
}

// Shutdown closes the bus connection; the drain loop exits when the
// signal channel closes.
func (m *Monitor) Shutdown() {
	logging.Info("Shutting down OS signal monitor")
	m.conn.Close()
	m.wg.Wait()
}

func (m *Monitor) drain() {
	defer m.wg.Done()
	for sig := range m.signals {
		m.handleSignal(sig)
	}
}

// handleSignal dispatches one PropertiesChanged broadcast. The body is
// [interface_name string, changed map[string]Variant, invalidated []string];
// anything that does not match a property we track is ignored.
func (m *Monitor) handleSignal(sig *dbus.Signal) {
	if sig == nil || sig.Name != propsSignal || len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok {
		return
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	switch iface {
	case radioIface:
		if v, ok := boolProp(changed, "AirplaneMode"); ok {
			logging.Info("OS signal: airplane mode %t", v)
			m.intents.SetAirplaneMode(v)
		}
	case telephonyIface:
		if v, ok := boolProp(changed, "EmergencyCallbackMode"); ok {
			logging.Info("OS signal: emergency callback mode %t", v)
			m.intents.SetEmergencyCallbackModeActive(v)
		}
		if v, ok := boolProp(changed, "EmergencyCallActive"); ok {
			logging.Info("OS signal: emergency call active %t", v)
			m.intents.SetEmergencyCallStateActive(v)
		}
	case locationIface:
		if v, ok := boolProp(changed, "Enabled"); ok {
			logging.Info("OS signal: location mode %t", v)
			m.intents.SetLocationModeEnabled(v)
		}
	}
}

func boolProp(changed map[string]dbus.Variant, name string) (bool, bool) {
	variant, ok := changed[name]
	if !ok {
		return false, false
	}
	value, ok := variant.Value().(bool)
	if !ok {
		logging.Warn("Property %s is not a bool, ignoring", name)
		return false, false
	}
	return value, true
}
