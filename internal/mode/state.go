package mode

// State is the lifecycle state of a mode manager. A manager moves
// Idle → Starting → Started → Stopping → Stopped; a setup failure moves it
// Starting → Failed. Stopped and Failed are terminal: handles are never
// restarted or reused.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateStarted
	StateStopping
	StateStopped
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Active reports whether a manager in this state still occupies an interface
// slot (it is starting, running, or tearing down).
func (s State) Active() bool {
	return s == StateStarting || s == StateStarted || s == StateStopping
}
