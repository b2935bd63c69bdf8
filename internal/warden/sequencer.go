package warden

import (
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// Broadcast is a deferred outbound notification attributed to a client
// manager. The sequencer invokes it from the event loop goroutine.
type Broadcast func()

// sequencer enforces the role-scoped broadcast contract: notifications from
// the primary manager dispatch immediately and in order, while those from
// non-primary managers are held per manager, FIFO. When a manager becomes
// primary its queue flushes in order; every other held queue is cleared,
// since those broadcasts describe a connection that will never become the
// device's main one.
type sequencer struct {
	held map[string][]Broadcast // keyed by manager ID
}

func newSequencer() *sequencer {
	return &sequencer{held: make(map[string][]Broadcast)}
}

func (s *sequencer) submit(m *mode.ClientManager, b Broadcast) {
	if m == nil || b == nil {
		return
	}
	if m.Role() == mode.RolePrimary {
		b()
		return
	}
	s.held[m.ID()] = append(s.held[m.ID()], b)
}

// onPrimaryChanged flushes the new primary's held queue and discards all
// other held queues. A nil new primary (slot vacated) discards everything.
func (s *sequencer) onPrimaryChanged(newPrimary *mode.ClientManager) {
	var flush []Broadcast
	if newPrimary != nil {
		flush = s.held[newPrimary.ID()]
	}
	if n := s.heldCount() - len(flush); n > 0 {
		logging.Debug("Discarding %d stale held broadcasts on primary change", n)
	}
	s.held = make(map[string][]Broadcast)
	for _, b := range flush {
		b()
	}
}

// onManagerRemoved discards broadcasts held for a manager leaving the
// active set.
func (s *sequencer) onManagerRemoved(m *mode.ClientManager) {
	delete(s.held, m.ID())
}

func (s *sequencer) heldCount() int {
	n := 0
	for _, q := range s.held {
		n += len(q)
	}
	return n
}
