package warden

import (
	"github.com/wavemode/wavemode/internal/ifacedriver"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
)

// clientRequest records one granted secondary-manager request, tying a
// requester to the manager serving it. A manager created for requests stops
// when its last record is released; shared grants (an existing manager or
// the primary fallback) never stop a manager the releaser does not own
// exclusively.
type clientRequest struct {
	role        mode.Role
	ws          mode.WorkSource
	networkHint string
	m           *mode.ClientManager
	deliver     func(*mode.ClientManager)
	delivered   bool
}

// handleRequestClient runs the role-assignment policy for a secondary
// client role, in admission order: axis check, same-role reuse, primary
// reuse, feature and capacity gates, then creation.
func (w *Warden) handleRequestClient(e requestClientEvent) {
	if !e.role.IsSecondaryClient() {
		logging.Error("Client manager request rejected: %s is not a requestable role", e.role)
		e.deliver(nil)
		return
	}
	if !w.enabled || w.emergency.active() || w.emergency.st == overlayPendingExit || w.shuttingDown {
		logging.Info("Client manager request for %s refused, client axis unavailable", e.role)
		e.deliver(nil)
		return
	}

	// An existing manager of the same role serving the same network is
	// shared rather than duplicated.
	if existing := w.findClientByRole(e.role); existing != nil {
		if existing.State() == mode.StateStarted && existing.ConnectedNetwork() == e.networkHint {
			logging.Debug("Sharing existing %s manager %s with %s", e.role, existing.ID(), e.ws)
			w.requests = append(w.requests, &clientRequest{
				role: e.role, ws: e.ws, networkHint: e.networkHint,
				m: existing, deliver: e.deliver, delivered: true,
			})
			e.deliver(existing)
			return
		}
	}

	// A request for the network the primary already serves rides the
	// primary instead; a parallel interface to the same network is never
	// created, regardless of capacity.
	if w.primary != nil && w.primary.State() == mode.StateStarted &&
		e.networkHint != "" && w.primary.ConnectedNetwork() == e.networkHint {
		logging.Info("Granting %s request from %s on primary manager %s", e.role, e.ws, w.primary.ID())
		w.requests = append(w.requests, &clientRequest{
			role: e.role, ws: e.ws, networkHint: e.networkHint,
			m: w.primary, deliver: e.deliver, delivered: true,
		})
		e.deliver(w.primary)
		return
	}

	if !w.featureEnabled(e.role) || !w.cfg.Driver.CanCreateAdditionalInterface(ifacedriver.PurposeClient) {
		logging.Info("Client manager request for %s refused: no dedicated interface available", e.role)
		e.deliver(nil)
		return
	}

	m := w.createClientManager(e.role, e.ws)
	w.requests = append(w.requests, &clientRequest{
		role: e.role, ws: e.ws, networkHint: e.networkHint,
		m: m, deliver: e.deliver,
	})
}

// fulfillRequests delivers a freshly started manager to the requests waiting
// on it.
func (w *Warden) fulfillRequests(m *mode.ClientManager) {
	for _, r := range w.requests {
		if r.m == m && !r.delivered {
			r.delivered = true
			r.deliver(m)
		}
	}
}

// refuseRequests fails the requests waiting on a manager that never started.
func (w *Warden) refuseRequests(m *mode.ClientManager) {
	for _, r := range w.requests {
		if r.m == m && !r.delivered {
			r.delivered = true
			r.deliver(nil)
		}
	}
}

// handleRemoveClient releases one request record for the manager. The
// manager stops once no requester holds it, unless it occupies the primary
// or scan-only axis slot.
func (w *Warden) handleRemoveClient(e removeClientEvent) {
	if e.m == nil {
		return
	}
	released := false
	for i, r := range w.requests {
		if r.m == e.m {
			w.requests = append(w.requests[:i], w.requests[i+1:]...)
			released = true
			break
		}
	}
	if !released {
		logging.Debug("Release for manager %s had no matching request record", e.m.ID())
	}
	if e.m.Role() == mode.RolePrimary || e.m.Role() == mode.RoleScanOnly {
		return
	}
	for _, r := range w.requests {
		if r.m == e.m {
			return // Still held by another requester.
		}
	}
	if w.inActiveSet(e.m) && e.m.State() != mode.StateStopping {
		logging.Info("Stopping released %s manager %s", e.m.Role(), e.m.ID())
		e.m.Stop()
	}
}

// dropRequestsFor discards records for a manager leaving the active set and
// refuses anything still undelivered.
func (w *Warden) dropRequestsFor(m *mode.ClientManager) {
	kept := w.requests[:0]
	for _, r := range w.requests {
		if r.m == m {
			if !r.delivered {
				r.delivered = true
				r.deliver(nil)
			}
			continue
		}
		kept = append(kept, r)
	}
	w.requests = kept
}

func (w *Warden) findClientByRole(role mode.Role) *mode.ClientManager {
	for _, m := range w.clients {
		if m.Role() == role {
			return m
		}
	}
	return nil
}

func (w *Warden) featureEnabled(role mode.Role) bool {
	switch role {
	case mode.RoleLocalOnlyClient:
		return w.cfg.Features.LocalOnlyClient
	case mode.RoleSecondaryLongLived:
		return w.cfg.Features.SecondaryLongLived
	case mode.RoleSecondaryTransient:
		return w.cfg.Features.SecondaryTransient
	default:
		return false
	}
}
