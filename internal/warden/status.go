package warden

// ClientManagerStatus describes one active client manager in a snapshot.
type ClientManagerStatus struct {
	ID               string `json:"id"`
	Role             string `json:"role"`
	State            string `json:"state"`
	Interface        string `json:"interface,omitempty"`
	WorkSource       string `json:"work_source"`
	ConnectedNetwork string `json:"connected_network,omitempty"`
	Primary          bool   `json:"primary"`
}

// SoftApStatus describes one active access-point manager in a snapshot.
type SoftApStatus struct {
	ID               string `json:"id"`
	Role             string `json:"role"`
	State            string `json:"state"`
	Interface        string `json:"interface,omitempty"`
	WorkSource       string `json:"work_source"`
	SSID             string `json:"ssid"`
	Band             string `json:"band,omitempty"`
	ConnectedClients int    `json:"connected_clients"`
}

// StatusSnapshot is a point-in-time view of warden state, consistent with
// the serial event order at the moment it was taken.
type StatusSnapshot struct {
	Enabled          bool                  `json:"enabled"`
	WifiDesired      bool                  `json:"wifi_desired"`
	ScanAlways       bool                  `json:"scan_always"`
	LocationMode     bool                  `json:"location_mode"`
	AirplaneMode     bool                  `json:"airplane_mode"`
	EmergencyActive  bool                  `json:"emergency_active"`
	ShuttingDown     bool                  `json:"shutting_down"`
	RecoveryStaged   bool                  `json:"recovery_staged"`
	PrimaryManagerID string                `json:"primary_manager_id,omitempty"`
	ClientManagers   []ClientManagerStatus `json:"client_managers"`
	SoftApManagers   []SoftApStatus        `json:"soft_ap_managers"`
}

// snapshot builds a StatusSnapshot from loop-owned state. Event loop
// goroutine only.
func (w *Warden) snapshot() StatusSnapshot {
	s := StatusSnapshot{
		Enabled:         w.enabled,
		WifiDesired:     w.wifiDesired,
		ScanAlways:      w.scanAlways,
		LocationMode:    w.location,
		AirplaneMode:    w.airplaneOn,
		EmergencyActive: w.emergency.active(),
		ShuttingDown:    w.shuttingDown,
		RecoveryStaged:  w.recovery != nil,
		ClientManagers:  make([]ClientManagerStatus, 0, len(w.clients)),
		SoftApManagers:  make([]SoftApStatus, 0, len(w.softAps)),
	}
	if w.primary != nil {
		s.PrimaryManagerID = w.primary.ID()
	}
	for _, m := range w.clients {
		s.ClientManagers = append(s.ClientManagers, ClientManagerStatus{
			ID:               m.ID(),
			Role:             m.Role().String(),
			State:            m.State().String(),
			Interface:        m.InterfaceName(),
			WorkSource:       m.WorkSource().String(),
			ConnectedNetwork: m.ConnectedNetwork(),
			Primary:          m == w.primary,
		})
	}
	for _, ap := range w.softAps {
		cfg := ap.Config()
		s.SoftApManagers = append(s.SoftApManagers, SoftApStatus{
			ID:               ap.ID(),
			Role:             ap.Role().String(),
			State:            ap.State().String(),
			Interface:        ap.InterfaceName(),
			WorkSource:       ap.WorkSource().String(),
			SSID:             cfg.SSID,
			Band:             cfg.Band,
			ConnectedClients: ap.ConnectedClients(),
		})
	}
	return s
}
