package mode

// Role is the logical function a mode manager performs on a wireless
// interface. Client roles share the station interface family; access-point
// roles share the AP interface family.
type Role int

const (
	RoleUnspecified Role = iota

	// Client family
	RolePrimary            // Main connectivity path
	RoleScanOnly           // Scanning without connections
	RoleLocalOnlyClient    // Local-only connection, no internet routing
	RoleSecondaryLongLived // Long-lived secondary link (e.g. restricted networks)
	RoleSecondaryTransient // Short-lived secondary link (e.g. link probing)

	// Access-point family
	RoleTetheredAP  // Internet-sharing hotspot
	RoleLocalOnlyAP // Local-only hotspot, no upstream
)

// String returns a human-readable representation of the role.
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleScanOnly:
		return "scan-only"
	case RoleLocalOnlyClient:
		return "local-only-client"
	case RoleSecondaryLongLived:
		return "secondary-long-lived"
	case RoleSecondaryTransient:
		return "secondary-transient"
	case RoleTetheredAP:
		return "tethered-ap"
	case RoleLocalOnlyAP:
		return "local-only-ap"
	default:
		return "unspecified"
	}
}

// IsClient reports whether the role belongs to the client family.
func (r Role) IsClient() bool {
	switch r {
	case RolePrimary, RoleScanOnly, RoleLocalOnlyClient,
		RoleSecondaryLongLived, RoleSecondaryTransient:
		return true
	default:
		return false
	}
}

// IsAccessPoint reports whether the role belongs to the AP family.
func (r Role) IsAccessPoint() bool {
	return r == RoleTetheredAP || r == RoleLocalOnlyAP
}

// IsSecondaryClient reports whether the role is one of the additional client
// roles that can never implicitly enable the client axis.
func (r Role) IsSecondaryClient() bool {
	switch r {
	case RoleLocalOnlyClient, RoleSecondaryLongLived, RoleSecondaryTransient:
		return true
	default:
		return false
	}
}
