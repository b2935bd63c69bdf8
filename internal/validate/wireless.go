package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Bands a soft AP configuration may request. 6GHz is accepted here and
// admission-checked later against driver capability.
var validBands = map[string]bool{
	"2.4GHz": true,
	"5GHz":   true,
	"6GHz":   true,
}

// SSIDFormat validates a service set identifier against 802.11 length rules.
// SSIDs are octet strings of 1-32 bytes; we additionally reject leading and
// trailing whitespace since those are almost always configuration mistakes.
func SSIDFormat(ssid string) error {
	if ssid == "" {
		return fmt.Errorf("ssid cannot be empty")
	}
	if len(ssid) > 32 {
		return fmt.Errorf("ssid '%s' exceeds 32 bytes", ssid)
	}
	if strings.TrimSpace(ssid) != ssid {
		return fmt.Errorf("ssid '%s' cannot start or end with whitespace", ssid)
	}
	return nil
}

// PassphraseFormat validates a WPA2/WPA3 passphrase (8-63 printable ASCII
// characters). An empty passphrase is allowed and means an open network.
func PassphraseFormat(passphrase string) error {
	if passphrase == "" {
		return nil
	}
	if len(passphrase) < 8 || len(passphrase) > 63 {
		return fmt.Errorf("passphrase must be 8-63 characters, got %d", len(passphrase))
	}
	for _, r := range passphrase {
		if r < 0x20 || r > 0x7e {
			return fmt.Errorf("passphrase contains non-printable character %q", r)
		}
	}
	return nil
}

// BandFormat validates a radio band selector string.
func BandFormat(band string) error {
	if !validBands[band] {
		return fmt.Errorf("invalid band '%s' (want 2.4GHz, 5GHz, or 6GHz)", band)
	}
	return nil
}

// InterfaceNameFormat validates a kernel network interface name. Linux caps
// interface names at 15 bytes and forbids whitespace and slashes.
func InterfaceNameFormat(name string) error {
	if name == "" {
		return fmt.Errorf("interface name cannot be empty")
	}
	if len(name) > 15 {
		return fmt.Errorf("interface name '%s' exceeds 15 bytes", name)
	}
	validIfaceRegex := regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	if !validIfaceRegex.MatchString(name) {
		return fmt.Errorf("interface name '%s' contains invalid characters", name)
	}
	return nil
}
