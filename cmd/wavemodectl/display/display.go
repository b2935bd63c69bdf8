// Package display provides output formatting and display functions for wavemodectl.
//
// This package handles all user-facing output formatting including table and
// JSON output for the orchestrator status snapshot and daemon health. It
// provides consistent formatting across all wavemodectl commands with support
// for verbose mode and different output formats.
//
// All display functions respect global configuration for output format and
// verbosity while maintaining clean separation from business logic.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/wavemode/wavemode/cmd/wavemodectl/client"
	"github.com/wavemode/wavemode/cmd/wavemodectl/config"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/warden"
)

// encodeJSON writes v to stdout as indented JSON with consistent error handling.
func encodeJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Println("Error encoding JSON output")
	}
}

// onOff renders a boolean toggle the way the settings surface names it.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// DisplayStatus displays the orchestrator status snapshot in tabular or JSON
// format. The table form shows the global toggles first, then one row per
// active interface manager; verbose mode adds interface and network columns.
func DisplayStatus(status *warden.StatusSnapshot) {
	if config.Global.Output == "json" {
		encodeJSON(status)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Wifi:\t%s\n", onOff(status.WifiDesired))
	fmt.Fprintf(w, "Scan always:\t%s\n", onOff(status.ScanAlways))
	fmt.Fprintf(w, "Location mode:\t%s\n", onOff(status.LocationMode))
	fmt.Fprintf(w, "Airplane mode:\t%s\n", onOff(status.AirplaneMode))
	if status.EmergencyActive {
		fmt.Fprintf(w, "Emergency:\tactive\n")
	}
	if status.ShuttingDown {
		fmt.Fprintf(w, "Shutting down:\tyes\n")
	}
	if status.RecoveryStaged {
		fmt.Fprintf(w, "Recovery:\tstaged\n")
	}
	w.Flush()

	fmt.Println()
	displayClientManagers(status)
	fmt.Println()
	displaySoftApManagers(status)
}

// displayClientManagers renders the client manager table section.
func displayClientManagers(status *warden.StatusSnapshot) {
	if len(status.ClientManagers) == 0 {
		fmt.Println("No client managers")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(w, "ID\tROLE\tSTATE\tIFACE\tNETWORK\tWORK SOURCE\tPRIMARY")
	} else {
		fmt.Fprintln(w, "ID\tROLE\tSTATE\tPRIMARY")
	}

	for _, m := range status.ClientManagers {
		primary := ""
		if m.Primary {
			primary = "*"
		}
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.Role, m.State, orDash(m.Interface),
				orDash(m.ConnectedNetwork), m.WorkSource, primary)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Role, m.State, primary)
		}
	}
}

// displaySoftApManagers renders the access point table section.
func displaySoftApManagers(status *warden.StatusSnapshot) {
	if len(status.SoftApManagers) == 0 {
		fmt.Println("No access points")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(w, "ID\tROLE\tSTATE\tSSID\tBAND\tIFACE\tCLIENTS\tWORK SOURCE")
	} else {
		fmt.Fprintln(w, "ID\tROLE\tSTATE\tSSID\tCLIENTS")
	}

	for _, ap := range status.SoftApManagers {
		if config.Global.Verbose {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
				ap.ID, ap.Role, ap.State, ap.SSID, orDash(ap.Band),
				orDash(ap.Interface), ap.ConnectedClients, ap.WorkSource)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				ap.ID, ap.Role, ap.State, ap.SSID, ap.ConnectedClients)
		}
	}
}

// DisplayHealth displays daemon health information in tabular or JSON format.
func DisplayHealth(health *client.HealthResponse) {
	if config.Global.Output == "json" {
		encodeJSON(health)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Status:\t%s\n", health.Status)
	fmt.Fprintf(w, "Version:\t%s\n", health.Version)
	fmt.Fprintf(w, "Uptime:\t%s\n", health.Uptime)
}

// DisplayAccepted confirms an accepted intent in the configured format.
func DisplayAccepted(intent string) {
	if config.Global.Output == "json" {
		encodeJSON(map[string]any{"accepted": true, "intent": intent})
		return
	}
	fmt.Printf("Accepted: %s\n", strings.ReplaceAll(intent, "-", " "))
}

// orDash substitutes a dash for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
