// Package main implements the wavemode daemon (wavemoded).
// wavemoded owns the device's wireless interface modes: it runs the mode
// warden, exposes the HTTP intent/status API, and bridges OS signals
// (airplane mode, emergency calls, location) onto the warden.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wavemode/wavemode/internal/api"
	"github.com/wavemode/wavemode/internal/config"
	"github.com/wavemode/wavemode/internal/ifacedriver/fake"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/mode"
	"github.com/wavemode/wavemode/internal/osmon"
	"github.com/wavemode/wavemode/internal/validate"
	"github.com/wavemode/wavemode/internal/version"
	"github.com/wavemode/wavemode/internal/warden"
)

// Command line overrides; everything else comes from the config file.
var flags struct {
	ConfigPath string // YAML configuration file path
	APIAddr    string // Override for the API bind address
	LogLevel   string // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string // Optional rotating log file
	Verbose    bool   // Verbose manager logging
}

// cfg is the resolved daemon configuration after flag merging.
var cfg *config.Config

// Root command
var rootCmd = &cobra.Command{
	Use:   "wavemoded",
	Short: "Wireless mode orchestration daemon",
	Long: `wavemode daemon (wavemoded) is the single authority for which radio roles
are active on the device. It sequences client, scan-only, and access-point
mode managers, overlays emergency-call handling, and exposes an HTTP API
for intents and status.`,
	Version: version.WavemodedVersion,
	Example: `  # Run with defaults (API on 127.0.0.1:8700)
  wavemoded

  # Run with a configuration file and verbose manager logging
  wavemoded --config=/etc/wavemode/wavemoded.yaml --verbose

  # Override the API bind address
  wavemoded --api=0.0.0.0:8700`,
	PreRunE: resolveConfig,
	RunE:    runDaemon,
}

func init() {
	rootCmd.Flags().StringVar(&flags.ConfigPath, "config", "",
		"Path to YAML configuration file")
	rootCmd.Flags().StringVar(&flags.APIAddr, "api", "",
		"Address and port for the HTTP API (e.g., 127.0.0.1:8700)")
	rootCmd.Flags().StringVar(&flags.LogLevel, "log-level", "",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.Flags().StringVar(&flags.LogFile, "log-file", "",
		"Write logs to this file with rotation instead of stderr only")
	rootCmd.Flags().BoolVar(&flags.Verbose, "verbose", false,
		"Verbose mode manager logging")
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if flags.APIAddr != "" {
		cfg.APIAddr = flags.APIAddr
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.LogFile = flags.LogFile
	}
	if flags.Verbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// restartHook feeds recovery triggers back into the warden as restart
// intents, off the warden's own goroutine.
type restartHook struct {
	w *warden.Warden
}

func (r *restartHook) Trigger(reason string) {
	go r.w.RestartAll(reason)
}

// logDiagnostics is the bug-report collaborator for deployments without a
// capture pipeline: it records the fault loudly and moves on.
type logDiagnostics struct{}

func (logDiagnostics) CaptureBugReport(reason string) {
	logging.Error("Diagnostic capture requested: %s", reason)
}

// logSoftApCallback surfaces AP lifecycle transitions in the daemon log.
type logSoftApCallback struct{}

func (logSoftApCallback) OnSoftApStateChanged(role mode.Role, state mode.State, reason string) {
	if reason != "" {
		logging.Warn("Soft AP %s: %s (%s)", role, state, reason)
		return
	}
	logging.Info("Soft AP %s: %s", role, state)
}

func (logSoftApCallback) OnConnectedClientsChanged(role mode.Role, count int) {
	logging.Info("Soft AP %s: %d connected clients", role, count)
}

func (logSoftApCallback) OnSoftApInfoChanged(role mode.Role, info mode.SoftApInfo) {
	logging.Info("Soft AP %s: up on %s band=%s channel=%d", role, info.InterfaceName, info.Band, info.Channel)
}

// configSettings serves the boot-time settings snapshot to the warden.
type configSettings struct {
	wifi config.WifiConfig
}

func (s configSettings) IsWifiEnabled() bool             { return s.wifi.EnabledOnBoot }
func (s configSettings) IsScanAlwaysAvailable() bool     { return s.wifi.ScanAlwaysAvailable }
func (s configSettings) IsAirplaneModeOn() bool          { return false }
func (s configSettings) IsLocationModeEnabled() bool     { return s.wifi.LocationMode }
func (s configSettings) IsWifiDisabledInEmergency() bool { return s.wifi.DisableInEmergency }

// buildWardenConfig converts daemon config into a warden config.
func buildWardenConfig(driver *fake.Driver) *warden.Config {
	wcfg := warden.DefaultConfig()
	wcfg.Factory = mode.NewDriverFactory(driver)
	wcfg.Driver = driver
	wcfg.Settings = configSettings{wifi: cfg.Wifi}
	wcfg.Diagnostics = logDiagnostics{}
	wcfg.SoftApCallback = logSoftApCallback{}
	wcfg.RecoveryDelay = cfg.Timing.RecoveryDelay()
	wcfg.Features = warden.FeatureFlags{
		LocalOnlyClient:    cfg.Features.LocalOnlyClient,
		SecondaryLongLived: cfg.Features.SecondaryLongLived,
		SecondaryTransient: cfg.Features.SecondaryTransient,
	}
	wcfg.Verbose = cfg.Verbose
	return wcfg
}

// Runs the daemon with graceful shutdown handling
func runDaemon(cmd *cobra.Command, args []string) error {
	logging.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		logging.SetLogFile(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
	}

	logging.Info("Starting wavemode daemon v%s", version.WavemodedVersion)
	logging.Info("API on %s, wifi_on_boot=%t", cfg.APIAddr, cfg.Wifi.EnabledOnBoot)

	// Interface driver. Real hardware plugs in behind ifacedriver.Driver;
	// the shipped driver simulates a dual-interface chipset.
	driver := fake.NewAutoComplete()

	wardenConfig := buildWardenConfig(driver)
	w, err := warden.New(wardenConfig)
	if err != nil {
		return fmt.Errorf("failed to create warden: %w", err)
	}
	wardenConfig.Recovery = &restartHook{w: w}

	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start warden: %w", err)
	}

	// HTTP API server
	netAddr, err := validate.ParseBindAddress(cfg.APIAddr)
	if err != nil {
		return fmt.Errorf("invalid API address: %w", err)
	}
	apiConfig := api.DefaultConfig()
	apiConfig.BindAddr = netAddr.Host
	apiConfig.BindPort = netAddr.Port
	apiConfig.Warden = w
	if err := apiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid API configuration: %w", err)
	}
	apiServer := api.NewServer(apiConfig)
	if err := apiServer.Start(); err != nil {
		w.Shutdown()
		return fmt.Errorf("failed to start API server: %w", err)
	}

	// OS signal monitor (optional: needs a system bus)
	var monitor *osmon.Monitor
	if cfg.DBus.Enabled {
		monitor, err = osmon.New(w)
		if err != nil {
			logging.Warn("OS signal monitor unavailable: %v", err)
		} else if err := monitor.Start(); err != nil {
			logging.Warn("OS signal monitor failed to start: %v", err)
			monitor = nil
		}
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Success("wavemode daemon started successfully")
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)

	// Graceful shutdown: stop managers first, then the outer surfaces.
	logging.Info("Initiating graceful shutdown...")
	w.NotifyShuttingDown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}
	if monitor != nil {
		monitor.Shutdown()
	}
	w.Shutdown()

	logging.Success("wavemode daemon shutdown completed")
	return nil
}

// Main entry point
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
