package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wavemode/wavemode/internal/api/handlers"
	"github.com/wavemode/wavemode/internal/logging"
	"github.com/wavemode/wavemode/internal/version"
	"github.com/wavemode/wavemode/internal/warden"
)

// Server is the wavemode HTTP API server.
type Server struct {
	warden     *warden.Warden
	httpServer *http.Server
	bindAddr   string
	bindPort   int
}

// NewServer creates a new API server instance.
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		warden:   config.Warden,
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
	}
}

// Start starts the API server.
func (s *Server) Start() error {
	logging.Info("Starting HTTP API server on %s:%d", s.bindAddr, s.bindPort)

	router := gin.New()

	// Route Gin's internal logs through our logger unless a CLI tool
	// already configured logging its own way.
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Test binding first to catch errors immediately
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

var startTime = time.Now() // Track server start time for uptime reporting

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(version.WavemodedVersion, startTime)
}

// getHandlerStatus is a warden status endpoint handler factory
func (s *Server) getHandlerStatus() gin.HandlerFunc {
	return handlers.HandleStatus(s.warden)
}

// getHandlerWifi is a wifi toggle endpoint handler factory
func (s *Server) getHandlerWifi() gin.HandlerFunc {
	return handlers.HandleWifiToggle(s.warden)
}

// getHandlerScanAlways is a scan-always setting endpoint handler factory
func (s *Server) getHandlerScanAlways() gin.HandlerFunc {
	return handlers.HandleScanAlways(s.warden)
}

// getHandlerLocationMode is a location-mode setting endpoint handler factory
func (s *Server) getHandlerLocationMode() gin.HandlerFunc {
	return handlers.HandleLocationMode(s.warden)
}

// getHandlerAirplane is an airplane-mode endpoint handler factory
func (s *Server) getHandlerAirplane() gin.HandlerFunc {
	return handlers.HandleAirplaneMode(s.warden)
}

// getHandlerSoftApStart is a soft AP start endpoint handler factory
func (s *Server) getHandlerSoftApStart() gin.HandlerFunc {
	return handlers.HandleSoftApStart(s.warden)
}

// getHandlerSoftApStop is a soft AP stop endpoint handler factory
func (s *Server) getHandlerSoftApStop() gin.HandlerFunc {
	return handlers.HandleSoftApStop(s.warden)
}

// getHandlerSoftApUpdate is a soft AP configuration update handler factory
func (s *Server) getHandlerSoftApUpdate() gin.HandlerFunc {
	return handlers.HandleSoftApUpdate(s.warden)
}

// getHandlerEmergencyCallback is an emergency callback-mode handler factory
func (s *Server) getHandlerEmergencyCallback() gin.HandlerFunc {
	return handlers.HandleEmergencyCallback(s.warden)
}

// getHandlerEmergencyCall is an emergency call-state handler factory
func (s *Server) getHandlerEmergencyCall() gin.HandlerFunc {
	return handlers.HandleEmergencyCall(s.warden)
}

// getHandlerRestart is a restart-all endpoint handler factory
func (s *Server) getHandlerRestart() gin.HandlerFunc {
	return handlers.HandleRestart(s.warden)
}

// getHandlerFault is a hardware fault report endpoint handler factory
func (s *Server) getHandlerFault() gin.HandlerFunc {
	return handlers.HandleFault(s.warden)
}
