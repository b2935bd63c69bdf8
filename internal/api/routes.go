package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// API version prefix
	v1 := router.Group("/api/v1")

	// Health check and warden status
	v1.GET("/health", s.getHandlerHealth())
	v1.GET("/status", s.getHandlerStatus())

	// Client axis intents
	wifi := v1.Group("/wifi")
	{
		wifi.POST("", s.getHandlerWifi())
		wifi.POST("/scan-always", s.getHandlerScanAlways())
		wifi.POST("/location-mode", s.getHandlerLocationMode())
	}
	v1.POST("/airplane", s.getHandlerAirplane())

	// Access point intents
	softap := v1.Group("/softap")
	{
		softap.POST("", s.getHandlerSoftApStart())
		softap.PUT("/:role", s.getHandlerSoftApUpdate())
		softap.DELETE("/:role", s.getHandlerSoftApStop())
	}

	// Emergency overlay signals
	emergency := v1.Group("/emergency")
	{
		emergency.POST("/callback-mode", s.getHandlerEmergencyCallback())
		emergency.POST("/call-state", s.getHandlerEmergencyCall())
	}

	// Recovery and diagnostics
	v1.POST("/restart", s.getHandlerRestart())
	v1.POST("/fault", s.getHandlerFault())
}
