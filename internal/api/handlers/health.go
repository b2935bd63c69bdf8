package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// HandleHealth returns the health status of the API server
func HandleHealth(version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    time.Since(startTime).String(),
		}

		c.JSON(http.StatusOK, response)
	}
}

// HandleStatus returns the orchestrator's state snapshot
func HandleStatus(orch Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, orch.Status())
	}
}
