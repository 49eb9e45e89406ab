package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/cleberrangel/pendientes-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// HealthHandler responde as sondas de liveness e readiness
type HealthHandler struct {
	db             *sql.DB
	version        string
	mailConfigured bool
}

// NewHealthHandler cria o handler de health check
func NewHealthHandler(db *sql.DB, version string, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		db:             db,
		version:        version,
		mailConfigured: mailConfigured,
	}
}

// LivenessCheck returns basic liveness status
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck returns readiness status including dependencies
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} metrics.HealthCheck
// @Failure 503 {object} metrics.HealthCheck
// @Router /health/ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	components := map[string]metrics.HealthStatus{
		"database": metrics.CheckDatabaseHealth(c.Request.Context(), h.db),
		"mail":     metrics.CheckMailHealth(h.mailConfigured),
		"memory":   metrics.CheckMemoryHealth(512),
	}

	overallStatus := metrics.DetermineOverallStatus(components)

	healthCheck := metrics.HealthCheck{
		Status:     overallStatus,
		Version:    h.version,
		Uptime:     metrics.Uptime().Round(time.Second).String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
	}

	statusCode := http.StatusOK
	if overallStatus == metrics.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, healthCheck)
}
