package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uglybaby/memo-engine/internal/database"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetSystemHealth reports overall service health
func (h *HealthHandler) GetSystemHealth(c *gin.Context) {
	healthy := true
	dbStatus := "ok"

	if err := h.db.HealthCheck(); err != nil {
		healthy = false
		dbStatus = err.Error()
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"healthy":   healthy,
		"database":  dbStatus,
		"timestamp": time.Now(),
	})
}

// GetDatabaseStats reports connection pool statistics
func (h *HealthHandler) GetDatabaseStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":     h.db.GetStats(),
		"timestamp": time.Now(),
	})
}
