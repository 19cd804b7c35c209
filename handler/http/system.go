package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errInvalidLimit = errors.New("limit must be a non-negative integer")

// ComponentStatus represents the status of system components
type ComponentStatus string

const (
	StatusUp   ComponentStatus = "up"
	StatusDown ComponentStatus = "down"
)

// HealthStatus represents system health status
type HealthStatus struct {
	Status     string `json:"status"`
	Components struct {
		Weaviate ComponentStatus `json:"weaviate"`
		Ollama   ComponentStatus `json:"ollama"`
	} `json:"components"`
}

// CheckHealth godoc
// @Summary Check system health status
// @Tags system
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (h *Handler) CheckHealth(c *gin.Context) {
	status := HealthStatus{Status: "healthy"}
	status.Components.Weaviate = StatusDown
	status.Components.Ollama = StatusDown

	ctx := c.Request.Context()

	if h.weaviateSDK.Ready(ctx) {
		status.Components.Weaviate = StatusUp
	}

	if _, err := h.ollamaClient.Models(ctx); err == nil {
		status.Components.Ollama = StatusUp
	}

	if status.Components.Weaviate == StatusDown || status.Components.Ollama == StatusDown {
		status.Status = "unhealthy"
	}

	sendJSON(c, http.StatusOK, status)
}
