package handlers

import (
	"net/http"
	"time"

	"github.com/OldStager01/attrition-advisor/internal/classifier"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	model classifier.ModelInfo
}

func NewHealthHandler(model classifier.ModelInfo) *HealthHandler {
	return &HealthHandler{model: model}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) loaded() bool {
	return h.model.Name != "" && len(h.model.Features) > 0
}

func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.loaded() {
		checks["classifier"] = "loaded: " + h.model.Name + " " + h.model.Version
	} else {
		checks["classifier"] = "unhealthy: no classifier loaded"
		status = "unhealthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.loaded() {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
