package handler

import (
	"net/http"

	"sprint2/internal/version"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness probes and registry health checks
type HealthHandler struct {
	serviceName string
}

func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// Banner handles GET /
func (h *HealthHandler) Banner(c *gin.Context) {
	c.String(http.StatusOK, "Bienvenue sur le microservice %s.", h.serviceName)
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"version": version.Version,
	})
}
