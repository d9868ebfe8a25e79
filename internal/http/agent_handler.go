package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mass-chat/internal/service"
)

// AgentHandler mantiene dependencias para los endpoints del catálogo de agentes.
type AgentHandler struct {
	logger  *zap.Logger
	catalog *service.AgentCatalog
}

// NewAgentHandler crea una instancia de AgentHandler con dependencias necesarias.
func NewAgentHandler(logger *zap.Logger, catalog *service.AgentCatalog) *AgentHandler {
	return &AgentHandler{
		logger:  logger,
		catalog: catalog,
	}
}

// ListAgents maneja GET /agents.
func (h *AgentHandler) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.List())
}

// GetAgentCapabilities maneja GET /agents/:type/capabilities.
func (h *AgentHandler) GetAgentCapabilities(c *gin.Context) {
	descriptor, ok := h.catalog.Capabilities(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agent not found"})
		return
	}
	c.JSON(http.StatusOK, descriptor)
}
