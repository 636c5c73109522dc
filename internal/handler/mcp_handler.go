package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clientportal/internal/tool"
)

type MCPHandler struct {
	registry *tool.Registry
	logger   *zap.Logger
}

func NewMCPHandler(registry *tool.Registry, logger *zap.Logger) *MCPHandler {
	return &MCPHandler{
		registry: registry,
		logger:   logger,
	}
}

// Tools handles GET /api/mcp/tools
func (h *MCPHandler) Tools(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Catalog())
}

// Call handles POST /api/mcp/call
func (h *MCPHandler) Call(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req struct {
		Name      string    `json:"name" binding:"required"`
		Arguments tool.Args `json:"arguments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.registry.Call(c.Request.Context(), principal, req.Name, req.Arguments)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
