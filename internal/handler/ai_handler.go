package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clientportal/internal/ai"
)

type AIHandler struct {
	gemini *ai.GeminiClient
}

func NewAIHandler(gemini *ai.GeminiClient) *AIHandler {
	return &AIHandler{gemini: gemini}
}

// GenerateTasks handles POST /api/ai/generate-tasks
func (h *AIHandler) GenerateTasks(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project description is required"})
		return
	}

	tasks := h.gemini.GenerateTasks(c.Request.Context(), req.Description)
	c.JSON(http.StatusOK, tasks)
}
