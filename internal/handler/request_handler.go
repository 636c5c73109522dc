package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clientportal/internal/model"
	"clientportal/internal/service"
)

type RequestHandler struct {
	requestService *service.RequestService
	logger         *zap.Logger
}

func NewRequestHandler(requestService *service.RequestService, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		logger:         logger,
	}
}

// Submit handles POST /api/requests/submit. The endpoint is public;
// authenticated callers get their request linked to their account.
func (h *RequestHandler) Submit(c *gin.Context) {
	var req model.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	principal, _ := currentPrincipal(c)
	if _, err := h.requestService.Submit(c.Request.Context(), principal, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service request submitted successfully!"})
}

// All handles GET /api/requests/all
func (h *RequestHandler) All(c *gin.Context) {
	requests, err := h.requestService.GetAllRequests(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// MyRequests handles GET /api/requests/my-requests
func (h *RequestHandler) MyRequests(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	requests, err := h.requestService.GetMyRequests(c.Request.Context(), principal.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// UpdateStatus handles PUT /api/requests/:id/status
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.requestService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}
