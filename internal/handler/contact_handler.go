package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mqcontracts "clientportal/contracts/mq"
	"clientportal/internal/model"
	"clientportal/internal/repository"
	"clientportal/pkg/metrics"
	"clientportal/pkg/mq"
)

type ContactHandler struct {
	contacts  *repository.ContactRepository
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewContactHandler(contacts *repository.ContactRepository, publisher *mq.Publisher, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contacts:  contacts,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit handles POST /api/contact/submit (public).
func (h *ContactHandler) Submit(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	contact := &model.Contact{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
		writeError(c, h.logger, err)
		return
	}

	if h.publisher != nil {
		event := mqcontracts.ContactSubmittedEvent{
			ContactID: contact.ID,
			Email:     contact.Email,
			CreatedAt: contact.CreatedAt,
		}
		if err := h.publisher.Publish(mqcontracts.RoutingKeyContactSubmitted, event); err != nil {
			metrics.IncrementEventPublish(mqcontracts.RoutingKeyContactSubmitted, "failed")
			h.logger.Warn("Failed to publish contact event", zap.Error(err))
		} else {
			metrics.IncrementEventPublish(mqcontracts.RoutingKeyContactSubmitted, "ok")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully!"})
}

// All handles GET /api/contact/all
func (h *ContactHandler) All(c *gin.Context) {
	contacts, err := h.contacts.FindAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}
