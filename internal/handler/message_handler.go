package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mqcontracts "clientportal/contracts/mq"
	"clientportal/internal/model"
	"clientportal/pkg/metrics"
	"clientportal/pkg/mq"
)

// MessageStore is the slice of the message repository the handler needs.
type MessageStore interface {
	Create(ctx context.Context, m *model.Message) error
	FindConversation(ctx context.Context, userA, userB string) ([]*model.Message, error)
	MarkConversationRead(ctx context.Context, receiverID, senderID string) error
}

// UserDirectory resolves message contacts by role.
type UserDirectory interface {
	FindByRole(ctx context.Context, role model.Role) ([]*model.User, error)
}

type MessageHandler struct {
	messages  MessageStore
	users     UserDirectory
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewMessageHandler(messages MessageStore, users UserDirectory, publisher *mq.Publisher, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		messages:  messages,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// Send handles POST /api/messages/send
func (h *MessageHandler) Send(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Subject    string `json:"subject"`
		Content    string `json:"content" binding:"required"`
		Priority   string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "NORMAL"
	}

	m := &model.Message{
		SenderID:   principal.ID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Content:    req.Content,
		Priority:   priority,
		CreatedAt:  time.Now(),
	}
	if err := h.messages.Create(c.Request.Context(), m); err != nil {
		writeError(c, h.logger, err)
		return
	}

	if h.publisher != nil {
		event := mqcontracts.MessageSentEvent{
			MessageID:  m.ID,
			SenderID:   m.SenderID,
			ReceiverID: m.ReceiverID,
			Priority:   m.Priority,
			CreatedAt:  m.CreatedAt,
		}
		if err := h.publisher.Publish(mqcontracts.RoutingKeyMessageSent, event); err != nil {
			metrics.IncrementEventPublish(mqcontracts.RoutingKeyMessageSent, "failed")
			h.logger.Warn("Failed to publish message event", zap.Error(err))
		} else {
			metrics.IncrementEventPublish(mqcontracts.RoutingKeyMessageSent, "ok")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}

// Conversation handles GET /api/messages/conversation/:userId. Fetching a
// conversation marks the other party's messages to the caller as read.
func (h *MessageHandler) Conversation(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	otherID := c.Param("userId")
	ctx := c.Request.Context()

	if err := h.messages.MarkConversationRead(ctx, principal.ID, otherID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	messages, err := h.messages.FindConversation(ctx, principal.ID, otherID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Contacts handles GET /api/messages/contacts. Admins see clients; everyone
// else sees admins.
func (h *MessageHandler) Contacts(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	role := model.RoleAdmin
	if principal.IsAdmin() {
		role = model.RoleClient
	}

	users, err := h.users.FindByRole(c.Request.Context(), role)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
