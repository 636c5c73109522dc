package mq

import "time"

// Routing keys for portal events on the topic exchange.
const (
	RoutingKeyRequestSubmitted = "request.submitted"
	RoutingKeyContactSubmitted = "contact.submitted"
	RoutingKeyMessageSent      = "message.sent"
)

// RequestSubmittedEvent is emitted when a service request is received.
type RequestSubmittedEvent struct {
	RequestID   string    `json:"request_id"`
	RequestType string    `json:"request_type"`
	ServiceType string    `json:"service_type"`
	ClientID    string    `json:"client_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactSubmittedEvent is emitted when the public contact form is used.
type ContactSubmittedEvent struct {
	ContactID string    `json:"contact_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageSentEvent is emitted when a portal message is sent.
type MessageSentEvent struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}
