package model

import "time"

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	Priority   string    `json:"priority"` // LOW / NORMAL / HIGH
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}
