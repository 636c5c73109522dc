package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"clientportal/internal/model"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	query := `
        INSERT INTO messages (id, sender_id, receiver_id, subject, content, priority, is_read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		m.ID, m.SenderID, m.ReceiverID, m.Subject, m.Content, m.Priority, m.Read, m.CreatedAt,
	)
	return err
}

// FindConversation returns all messages between the two users, oldest first.
func (r *MessageRepository) FindConversation(ctx context.Context, userA, userB string) ([]*model.Message, error) {
	query := `
        SELECT id, sender_id, receiver_id, subject, content, priority, is_read, created_at
        FROM messages
        WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Content,
			&m.Priority, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// MarkConversationRead flips the read flag on messages the receiver is
// viewing from the given sender.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE`,
		receiverID, senderID,
	)
	return err
}
