package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mass-chat/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	ListByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error)
	CountByConversationID(ctx context.Context, conversationID string) (int, error)
	ListWindow(ctx context.Context, conversationID string, offset, limit int) ([]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, conversation_id, role, agent_type, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var agentType interface{}
	if message.AgentType != nil {
		agentType = string(*message.AgentType)
	}

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.ConversationID,
		message.Role,
		agentType,
		message.Content,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListByConversationID(ctx context.Context, conversationID string) ([]domain.Message, error) {
	const query = `
		SELECT id, conversation_id, role, agent_type, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *PgMessageRepository) CountByConversationID(ctx context.Context, conversationID string) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM messages
		WHERE conversation_id = $1
	`
	var total int
	err := r.pool.QueryRow(ctx, query, conversationID).Scan(&total)
	return total, err
}

// ListWindow devuelve una ventana cronológica saltando los mensajes más viejos.
func (r *PgMessageRepository) ListWindow(ctx context.Context, conversationID string, offset, limit int) ([]domain.Message, error) {
	const query = `
		SELECT id, conversation_id, role, agent_type, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, conversationID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var agentTypeValue *string

		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.Role,
			&agentTypeValue,
			&msg.Content,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if agentTypeValue != nil {
			at := domain.AgentType(*agentTypeValue)
			msg.AgentType = &at
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
