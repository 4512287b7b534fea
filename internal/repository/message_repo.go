package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mindcare/internal/domain"
)

// MessageRepository archiva los mensajes de cada sesion de forma durable.
type MessageRepository interface {
	Create(ctx context.Context, message domain.ArchivedMessage) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.ArchivedMessage, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.ArchivedMessage) error {
	const query = `
		INSERT INTO messages (id, session_id, role, content, emotion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var emotion interface{}
	if message.Emotion != "" {
		emotion = message.Emotion
	}

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.SessionID,
		message.Role,
		message.Content,
		emotion,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.ArchivedMessage, error) {
	const query = `
		SELECT id, session_id, role, content, emotion, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ArchivedMessage
	for rows.Next() {
		var msg domain.ArchivedMessage
		var emotion *string

		err = rows.Scan(
			&msg.ID,
			&msg.SessionID,
			&msg.Role,
			&msg.Content,
			&emotion,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if emotion != nil {
			msg.Emotion = *emotion
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
