package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/message"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectMessageColumns = `id, negotiation_id, sender_id, receiver_id, content, created_at`

func (s *Store) CreateMessage(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (negotiation_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.NegotiationID,
		m.SenderID,
		m.ReceiverID,
		m.Content,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return apperr.Storage("creating message", err)
	}

	return nil
}

func (s *Store) GetMessage(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	query := `SELECT ` + selectMessageColumns + ` FROM messages WHERE id = $1`

	var m message.Message

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.NegotiationID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, message.ErrNotFound
		}

		return nil, apperr.Storage("getting message", err)
	}

	return &m, nil
}

func (s *Store) ListMessages(ctx context.Context, negotiationID uuid.UUID) ([]*message.Message, error) {
	query := `SELECT ` + selectMessageColumns + `
		FROM messages
		WHERE negotiation_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, negotiationID)
	if err != nil {
		return nil, apperr.Storage("listing messages", err)
	}
	defer rows.Close()

	msgs := []*message.Message{}

	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.NegotiationID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, apperr.Storage("scanning message", err)
		}

		msgs = append(msgs, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating message rows", err)
	}

	return msgs, nil
}
