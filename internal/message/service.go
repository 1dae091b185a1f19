package message

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
)

const maxContentLength = 4000

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=message
type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (*Message, error)
	ListMessages(ctx context.Context, negotiationID uuid.UUID) ([]*Message, error)
}

// Negotiations resolves a negotiation for a participant.
type Negotiations interface {
	Get(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) (*negotiation.Negotiation, error)
}

// Broker is the live delivery capability. Delivery is at-least-once and
// scoped by negotiation id.
type Broker interface {
	Publish(ctx context.Context, m *Message) error
	Subscribe(negotiationID uuid.UUID) *Subscription
}

type Service struct {
	repo         Repository
	negotiations Negotiations
	broker       Broker
}

func NewService(repo Repository, negotiations Negotiations, broker Broker) *Service {
	return &Service{repo: repo, negotiations: negotiations, broker: broker}
}

// Send appends a message from the caller to the other party. Chat stays
// open after payment and closes only when the negotiation is cancelled.
func (s *Service) Send(ctx context.Context, id auth.Identity, negotiationID uuid.UUID, content string) (*Message, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("message content is required")
	}

	if utf8.RuneCountInString(content) > maxContentLength {
		return nil, apperr.Validation("message is longer than %d characters", maxContentLength)
	}

	n, err := s.negotiations.Get(ctx, id, negotiationID)
	if err != nil {
		return nil, err
	}

	if n.Status == negotiation.StatusCancelled {
		return nil, apperr.Validation("negotiation is cancelled")
	}

	m := &Message{
		NegotiationID: n.ID,
		SenderID:      id.UserID,
		ReceiverID:    n.Counterpart(id.UserID),
		Content:       content,
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	if err := s.broker.Publish(ctx, m); err != nil {
		slog.Error("failed to publish message", "message_id", m.ID, "negotiation_id", m.NegotiationID, "error", err)
	}

	return m, nil
}

// History returns the negotiation's messages, oldest first.
func (s *Service) History(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) ([]*Message, error) {
	if _, err := s.negotiations.Get(ctx, id, negotiationID); err != nil {
		return nil, err
	}

	return s.repo.ListMessages(ctx, negotiationID)
}

// Subscribe opens a live feed for a participant. Callers that also need
// history should subscribe first and merge both through a Timeline.
func (s *Service) Subscribe(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) (*Subscription, error) {
	if _, err := s.negotiations.Get(ctx, id, negotiationID); err != nil {
		return nil, err
	}

	return s.broker.Subscribe(negotiationID), nil
}
