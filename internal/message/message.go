package message

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

var ErrNotFound = fmt.Errorf("message %w", apperr.ErrNotFound)

// Message is an immutable chat entry scoped to one negotiation.
type Message struct {
	ID            uuid.UUID `json:"id"`
	NegotiationID uuid.UUID `json:"negotiation_id"`
	SenderID      uuid.UUID `json:"sender_id"`
	ReceiverID    uuid.UUID `json:"receiver_id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}
