package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

// Reason explains why a captured payment has no ledger entry.
type Reason string

const (
	ReasonNegotiationNotFound  Reason = "negotiation_not_found"
	ReasonNegotiationCancelled Reason = "negotiation_cancelled"
	ReasonOfferExpired         Reason = "offer_expired"
	ReasonCommitFailed         Reason = "commit_failed"
)

var ErrOrphanNotFound = fmt.Errorf("orphaned capture %w", apperr.ErrNotFound)

// Orphan is a payment the gateway captured but the local state never
// recorded. It stays open until an operator reconciles or dismisses it.
type Orphan struct {
	ID            uuid.UUID
	OrderID       string
	NegotiationID *uuid.UUID
	Amount        decimal.NullDecimal
	Reason        Reason
	Detail        string
	Payload       json.RawMessage
	CreatedAt     time.Time
	ResolvedAt    *time.Time
	Resolution    string
}

func (o *Orphan) IsOpen() bool {
	return o.ResolvedAt == nil
}

// CaptureResult is what a capture produced. Raw is the gateway payload and is
// always set; exactly one of Transaction and Orphan is set.
type CaptureResult struct {
	Raw         json.RawMessage
	Transaction *transaction.Transaction
	Orphan      *Orphan
}
