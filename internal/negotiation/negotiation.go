package negotiation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

// Status represents the lifecycle state of a negotiation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether prices can no longer change.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

var ErrNotFound = fmt.Errorf("negotiation %w", apperr.ErrNotFound)

// Negotiation is the bargaining session of one buyer over one product.
// There is at most one per (ProductID, BuyerID).
type Negotiation struct {
	ID                  uuid.UUID
	ProductID           uuid.UUID
	BuyerID             uuid.UUID
	SellerID            uuid.UUID
	PitchPrice          decimal.Decimal
	FinalPrice          decimal.NullDecimal
	FinalOfferExpiresAt *time.Time
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// IsParticipant reports whether userID is the buyer or the seller.
func (n *Negotiation) IsParticipant(userID uuid.UUID) bool {
	return userID == n.BuyerID || userID == n.SellerID
}

// Counterpart returns the other party of the negotiation.
func (n *Negotiation) Counterpart(userID uuid.UUID) uuid.UUID {
	if userID == n.SellerID {
		return n.BuyerID
	}

	return n.SellerID
}

// OfferExpired reports whether a final offer exists and its deadline has passed.
func (n *Negotiation) OfferExpired(now time.Time) bool {
	return n.FinalOfferExpiresAt != nil && !now.Before(*n.FinalOfferExpiresAt)
}

// AgreedPrice is the final offer when one was made, else the pitch price.
func (n *Negotiation) AgreedPrice() decimal.Decimal {
	if n.FinalPrice.Valid {
		return n.FinalPrice.Decimal
	}

	return n.PitchPrice
}

// Summary is a negotiation joined with what a list view needs.
type Summary struct {
	Negotiation
	ProductTitle    string
	ProductImage    string
	CounterpartName string
}
