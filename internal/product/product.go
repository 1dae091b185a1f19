package product

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

// Status represents the lifecycle state of a listing.
type Status string

const (
	StatusActive Status = "active"
	StatusSold   Status = "sold"
)

var ErrNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)

// Product is a listing owned by its seller. SoldAt is set iff Status is sold.
type Product struct {
	ID           uuid.UUID
	SellerID     uuid.UUID
	Title        string
	Price        decimal.Decimal
	Description  string
	Location     string
	IsNegotiable bool
	Images       []string
	Status       Status
	SoldAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}
