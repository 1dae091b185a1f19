package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

// Status represents the lifecycle state of a ledger entry.
type Status string

const StatusCaptured Status = "captured"

var ErrNotFound = fmt.Errorf("transaction %w", apperr.ErrNotFound)

// Transaction is an immutable ledger entry for one captured payment.
type Transaction struct {
	ID            uuid.UUID
	NegotiationID uuid.UUID
	BuyerID       uuid.UUID
	SellerID      uuid.UUID
	Amount        decimal.Decimal
	OrderID       string
	Status        Status
	CreatedAt     time.Time
}
