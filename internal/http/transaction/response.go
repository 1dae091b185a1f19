package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

type transactionResponse struct {
	ID            uuid.UUID          `json:"id"`
	NegotiationID uuid.UUID          `json:"negotiation_id"`
	BuyerID       uuid.UUID          `json:"buyer_id"`
	SellerID      uuid.UUID          `json:"seller_id"`
	Amount        decimal.Decimal    `json:"amount"`
	OrderID       string             `json:"order_id"`
	Status        transaction.Status `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		NegotiationID: tx.NegotiationID,
		BuyerID:       tx.BuyerID,
		SellerID:      tx.SellerID,
		Amount:        tx.Amount,
		OrderID:       tx.OrderID,
		Status:        tx.Status,
		CreatedAt:     tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
