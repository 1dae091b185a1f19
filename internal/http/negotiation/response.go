package negotiation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
)

type negotiationResponse struct {
	ID                  uuid.UUID           `json:"id"`
	ProductID           uuid.UUID           `json:"product_id"`
	BuyerID             uuid.UUID           `json:"buyer_id"`
	SellerID            uuid.UUID           `json:"seller_id"`
	PitchPrice          decimal.Decimal     `json:"pitch_price"`
	FinalPrice          decimal.NullDecimal `json:"final_price"`
	FinalOfferExpiresAt *time.Time          `json:"final_offer_expires_at,omitempty"`
	AgreedPrice         decimal.Decimal     `json:"agreed_price"`
	Status              negotiation.Status  `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           *time.Time          `json:"updated_at,omitempty"`
}

type summaryResponse struct {
	negotiationResponse
	ProductTitle    string `json:"product_title"`
	ProductImage    string `json:"product_image,omitempty"`
	CounterpartName string `json:"counterpart_name"`
}

func toResponse(n *negotiation.Negotiation) negotiationResponse {
	return negotiationResponse{
		ID:                  n.ID,
		ProductID:           n.ProductID,
		BuyerID:             n.BuyerID,
		SellerID:            n.SellerID,
		PitchPrice:          n.PitchPrice,
		FinalPrice:          n.FinalPrice,
		FinalOfferExpiresAt: n.FinalOfferExpiresAt,
		AgreedPrice:         n.AgreedPrice(),
		Status:              n.Status,
		CreatedAt:           n.CreatedAt,
		UpdatedAt:           n.UpdatedAt,
	}
}

func toSummaryList(ss []*negotiation.Summary) []summaryResponse {
	resp := make([]summaryResponse, len(ss))
	for i, s := range ss {
		resp[i] = summaryResponse{
			negotiationResponse: toResponse(&s.Negotiation),
			ProductTitle:        s.ProductTitle,
			ProductImage:        s.ProductImage,
			CounterpartName:     s.CounterpartName,
		}
	}

	return resp
}
