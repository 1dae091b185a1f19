package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/product"
)

type Response struct {
	ID           uuid.UUID       `json:"id"`
	SellerID     uuid.UUID       `json:"seller_id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	IsNegotiable bool            `json:"is_negotiable"`
	Images       []string        `json:"images"`
	Status       product.Status  `json:"status"`
	SoldAt       *time.Time      `json:"sold_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func ToResponse(p *product.Product) Response {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return Response{
		ID:           p.ID,
		SellerID:     p.SellerID,
		Title:        p.Title,
		Price:        p.Price,
		Description:  p.Description,
		Location:     p.Location,
		IsNegotiable: p.IsNegotiable,
		Images:       images,
		Status:       p.Status,
		SoldAt:       p.SoldAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToResponseList(ps []*product.Product) []Response {
	resp := make([]Response, len(ps))
	for i, p := range ps {
		resp[i] = ToResponse(p)
	}

	return resp
}
