package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/payment"
)

// Handler bridges the browser payment widget and the gateway. The routes
// are unauthenticated; the negotiation id ties a capture to a sale.
type Handler struct {
	svc *payment.Service
}

func NewHandler(svc *payment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/create-order", h.createOrder)
	r.Post("/capture-order", h.captureOrder)
}

type createOrderRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Amount == nil {
		respond.Error(w, r, apperr.Validation("invalid amount"))
		return
	}

	raw, err := h.svc.CreateOrder(r.Context(), *req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Raw(w, http.StatusOK, raw)
}

type captureOrderRequest struct {
	OrderID       string `json:"orderID"`
	NegotiationID string `json:"negotiationId"`
}

// captureOrder returns the gateway payload whenever the gateway captured the
// payment, even if the sale could not be recorded locally.
func (h *Handler) captureOrder(w http.ResponseWriter, r *http.Request) {
	var req captureOrderRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	negID, err := respond.ID("negotiationId", req.NegotiationID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.svc.CaptureOrder(r.Context(), req.OrderID, negID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Raw(w, http.StatusOK, res.Raw)
}
