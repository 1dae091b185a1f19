package negotiation

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
)

const (
	defaultOfferTTL = 24 * time.Hour
	maxExpiresIn    = int64(7 * 24 * time.Hour / time.Second)
)

type Handler struct {
	svc *negotiation.Service
}

func NewHandler(svc *negotiation.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects an authenticated router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.startOrResume)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/pitch", h.pitch)
	r.Post("/{id}/final-offer", h.finalOffer)
	r.Post("/{id}/cancel", h.cancel)
}

type startRequest struct {
	ProductID string `json:"productId"`
}

// startOrResume answers 201 for a new negotiation and 200 for an existing one.
func (h *Handler) startOrResume(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	productID, err := respond.ID("productId", req.ProductID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	n, created, err := h.svc.StartOrResume(r.Context(), auth.FromContext(r.Context()), productID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	respond.JSON(w, status, toResponse(n))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ss, err := h.svc.ListForUser(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryList(ss))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	n, err := h.svc.Get(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(n))
}

type priceRequest struct {
	Price decimal.Decimal `json:"price"`
	// ExpiresIn is the final offer lifetime in seconds.
	ExpiresIn int64 `json:"expires_in,omitempty"`
}

func (h *Handler) pitch(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req priceRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	n, err := h.svc.Pitch(r.Context(), auth.FromContext(r.Context()), id, req.Price)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) finalOffer(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req priceRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	ttl := defaultOfferTTL
	if req.ExpiresIn != 0 {
		if req.ExpiresIn < 0 || req.ExpiresIn > maxExpiresIn {
			respond.Error(w, r, apperr.Validation("expires_in must be between 1 and %d seconds", maxExpiresIn))
			return
		}

		ttl = time.Duration(req.ExpiresIn) * time.Second
	}

	n, err := h.svc.MakeFinalOffer(r.Context(), auth.FromContext(r.Context()), id, req.Price, ttl)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(n))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	n, err := h.svc.Cancel(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(n))
}
