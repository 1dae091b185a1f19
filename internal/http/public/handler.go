package public

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves liveness and the settings the browser needs before sign-in.
type Handler struct {
	db             Pinger
	paypalClientID string
	currency       string
}

func NewHandler(db Pinger, paypalClientID, currency string) *Handler {
	return &Handler{db: db, paypalClientID: paypalClientID, currency: currency}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/config/public", h.config)
}

type configResponse struct {
	PayPalClientID string `json:"paypal_client_id"`
	Currency       string `json:"currency"`
}

func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, configResponse{
		PayPalClientID: h.paypalClientID,
		Currency:       h.currency,
	})
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "database unavailable"})
		return
	}

	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
