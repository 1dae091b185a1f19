package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/middleware"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

// Handler exposes the caller's ledger entries. Entries are written only by
// payment capture.
type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireIdentity)

	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, apperr.Validation("start_date must be YYYY-MM-DD"))
			return
		}

		filter.StartDate = new(t)
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, apperr.Validation("end_date must be YYYY-MM-DD"))
			return
		}

		filter.EndDate = new(t.AddDate(0, 0, 1))
	}

	txs, err := h.svc.ListForUser(r.Context(), auth.FromContext(r.Context()), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

// get only returns entries the caller bought or sold.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	caller := auth.FromContext(r.Context())
	if tx.BuyerID != caller.UserID && tx.SellerID != caller.UserID {
		respond.Error(w, r, transaction.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}
