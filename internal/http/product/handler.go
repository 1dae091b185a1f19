package product

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/middleware"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	"github.com/MrJamesThe3rd/haggle/internal/recentview"
)

type Handler struct {
	svc    *product.Service
	recent *recentview.Service
}

func NewHandler(svc *product.Service, recent *recentview.Service) *Handler {
	return &Handler{svc: svc, recent: recent}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.browse)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireIdentity)

		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
		r.Post("/{id}/sold", h.markSold)
		r.Delete("/{id}", h.delete)
	})
}

type createProductRequest struct {
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	IsNegotiable bool            `json:"is_negotiable"`
	Images       []string        `json:"images"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), auth.FromContext(r.Context()), product.CreateParams{
		Title:        req.Title,
		Price:        req.Price,
		Description:  req.Description,
		Location:     req.Location,
		IsNegotiable: req.IsNegotiable,
		Images:       req.Images,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(p))
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	ps, err := h.svc.Browse(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(ps))
}

// get records a recent view for signed-in callers. A failed record does not
// fail the read.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if caller := auth.FromContext(r.Context()); !caller.IsZero() {
		if err := h.recent.Record(r.Context(), caller, p.ID); err != nil {
			slog.Warn("failed to record recent view", "product_id", p.ID, "error", err)
		}
	}

	respond.JSON(w, http.StatusOK, ToResponse(p))
}

type updateProductRequest struct {
	Title        *string          `json:"title,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Location     *string          `json:"location,omitempty"`
	IsNegotiable *bool            `json:"is_negotiable,omitempty"`
	Images       []string         `json:"images,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateProductRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), auth.FromContext(r.Context()), id, product.UpdateParams{
		Title:        req.Title,
		Price:        req.Price,
		Description:  req.Description,
		Location:     req.Location,
		IsNegotiable: req.IsNegotiable,
		Images:       req.Images,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(p))
}

func (h *Handler) markSold(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.svc.MarkSold(r.Context(), auth.FromContext(r.Context()), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), auth.FromContext(r.Context()), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
