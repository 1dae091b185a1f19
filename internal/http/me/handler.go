package me

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/http/middleware"
	productv1 "github.com/MrJamesThe3rd/haggle/internal/http/product"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	"github.com/MrJamesThe3rd/haggle/internal/profile"
	"github.com/MrJamesThe3rd/haggle/internal/recentview"
)

// Handler serves the signed-in caller's own resources.
type Handler struct {
	profiles *profile.Service
	products *product.Service
	recent   *recentview.Service
}

func NewHandler(profiles *profile.Service, products *product.Service, recent *recentview.Service) *Handler {
	return &Handler{profiles: profiles, products: products, recent: recent}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireIdentity)

	r.Get("/profile", h.getProfile)
	r.Patch("/profile", h.updateProfile)
	r.Get("/products", h.listProducts)
	r.Get("/recent", h.listRecent)
}

type profileResponse struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	DisplayName string       `json:"display_name"`
	Mode        profile.Mode `json:"mode"`
	CreatedAt   time.Time    `json:"created_at"`
}

func toProfileResponse(p *profile.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.Name(),
		Mode:        p.Mode,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProfileResponse(p))
}

type updateProfileRequest struct {
	DisplayName *string       `json:"display_name,omitempty"`
	Mode        *profile.Mode `json:"mode,omitempty"`
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	id := auth.FromContext(r.Context())

	p, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if req.Mode != nil {
		if p, err = h.profiles.SetMode(r.Context(), id, *req.Mode); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	if req.DisplayName != nil {
		if p, err = h.profiles.Rename(r.Context(), id, *req.DisplayName); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	respond.JSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.products.ListBySeller(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, productv1.ToResponseList(ps))
}

type recentResponse struct {
	Product  productv1.Response `json:"product"`
	ViewedAt time.Time          `json:"viewed_at"`
}

func (h *Handler) listRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	views, err := h.recent.List(r.Context(), auth.FromContext(r.Context()), limit)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]recentResponse, len(views))
	for i, v := range views {
		resp[i] = recentResponse{Product: productv1.ToResponse(v.Product), ViewedAt: v.ViewedAt}
	}

	respond.JSON(w, http.StatusOK, resp)
}
