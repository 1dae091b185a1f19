package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	MarkSold(ctx context.Context, id uuid.UUID, at time.Time) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	CreateProducts(ctx context.Context, ps []*Product) error
	Commit() error
	Rollback() error
}

// Profiles lazily creates the seller profile on first listing.
type Profiles interface {
	Ensure(ctx context.Context, id auth.Identity) error
}

// RecentViews drops "recently viewed" markers of a deleted listing.
type RecentViews interface {
	ForgetProduct(ctx context.Context, productID uuid.UUID) error
}

type Service struct {
	repo     Repository
	profiles Profiles
	recent   RecentViews
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, profiles Profiles, recent RecentViews) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		recent:   recent,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type CreateParams struct {
	Title        string `validate:"required,max=200"`
	Price        decimal.Decimal
	Description  string `validate:"required,max=5000"`
	Location     string `validate:"required,max=200"`
	IsNegotiable bool
	Images       []string `validate:"max=10,dive,url"`
}

// UpdateParams carries a partial edit. Nil fields are left unchanged.
type UpdateParams struct {
	Title        *string
	Price        *decimal.Decimal
	Description  *string
	Location     *string
	IsNegotiable *bool
	Images       []string
}

type ListFilter struct {
	Status   *Status
	SellerID *uuid.UUID
	Query    string
	Limit    int
}

func (s *Service) Create(ctx context.Context, id auth.Identity, params CreateParams) (*Product, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	params = params.normalized()
	if err := s.check(params); err != nil {
		return nil, err
	}

	if err := s.profiles.Ensure(ctx, id); err != nil {
		return nil, fmt.Errorf("ensuring seller profile: %w", err)
	}

	p := params.toProduct(id.UserID)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// Browse lists active listings, newest first, optionally matching query.
func (s *Service) Browse(ctx context.Context, query string) ([]*Product, error) {
	return s.repo.ListProducts(ctx, ListFilter{
		Status: new(StatusActive),
		Query:  strings.TrimSpace(query),
	})
}

func (s *Service) ListBySeller(ctx context.Context, id auth.Identity) ([]*Product, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	return s.repo.ListProducts(ctx, ListFilter{SellerID: &id.UserID})
}

func (s *Service) Update(ctx context.Context, id auth.Identity, productID uuid.UUID, params UpdateParams) (*Product, error) {
	p, err := s.owned(ctx, id, productID)
	if err != nil {
		return nil, err
	}

	if !p.IsActive() {
		return nil, apperr.Validation("sold listings cannot be edited")
	}

	edited := CreateParams{
		Title:        p.Title,
		Price:        p.Price,
		Description:  p.Description,
		Location:     p.Location,
		IsNegotiable: p.IsNegotiable,
		Images:       p.Images,
	}

	if params.Title != nil {
		edited.Title = *params.Title
	}

	if params.Price != nil {
		edited.Price = *params.Price
	}

	if params.Description != nil {
		edited.Description = *params.Description
	}

	if params.Location != nil {
		edited.Location = *params.Location
	}

	if params.IsNegotiable != nil {
		edited.IsNegotiable = *params.IsNegotiable
	}

	if params.Images != nil {
		edited.Images = params.Images
	}

	edited = edited.normalized()
	if err := s.check(edited); err != nil {
		return nil, err
	}

	p.Title = edited.Title
	p.Price = edited.Price
	p.Description = edited.Description
	p.Location = edited.Location
	p.IsNegotiable = edited.IsNegotiable
	p.Images = edited.Images

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// MarkSold closes a listing on the seller's behalf. Marking a sold listing
// again is a no-op.
func (s *Service) MarkSold(ctx context.Context, id auth.Identity, productID uuid.UUID) (*Product, error) {
	p, err := s.owned(ctx, id, productID)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusSold {
		return p, nil
	}

	at := s.now().UTC()
	if err := s.repo.MarkSold(ctx, p.ID, at); err != nil {
		return nil, err
	}

	p.Status = StatusSold
	p.SoldAt = &at

	return p, nil
}

// Delete removes a listing in any state. Negotiations, messages and
// transactions that reference it are kept.
func (s *Service) Delete(ctx context.Context, id auth.Identity, productID uuid.UUID) error {
	p, err := s.owned(ctx, id, productID)
	if err != nil {
		return err
	}

	if err := s.recent.ForgetProduct(ctx, p.ID); err != nil {
		return fmt.Errorf("forgetting recent views: %w", err)
	}

	return s.repo.DeleteProduct(ctx, p.ID)
}

// ImportBatch creates all listings in one database transaction, or none.
func (s *Service) ImportBatch(ctx context.Context, id auth.Identity, params []CreateParams) ([]*Product, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return nil, nil
	}

	ps := make([]*Product, len(params))

	for i, p := range params {
		p = p.normalized()
		if err := s.check(p); err != nil {
			return nil, fmt.Errorf("listing %d: %w", i+1, err)
		}

		ps[i] = p.toProduct(id.UserID)
	}

	if err := s.profiles.Ensure(ctx, id); err != nil {
		return nil, fmt.Errorf("ensuring seller profile: %w", err)
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	if err := itx.CreateProducts(ctx, ps); err != nil {
		return nil, fmt.Errorf("create products: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return ps, nil
}

func (s *Service) owned(ctx context.Context, id auth.Identity, productID uuid.UUID) (*Product, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if p.SellerID != id.UserID {
		return nil, fmt.Errorf("%w: only the seller can change this listing", apperr.ErrUnauthorized)
	}

	return p, nil
}

func (s *Service) check(p CreateParams) error {
	if !p.Price.IsPositive() {
		return apperr.Validation("price must be greater than zero")
	}

	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]

		if fe.Tag() == "required" {
			return apperr.Validation("%s is required", strings.ToLower(fe.Field()))
		}

		return apperr.Validation("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}

	return apperr.Validation("%v", err)
}

func (p CreateParams) normalized() CreateParams {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Location = strings.TrimSpace(p.Location)
	p.Price = p.Price.Round(2)

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}

	p.Images = images

	return p
}

func (p CreateParams) toProduct(sellerID uuid.UUID) *Product {
	return &Product{
		SellerID:     sellerID,
		Title:        p.Title,
		Price:        p.Price,
		Description:  p.Description,
		Location:     p.Location,
		IsNegotiable: p.IsNegotiable,
		Images:       p.Images,
		Status:       StatusActive,
	}
}
