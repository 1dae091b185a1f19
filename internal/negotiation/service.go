package negotiation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

const maxOfferTTL = 7 * 24 * time.Hour

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=negotiation
type Repository interface {
	GetNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error)
	FindByProductAndBuyer(ctx context.Context, productID, buyerID uuid.UUID) (*Negotiation, error)
	// CreateNegotiation inserts n unless (product, buyer) already has a row.
	// Either way n ends up holding the stored row; created reports which.
	CreateNegotiation(ctx context.Context, n *Negotiation) (bool, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Summary, error)
	UpdatePitch(ctx context.Context, id uuid.UUID, price decimal.Decimal, status Status) error
	SetFinalOffer(ctx context.Context, id uuid.UUID, price decimal.Decimal, expiresAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// ProductReader is the slice of the catalog a negotiation needs.
type ProductReader interface {
	Get(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductReader
	now      func() time.Time
}

func NewService(repo Repository, products ProductReader) *Service {
	return &Service{repo: repo, products: products, now: time.Now}
}

// StartOrResume returns the caller's negotiation over productID, creating it
// on first contact. The bool reports whether a new negotiation was created.
func (s *Service) StartOrResume(ctx context.Context, id auth.Identity, productID uuid.UUID) (*Negotiation, bool, error) {
	if err := id.Require(); err != nil {
		return nil, false, err
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, false, err
	}

	if !p.IsActive() {
		return nil, false, fmt.Errorf("%w: listing is no longer available", product.ErrNotFound)
	}

	if p.SellerID == id.UserID {
		return nil, false, apperr.ErrSelfNegotiation
	}

	existing, err := s.repo.FindByProductAndBuyer(ctx, productID, id.UserID)
	if err == nil {
		return existing, false, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	n := &Negotiation{
		ProductID:  p.ID,
		BuyerID:    id.UserID,
		SellerID:   p.SellerID,
		PitchPrice: p.Price,
		Status:     StatusPending,
	}

	created, err := s.repo.CreateNegotiation(ctx, n)
	if err != nil {
		return nil, false, err
	}

	return n, created, nil
}

func (s *Service) ListForUser(ctx context.Context, id auth.Identity) ([]*Summary, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	return s.repo.ListForUser(ctx, id.UserID)
}

// Get returns a negotiation the caller takes part in. Anyone else gets
// ErrNotFound.
func (s *Service) Get(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) (*Negotiation, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	n, err := s.repo.GetNegotiation(ctx, negotiationID)
	if err != nil {
		return nil, err
	}

	if !n.IsParticipant(id.UserID) {
		return nil, ErrNotFound
	}

	return n, nil
}

// Lookup reads a negotiation without a participant check.
func (s *Service) Lookup(ctx context.Context, negotiationID uuid.UUID) (*Negotiation, error) {
	return s.repo.GetNegotiation(ctx, negotiationID)
}

// Pitch records a new proposed price from either party.
func (s *Service) Pitch(ctx context.Context, id auth.Identity, negotiationID uuid.UUID, price decimal.Decimal) (*Negotiation, error) {
	if !price.IsPositive() {
		return nil, apperr.Validation("pitch price must be greater than zero")
	}

	n, err := s.open(ctx, id, negotiationID)
	if err != nil {
		return nil, err
	}

	price = price.Round(2)
	if err := s.repo.UpdatePitch(ctx, n.ID, price, StatusActive); err != nil {
		return nil, err
	}

	n.PitchPrice = price
	n.Status = StatusActive

	return n, nil
}

// MakeFinalOffer lets the seller fix a price the buyer can pay until ttl
// elapses.
func (s *Service) MakeFinalOffer(ctx context.Context, id auth.Identity, negotiationID uuid.UUID, price decimal.Decimal, ttl time.Duration) (*Negotiation, error) {
	if !price.IsPositive() {
		return nil, apperr.Validation("final price must be greater than zero")
	}

	if ttl <= 0 || ttl > maxOfferTTL {
		return nil, apperr.Validation("offer must expire within %s", maxOfferTTL)
	}

	n, err := s.open(ctx, id, negotiationID)
	if err != nil {
		return nil, err
	}

	if n.SellerID != id.UserID {
		return nil, fmt.Errorf("%w: only the seller can make a final offer", apperr.ErrUnauthorized)
	}

	price = price.Round(2)
	expiresAt := s.now().UTC().Add(ttl)

	if err := s.repo.SetFinalOffer(ctx, n.ID, price, expiresAt); err != nil {
		return nil, err
	}

	n.FinalPrice = decimal.NewNullDecimal(price)
	n.FinalOfferExpiresAt = &expiresAt
	n.Status = StatusActive

	return n, nil
}

func (s *Service) Cancel(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) (*Negotiation, error) {
	n, err := s.open(ctx, id, negotiationID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, n.ID, StatusCancelled); err != nil {
		return nil, err
	}

	n.Status = StatusCancelled

	return n, nil
}

// open returns a non-terminal negotiation the caller takes part in.
func (s *Service) open(ctx context.Context, id auth.Identity, negotiationID uuid.UUID) (*Negotiation, error) {
	n, err := s.Get(ctx, id, negotiationID)
	if err != nil {
		return nil, err
	}

	if n.Status.IsTerminal() {
		return nil, apperr.Validation("negotiation is %s", n.Status)
	}

	return n, nil
}
