// Package recentview remembers which listings a user opened most recently.
package recentview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// View is a listing together with when the user last opened it.
type View struct {
	Product  *product.Product
	ViewedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recentview
type Repository interface {
	UpsertView(ctx context.Context, userID, productID uuid.UUID, at time.Time) error
	ListViews(ctx context.Context, userID uuid.UUID, limit int) ([]*View, error)
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record marks productID as viewed now. Repeated views move the marker
// forward instead of adding rows.
func (s *Service) Record(ctx context.Context, id auth.Identity, productID uuid.UUID) error {
	if err := id.Require(); err != nil {
		return err
	}

	return s.repo.UpsertView(ctx, id.UserID, productID, s.now().UTC())
}

// List returns the caller's most recent views, newest first. Deleted
// listings are never returned.
func (s *Service) List(ctx context.Context, id auth.Identity, limit int) ([]*View, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}

	return s.repo.ListViews(ctx, id.UserID, limit)
}

func (s *Service) ForgetProduct(ctx context.Context, productID uuid.UUID) error {
	return s.repo.DeleteByProduct(ctx, productID)
}
