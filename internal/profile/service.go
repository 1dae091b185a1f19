package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=profile
type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	EnsureProfile(ctx context.Context, p *Profile) error
	UpdateMode(ctx context.Context, id uuid.UUID, mode Mode) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ensure creates the caller's profile if it does not exist yet. Concurrent
// calls for the same user converge on one row.
func (s *Service) Ensure(ctx context.Context, id auth.Identity) error {
	if err := id.Require(); err != nil {
		return err
	}

	return s.repo.EnsureProfile(ctx, &Profile{
		ID:    id.UserID,
		Email: id.Email,
		Mode:  ModeBuyer,
	})
}

func (s *Service) Get(ctx context.Context, id auth.Identity) (*Profile, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProfile(ctx, id.UserID)
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.Ensure(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetProfile(ctx, id.UserID)
}

func (s *Service) SetMode(ctx context.Context, id auth.Identity, mode Mode) (*Profile, error) {
	if !mode.Valid() {
		return nil, apperr.Validation("mode must be %q or %q", ModeBuyer, ModeSeller)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMode(ctx, id.UserID, mode); err != nil {
		return nil, err
	}

	return s.repo.GetProfile(ctx, id.UserID)
}

func (s *Service) Rename(ctx context.Context, id auth.Identity, name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("display name is required")
	}

	if len(name) > 80 {
		return nil, apperr.Validation("display name is too long")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDisplayName(ctx, id.UserID, name); err != nil {
		return nil, err
	}

	return s.repo.GetProfile(ctx, id.UserID)
}
