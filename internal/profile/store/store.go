package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT id, email, display_name, mode, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var p profile.Profile

	var mode string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Email, &p.DisplayName, &mode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profile.ErrNotFound
		}

		return nil, apperr.Storage("getting profile", err)
	}

	p.Mode = profile.Mode(mode)

	return &p, nil
}

// EnsureProfile inserts p unless a row for p.ID already exists. The primary
// key makes concurrent first listings converge on a single profile.
func (s *Store) EnsureProfile(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, email, display_name, mode, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, p.ID, p.Email, p.DisplayName, p.Mode); err != nil {
		return apperr.Storage("ensuring profile", err)
	}

	return nil
}

func (s *Store) UpdateMode(ctx context.Context, id uuid.UUID, mode profile.Mode) error {
	query := `
		UPDATE profiles
		SET mode = $1, updated_at = NOW()
		WHERE id = $2
	`

	return s.update(ctx, "updating mode", query, mode, id)
}

func (s *Store) UpdateDisplayName(ctx context.Context, id uuid.UUID, name string) error {
	query := `
		UPDATE profiles
		SET display_name = $1, updated_at = NOW()
		WHERE id = $2
	`

	return s.update(ctx, "updating display name", query, name, id)
}

func (s *Store) update(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.Storage(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(op, err)
	}

	if n == 0 {
		return profile.ErrNotFound
	}

	return nil
}
