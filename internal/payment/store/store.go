package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, order_id, negotiation_id, amount, reason, detail,
// payload, created_at, resolved_at, resolution
func scanOrphan(s scanner) (*payment.Orphan, error) {
	var o payment.Orphan

	var (
		reason  string
		payload []byte
		negID   uuid.NullUUID
	)

	if err := s.Scan(
		&o.ID, &o.OrderID, &negID, &o.Amount, &reason, &o.Detail,
		&payload, &o.CreatedAt, &o.ResolvedAt, &o.Resolution,
	); err != nil {
		return nil, err
	}

	o.Reason = payment.Reason(reason)
	o.Payload = payload

	if negID.Valid {
		o.NegotiationID = &negID.UUID
	}

	return &o, nil
}

const selectOrphanColumns = `
	id, order_id, negotiation_id, amount, reason, detail,
	payload, created_at, resolved_at, resolution
`

func (s *Store) RecordOrphan(ctx context.Context, o *payment.Orphan) error {
	query := `
		INSERT INTO orphaned_captures (order_id, negotiation_id, amount, reason, detail, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	payload := []byte(o.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	err := s.db.QueryRowContext(ctx, query,
		o.OrderID,
		o.NegotiationID,
		o.Amount,
		o.Reason,
		o.Detail,
		payload,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return apperr.Storage("recording orphaned capture", err)
	}

	return nil
}

func (s *Store) GetOrphan(ctx context.Context, id uuid.UUID) (*payment.Orphan, error) {
	query := `SELECT ` + selectOrphanColumns + `
		FROM orphaned_captures
		WHERE id = $1`

	o, err := scanOrphan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrOrphanNotFound
		}

		return nil, apperr.Storage("getting orphaned capture", err)
	}

	return o, nil
}

func (s *Store) ListOrphans(ctx context.Context, openOnly bool) ([]*payment.Orphan, error) {
	query := `SELECT ` + selectOrphanColumns + `
		FROM orphaned_captures`

	if openOnly {
		query += " WHERE resolved_at IS NULL"
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.Storage("listing orphaned captures", err)
	}
	defer rows.Close()

	var orphans []*payment.Orphan

	for rows.Next() {
		o, err := scanOrphan(rows)
		if err != nil {
			return nil, apperr.Storage("scanning orphaned capture", err)
		}

		orphans = append(orphans, o)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating orphaned capture rows", err)
	}

	return orphans, nil
}

// ResolveOrphan only touches open rows, so concurrent resolutions cannot
// overwrite each other.
func (s *Store) ResolveOrphan(ctx context.Context, id uuid.UUID, resolution string, at time.Time) error {
	query := `
		UPDATE orphaned_captures
		SET resolved_at = $1, resolution = $2
		WHERE id = $3 AND resolved_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, at, resolution, id)
	if err != nil {
		return apperr.Storage("resolving orphaned capture", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("resolving orphaned capture", err)
	}

	if n == 0 {
		return payment.ErrOrphanNotFound
	}

	return nil
}
