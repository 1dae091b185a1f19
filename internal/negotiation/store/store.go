package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
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

const selectNegotiationColumns = `
	n.id, n.product_id, n.buyer_id, n.seller_id, n.pitch_price, n.final_price,
	n.final_offer_expires_at, n.status, n.created_at, n.updated_at
`

func scanNegotiation(s scanner, extra ...any) (*negotiation.Negotiation, error) {
	var n negotiation.Negotiation

	var statusStr string

	dest := []any{
		&n.ID, &n.ProductID, &n.BuyerID, &n.SellerID, &n.PitchPrice, &n.FinalPrice,
		&n.FinalOfferExpiresAt, &statusStr, &n.CreatedAt, &n.UpdatedAt,
	}

	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	n.Status = negotiation.Status(statusStr)

	return &n, nil
}

func (s *Store) GetNegotiation(ctx context.Context, id uuid.UUID) (*negotiation.Negotiation, error) {
	query := `SELECT ` + selectNegotiationColumns + `
		FROM negotiations n
		WHERE n.id = $1`

	n, err := scanNegotiation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, negotiation.ErrNotFound
		}

		return nil, apperr.Storage("getting negotiation", err)
	}

	return n, nil
}

func (s *Store) FindByProductAndBuyer(ctx context.Context, productID, buyerID uuid.UUID) (*negotiation.Negotiation, error) {
	query := `SELECT ` + selectNegotiationColumns + `
		FROM negotiations n
		WHERE n.product_id = $1 AND n.buyer_id = $2`

	n, err := scanNegotiation(s.db.QueryRowContext(ctx, query, productID, buyerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, negotiation.ErrNotFound
		}

		return nil, apperr.Storage("finding negotiation", err)
	}

	return n, nil
}

// CreateNegotiation relies on negotiations_product_buyer_key: a concurrent
// insert for the same pair makes this one a no-op, and the winner is read back.
func (s *Store) CreateNegotiation(ctx context.Context, n *negotiation.Negotiation) (bool, error) {
	query := `
		INSERT INTO negotiations (product_id, buyer_id, seller_id, pitch_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT ON CONSTRAINT negotiations_product_buyer_key DO NOTHING
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		n.ProductID,
		n.BuyerID,
		n.SellerID,
		n.PitchPrice,
		n.Status,
	).Scan(&n.ID, &n.CreatedAt)
	if err == nil {
		return true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return false, apperr.Storage("creating negotiation", err)
	}

	winner, err := s.FindByProductAndBuyer(ctx, n.ProductID, n.BuyerID)
	if err != nil {
		return false, err
	}

	*n = *winner

	return false, nil
}

// ListForUser joins the product summary and the counterpart's display name,
// which falls back to the mailbox part of their email.
func (s *Store) ListForUser(ctx context.Context, userID uuid.UUID) ([]*negotiation.Summary, error) {
	query := `SELECT ` + selectNegotiationColumns + `,
			p.title,
			COALESCE(p.images->>0, ''),
			COALESCE(NULLIF(c.display_name, ''), split_part(c.email, '@', 1), '')
		FROM negotiations n
		JOIN products p ON p.id = n.product_id
		LEFT JOIN profiles c ON c.id = CASE WHEN n.buyer_id = $1 THEN n.seller_id ELSE n.buyer_id END
		WHERE n.buyer_id = $1 OR n.seller_id = $1
		ORDER BY n.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperr.Storage("listing negotiations", err)
	}
	defer rows.Close()

	var out []*negotiation.Summary

	for rows.Next() {
		var sum negotiation.Summary

		n, err := scanNegotiation(rows, &sum.ProductTitle, &sum.ProductImage, &sum.CounterpartName)
		if err != nil {
			return nil, apperr.Storage("scanning negotiation", err)
		}

		sum.Negotiation = *n
		out = append(out, &sum)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating negotiation rows", err)
	}

	return out, nil
}

func (s *Store) UpdatePitch(ctx context.Context, id uuid.UUID, price decimal.Decimal, status negotiation.Status) error {
	query := `
		UPDATE negotiations
		SET pitch_price = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND status NOT IN ('paid', 'cancelled')
	`

	return s.exec(ctx, "updating pitch", query, price, status, id)
}

func (s *Store) SetFinalOffer(ctx context.Context, id uuid.UUID, price decimal.Decimal, expiresAt time.Time) error {
	query := `
		UPDATE negotiations
		SET final_price = $1, final_offer_expires_at = $2, status = 'active', updated_at = NOW()
		WHERE id = $3 AND status NOT IN ('paid', 'cancelled')
	`

	return s.exec(ctx, "setting final offer", query, price, expiresAt, id)
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status negotiation.Status) error {
	query := `
		UPDATE negotiations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status NOT IN ('paid', 'cancelled')
	`

	return s.exec(ctx, "updating negotiation status", query, status, id)
}

// exec runs a guarded update. Zero affected rows means the negotiation is
// gone or already terminal.
func (s *Store) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.Storage(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(op, err)
	}

	if n == 0 {
		return negotiation.ErrNotFound
	}

	return nil
}
