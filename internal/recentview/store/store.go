package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	"github.com/MrJamesThe3rd/haggle/internal/recentview"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertView(ctx context.Context, userID, productID uuid.UUID, at time.Time) error {
	query := `
		INSERT INTO recent_views (user_id, product_id, viewed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET viewed_at = EXCLUDED.viewed_at
	`

	if _, err := s.db.ExecContext(ctx, query, userID, productID, at); err != nil {
		return apperr.Storage("recording view", err)
	}

	return nil
}

func (s *Store) ListViews(ctx context.Context, userID uuid.UUID, limit int) ([]*recentview.View, error) {
	query := `
		SELECT p.id, p.seller_id, p.title, p.price, p.description, p.location,
			p.is_negotiable, p.images, p.status, p.sold_at, p.created_at, p.updated_at,
			v.viewed_at
		FROM recent_views v
		JOIN products p ON p.id = v.product_id
		WHERE v.user_id = $1 AND p.deleted_at IS NULL
		ORDER BY v.viewed_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, apperr.Storage("listing views", err)
	}
	defer rows.Close()

	var views []*recentview.View

	for rows.Next() {
		var (
			p      product.Product
			status string
			images []byte
			v      recentview.View
		)

		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Title, &p.Price, &p.Description, &p.Location,
			&p.IsNegotiable, &images, &status, &p.SoldAt, &p.CreatedAt, &p.UpdatedAt,
			&v.ViewedAt,
		); err != nil {
			return nil, apperr.Storage("scanning view", err)
		}

		p.Status = product.Status(status)
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, apperr.Storage("decoding images", err)
		}

		v.Product = &p
		views = append(views, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating view rows", err)
	}

	return views, nil
}

func (s *Store) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_views WHERE product_id = $1`, productID); err != nil {
		return apperr.Storage("forgetting product views", err)
	}

	return nil
}
