package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/product"
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

// Expected column order: id, seller_id, title, price, description, location,
// is_negotiable, images, status, sold_at, created_at, updated_at
func scanProduct(s scanner) (*product.Product, error) {
	var p product.Product

	var statusStr string

	var images []byte

	if err := s.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Price, &p.Description, &p.Location,
		&p.IsNegotiable, &images, &statusStr, &p.SoldAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = product.Status(statusStr)

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}

	if p.Images == nil {
		p.Images = []string{}
	}

	return &p, nil
}

const selectProductColumns = `
	id, seller_id, title, price, description, location,
	is_negotiable, images, status, sold_at, created_at, updated_at
`

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}

	return json.Marshal(images)
}

const insertProductQuery = `
	INSERT INTO products (seller_id, title, price, description, location, is_negotiable, images, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	RETURNING id, created_at
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertProduct(ctx context.Context, q queryRower, p *product.Product) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	err = q.QueryRowContext(ctx, insertProductQuery,
		p.SellerID,
		p.Title,
		p.Price,
		p.Description,
		p.Location,
		p.IsNegotiable,
		images,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return apperr.Storage("creating product", err)
	}

	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	return insertProduct(ctx, s.db, p)
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}

		return nil, apperr.Storage("getting product", err)
	}

	return p, nil
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + `
		FROM products
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.SellerID != nil {
		query += fmt.Sprintf(" AND seller_id = $%d", argIdx)

		args = append(args, *filter.SellerID)
		argIdx++
	}

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)

		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("listing products", err)
	}
	defer rows.Close()

	var ps []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Storage("scanning product", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating product rows", err)
	}

	return ps, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	query := `
		UPDATE products
		SET title = $1, price = $2, description = $3, location = $4, is_negotiable = $5, images = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		p.Title,
		p.Price,
		p.Description,
		p.Location,
		p.IsNegotiable,
		images,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}

		return apperr.Storage("updating product", err)
	}

	return nil
}

func (s *Store) MarkSold(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE products
		SET status = 'sold', sold_at = COALESCE(sold_at, $1), updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return apperr.Storage("marking product sold", err)
	}

	return expectRow(res, product.ErrNotFound)
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperr.Storage("deleting product", err)
	}

	return expectRow(res, product.ErrNotFound)
}

func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("reading affected rows", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (product.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("beginning import tx", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateProducts(ctx context.Context, ps []*product.Product) error {
	for _, p := range ps {
		if err := insertProduct(ctx, itx.tx, p); err != nil {
			return err
		}
	}

	return nil
}
