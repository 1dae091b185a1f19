package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, negotiation_id, buyer_id, seller_id, amount, order_id, status, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var statusStr string

	if err := s.Scan(
		&tx.ID, &tx.NegotiationID, &tx.BuyerID, &tx.SellerID, &tx.Amount, &tx.OrderID, &statusStr, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Status = transaction.Status(statusStr)

	return &tx, nil
}

const selectTransactionColumns = `
	id, negotiation_id, buyer_id, seller_id, amount, order_id, status, created_at
`

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, apperr.Storage("getting transaction", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND (buyer_id = $%d OR seller_id = $%d)", argIdx, argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at < $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("listing transactions", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, apperr.Storage("scanning transaction", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterating transaction rows", err)
	}

	return txs, nil
}

func captureLockKey(orderID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("capture"))
	h.Write([]byte{0})
	h.Write([]byte(orderID))

	return int64(h.Sum64())
}

type captureTx struct {
	tx *sql.Tx
}

// BeginCapture opens a transaction holding an advisory lock on the order id,
// so concurrent captures of the same order serialize and the second one sees
// the first one's row.
func (s *Store) BeginCapture(ctx context.Context, orderID string) (transaction.CaptureTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Storage("beginning capture tx", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", captureLockKey(orderID)); err != nil {
		dbTx.Rollback()
		return nil, apperr.Storage("acquiring capture lock", err)
	}

	return &captureTx{tx: dbTx}, nil
}

func (c *captureTx) Commit() error {
	if err := c.tx.Commit(); err != nil {
		return apperr.Storage("committing capture", err)
	}

	return nil
}

func (c *captureTx) Rollback() error { return c.tx.Rollback() }

func (c *captureTx) FindByOrderID(ctx context.Context, orderID string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE order_id = $1`

	tx, err := scanTransaction(c.tx.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, apperr.Storage("finding transaction by order", err)
	}

	return tx, nil
}

func (c *captureTx) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (negotiation_id, buyer_id, seller_id, amount, order_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := c.tx.QueryRowContext(ctx, query,
		tx.NegotiationID,
		tx.BuyerID,
		tx.SellerID,
		tx.Amount,
		tx.OrderID,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return apperr.Storage("creating transaction", err)
	}

	return nil
}

// MarkProductSold also applies to a listing the seller deleted meanwhile;
// the payment was captured either way.
func (c *captureTx) MarkProductSold(ctx context.Context, productID uuid.UUID, at time.Time) error {
	query := `
		UPDATE products
		SET status = 'sold', sold_at = COALESCE(sold_at, $1), updated_at = NOW()
		WHERE id = $2
	`

	return c.exec(ctx, "marking product sold", query, at, productID)
}

// MarkNegotiationPaid leaves a cancelled negotiation untouched and reports
// it as not found, which rolls the capture back.
func (c *captureTx) MarkNegotiationPaid(ctx context.Context, negotiationID uuid.UUID) error {
	query := `
		UPDATE negotiations
		SET status = 'paid', updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
	`

	return c.exec(ctx, "marking negotiation paid", query, negotiationID)
}

func (c *captureTx) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := c.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperr.Storage(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}

	return nil
}
