package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	BeginCapture(ctx context.Context, orderID string) (CaptureTx, error)
}

// CaptureTx holds the writes of one capture. They become visible together on
// Commit; nothing is written otherwise.
type CaptureTx interface {
	FindByOrderID(ctx context.Context, orderID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	MarkProductSold(ctx context.Context, productID uuid.UUID, at time.Time) error
	MarkNegotiationPaid(ctx context.Context, negotiationID uuid.UUID) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CaptureParams struct {
	NegotiationID uuid.UUID
	ProductID     uuid.UUID
	BuyerID       uuid.UUID
	SellerID      uuid.UUID
	Amount        decimal.Decimal
	OrderID       string
}

type ListFilter struct {
	UserID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// RecordCapture commits the ledger entry, marks the product sold and the
// negotiation paid in one database transaction. Replaying an order id that is
// already recorded returns the existing entry without writing.
func (s *Service) RecordCapture(ctx context.Context, params CaptureParams) (*Transaction, error) {
	params.OrderID = strings.TrimSpace(params.OrderID)
	if params.OrderID == "" {
		return nil, apperr.Validation("order id is required")
	}

	if !params.Amount.IsPositive() {
		return nil, apperr.Validation("captured amount must be greater than zero")
	}

	capTx, err := s.repo.BeginCapture(ctx, params.OrderID)
	if err != nil {
		return nil, fmt.Errorf("begin capture: %w", err)
	}
	defer capTx.Rollback()

	existing, err := capTx.FindByOrderID(ctx, params.OrderID)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find order: %w", err)
	}

	tx := &Transaction{
		NegotiationID: params.NegotiationID,
		BuyerID:       params.BuyerID,
		SellerID:      params.SellerID,
		Amount:        params.Amount.Round(2),
		OrderID:       params.OrderID,
		Status:        StatusCaptured,
	}

	if err := capTx.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := capTx.MarkProductSold(ctx, params.ProductID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("mark product sold: %w", err)
	}

	if err := capTx.MarkNegotiationPaid(ctx, params.NegotiationID); err != nil {
		return nil, fmt.Errorf("mark negotiation paid: %w", err)
	}

	if err := capTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit capture: %w", err)
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// List returns ledger entries across all users, for operator tooling.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListForUser returns the entries where the caller is buyer or seller.
func (s *Service) ListForUser(ctx context.Context, id auth.Identity, filter ListFilter) ([]*Transaction, error) {
	if err := id.Require(); err != nil {
		return nil, err
	}

	filter.UserID = &id.UserID

	return s.repo.ListTransactions(ctx, filter)
}
