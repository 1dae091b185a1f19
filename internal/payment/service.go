package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
	"github.com/MrJamesThe3rd/haggle/internal/payment/paypal"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

// localCommitTimeout bounds the local writes after a capture. They run
// detached from the request: the funds are already captured.
const localCommitTimeout = 30 * time.Second

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	RecordOrphan(ctx context.Context, o *Orphan) error
	GetOrphan(ctx context.Context, id uuid.UUID) (*Orphan, error)
	ListOrphans(ctx context.Context, openOnly bool) ([]*Orphan, error)
	ResolveOrphan(ctx context.Context, id uuid.UUID, resolution string, at time.Time) error
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.Capture, error)
}

type Negotiations interface {
	Lookup(ctx context.Context, negotiationID uuid.UUID) (*negotiation.Negotiation, error)
}

type Ledger interface {
	RecordCapture(ctx context.Context, params transaction.CaptureParams) (*transaction.Transaction, error)
}

type Service struct {
	repo         Repository
	gateway      Gateway
	negotiations Negotiations
	ledger       Ledger
	now          func() time.Time
}

func NewService(repo Repository, gateway Gateway, negotiations Negotiations, ledger Ledger) *Service {
	return &Service{
		repo:         repo,
		gateway:      gateway,
		negotiations: negotiations,
		ledger:       ledger,
		now:          time.Now,
	}
}

// CreateOrder opens a gateway order for amount. Nothing is stored locally
// until the order is captured.
func (s *Service) CreateOrder(ctx context.Context, amount decimal.Decimal) (json.RawMessage, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, apperr.Validation("invalid amount")
	}

	return s.gateway.CreateOrder(ctx, amount)
}

// CaptureOrder captures orderID at the gateway and settles negotiationID
// locally. When the capture succeeds but cannot be settled, the capture is
// kept as an Orphan and the gateway payload is still returned, except for an
// expired offer, which fails with apperr.ErrOfferExpired, and a cancelled
// negotiation, which fails with apperr.ErrValidation.
func (s *Service) CaptureOrder(ctx context.Context, orderID string, negotiationID uuid.UUID) (*CaptureResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}

	if negotiationID == uuid.Nil {
		return nil, apperr.Validation("negotiation id is required")
	}

	capture, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), localCommitTimeout)
	defer cancel()

	res := &CaptureResult{Raw: capture.Raw}
	orphan := &Orphan{
		OrderID:       orderID,
		NegotiationID: &negotiationID,
		Amount:        capture.Amount,
		Payload:       capture.Raw,
	}

	n, err := s.negotiations.Lookup(ctx, negotiationID)
	if err != nil {
		orphan.Reason = ReasonCommitFailed
		if errors.Is(err, negotiation.ErrNotFound) {
			orphan.Reason = ReasonNegotiationNotFound
		}

		orphan.Detail = err.Error()
		res.Orphan = s.recordOrphan(ctx, orphan)

		return res, nil
	}

	if n.Status == negotiation.StatusCancelled {
		orphan.Reason = ReasonNegotiationCancelled
		orphan.Detail = "negotiation was cancelled before the capture"
		s.recordOrphan(ctx, orphan)

		return nil, apperr.Validation("negotiation %s was cancelled; the payment will be refunded", negotiationID)
	}

	if n.OfferExpired(s.now()) {
		orphan.Reason = ReasonOfferExpired
		orphan.Detail = fmt.Sprintf("final offer expired at %s", n.FinalOfferExpiresAt.UTC().Format(time.RFC3339))
		s.recordOrphan(ctx, orphan)

		return nil, fmt.Errorf("%w: %s", apperr.ErrOfferExpired, orphan.Detail)
	}

	tx, err := s.settle(ctx, n, orderID, capture.Amount)
	if err != nil {
		orphan.Reason = ReasonCommitFailed
		orphan.Detail = err.Error()
		res.Orphan = s.recordOrphan(ctx, orphan)

		return res, nil
	}

	res.Transaction = tx

	return res, nil
}

func (s *Service) ListOrphans(ctx context.Context, openOnly bool) ([]*Orphan, error) {
	return s.repo.ListOrphans(ctx, openOnly)
}

// Reconcile retries the local settlement of an orphan whose commit failed.
func (s *Service) Reconcile(ctx context.Context, orphanID uuid.UUID) (*transaction.Transaction, error) {
	o, err := s.openOrphan(ctx, orphanID)
	if err != nil {
		return nil, err
	}

	if o.Reason != ReasonCommitFailed || o.NegotiationID == nil {
		return nil, apperr.Validation("only failed commits can be reconciled; dismiss %s captures after refunding", o.Reason)
	}

	n, err := s.negotiations.Lookup(ctx, *o.NegotiationID)
	if err != nil {
		return nil, err
	}

	if n.Status == negotiation.StatusCancelled {
		return nil, apperr.Validation("negotiation %s was cancelled; refund and dismiss the capture", n.ID)
	}

	tx, err := s.settle(ctx, n, o.OrderID, o.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ResolveOrphan(ctx, o.ID, "reconciled as transaction "+tx.ID.String(), s.now().UTC()); err != nil {
		return nil, err
	}

	return tx, nil
}

// Dismiss closes an orphan that was handled outside the system, e.g. refunded.
func (s *Service) Dismiss(ctx context.Context, orphanID uuid.UUID, note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return apperr.Validation("a note is required to dismiss a capture")
	}

	o, err := s.openOrphan(ctx, orphanID)
	if err != nil {
		return err
	}

	return s.repo.ResolveOrphan(ctx, o.ID, note, s.now().UTC())
}

func (s *Service) openOrphan(ctx context.Context, id uuid.UUID) (*Orphan, error) {
	o, err := s.repo.GetOrphan(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.IsOpen() {
		return nil, apperr.Validation("capture was already resolved: %s", o.Resolution)
	}

	return o, nil
}

// settle records the capture with the gateway amount, falling back to the
// negotiated price when the gateway did not report one.
func (s *Service) settle(ctx context.Context, n *negotiation.Negotiation, orderID string, captured decimal.NullDecimal) (*transaction.Transaction, error) {
	amount := n.AgreedPrice()
	if captured.Valid {
		if captured.Decimal.LessThan(amount) {
			slog.Warn("captured amount below agreed price",
				"order_id", orderID,
				"negotiation_id", n.ID,
				"captured", captured.Decimal.String(),
				"agreed", amount.String(),
			)
		}

		amount = captured.Decimal
	}

	return s.ledger.RecordCapture(ctx, transaction.CaptureParams{
		NegotiationID: n.ID,
		ProductID:     n.ProductID,
		BuyerID:       n.BuyerID,
		SellerID:      n.SellerID,
		Amount:        amount,
		OrderID:       orderID,
	})
}

// recordOrphan stores o. If even that fails, the capture is logged with
// everything needed to reconcile it by hand.
func (s *Service) recordOrphan(ctx context.Context, o *Orphan) *Orphan {
	slog.Warn("captured payment not settled", "order_id", o.OrderID, "negotiation_id", o.NegotiationID, "reason", o.Reason, "detail", o.Detail)

	if err := s.repo.RecordOrphan(ctx, o); err != nil {
		slog.Error("failed to record orphaned capture",
			"order_id", o.OrderID,
			"negotiation_id", o.NegotiationID,
			"reason", o.Reason,
			"payload", string(o.Payload),
			"error", err,
		)
	}

	return o
}
