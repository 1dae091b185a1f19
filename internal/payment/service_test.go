package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/negotiation"
	"github.com/MrJamesThe3rd/haggle/internal/payment"
	"github.com/MrJamesThe3rd/haggle/internal/payment/paypal"
	"github.com/MrJamesThe3rd/haggle/internal/product"
	"github.com/MrJamesThe3rd/haggle/internal/transaction"
)

type mocks struct {
	repo         *payment.MockRepository
	gateway      *payment.MockGateway
	negotiations *payment.MockNegotiations
	ledger       *payment.MockLedger
}

func newService(t *testing.T) (*payment.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo:         payment.NewMockRepository(ctrl),
		gateway:      payment.NewMockGateway(ctrl),
		negotiations: payment.NewMockNegotiations(ctrl),
		ledger:       payment.NewMockLedger(ctrl),
	}

	return payment.NewService(m.repo, m.gateway, m.negotiations, m.ledger), m
}

func decimalEq(want string) gomock.Matcher {
	d := decimal.RequireFromString(want)

	return gomock.Cond(func(got decimal.Decimal) bool { return d.Equal(got) })
}

func TestService_CreateOrder(t *testing.T) {
	type testCase struct {
		name      string
		amount    decimal.Decimal
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			amount: decimal.RequireFromString("39.999"),
			setupMock: func(m mocks) {
				m.gateway.EXPECT().
					CreateOrder(gomock.Any(), decimalEq("40.00")).
					Return(json.RawMessage(`{"id":"ORDER-1"}`), nil)
			},
		},
		{
			name:    "Zero",
			amount:  decimal.Zero,
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "Negative",
			amount:  decimal.NewFromInt(-5),
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "RoundsToZero",
			amount:  decimal.RequireFromString("0.004"),
			wantErr: apperr.ErrValidation,
		},
		{
			name:   "GatewayDown",
			amount: decimal.NewFromInt(10),
			setupMock: func(m mocks) {
				m.gateway.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, apperr.Gateway("creating order", errors.New("connection refused")))
			},
			wantErr: apperr.ErrGatewayUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.CreateOrder(context.Background(), tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"ORDER-1"}`, string(got))
		})
	}
}

func TestService_CaptureOrder(t *testing.T) {
	const orderID = "5O190127TN364715T"

	raw := json.RawMessage(`{"id":"5O190127TN364715T","status":"COMPLETED"}`)
	negID := uuid.New()

	active := func() *negotiation.Negotiation {
		return &negotiation.Negotiation{
			ID:         negID,
			ProductID:  uuid.New(),
			BuyerID:    uuid.New(),
			SellerID:   uuid.New(),
			PitchPrice: decimal.RequireFromString("45.00"),
			Status:     negotiation.StatusActive,
		}
	}

	captured := func(amount string) *paypal.Capture {
		c := &paypal.Capture{Raw: raw}
		if amount != "" {
			c.Amount = decimal.NewNullDecimal(decimal.RequireFromString(amount))
		}

		return c
	}

	type testCase struct {
		name       string
		negID      uuid.UUID
		setupMock  func(m mocks)
		wantErr    error
		wantTx     bool
		wantReason payment.Reason
	}

	tests := []testCase{
		{
			name:  "UsesCapturedAmount",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(active(), nil)
				m.ledger.EXPECT().
					RecordCapture(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p transaction.CaptureParams) (*transaction.Transaction, error) {
						assert.True(t, decimal.RequireFromString("40").Equal(p.Amount))
						assert.Equal(t, orderID, p.OrderID)

						return &transaction.Transaction{ID: uuid.New(), OrderID: orderID, Amount: p.Amount}, nil
					})
			},
			wantTx: true,
		},
		{
			name:  "FallsBackToFinalPrice",
			negID: negID,
			setupMock: func(m mocks) {
				n := active()
				n.FinalPrice = decimal.NewNullDecimal(decimal.RequireFromString("42.50"))
				n.FinalOfferExpiresAt = new(time.Now().Add(time.Hour))

				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured(""), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(n, nil)
				m.ledger.EXPECT().
					RecordCapture(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p transaction.CaptureParams) (*transaction.Transaction, error) {
						assert.True(t, decimal.RequireFromString("42.50").Equal(p.Amount))

						return &transaction.Transaction{ID: uuid.New()}, nil
					})
			},
			wantTx: true,
		},
		{
			name:  "FallsBackToPitchPrice",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured(""), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(active(), nil)
				m.ledger.EXPECT().
					RecordCapture(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p transaction.CaptureParams) (*transaction.Transaction, error) {
						assert.True(t, decimal.RequireFromString("45").Equal(p.Amount))

						return &transaction.Transaction{ID: uuid.New()}, nil
					})
			},
			wantTx: true,
		},
		{
			name:  "NegotiationMissing",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(nil, negotiation.ErrNotFound)
				m.repo.EXPECT().
					RecordOrphan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *payment.Orphan) error {
						assert.Equal(t, payment.ReasonNegotiationNotFound, o.Reason)
						assert.JSONEq(t, string(raw), string(o.Payload))

						return nil
					})
			},
			wantReason: payment.ReasonNegotiationNotFound,
		},
		{
			name:  "OfferExpired",
			negID: negID,
			setupMock: func(m mocks) {
				n := active()
				n.FinalPrice = decimal.NewNullDecimal(decimal.RequireFromString("40.00"))
				n.FinalOfferExpiresAt = new(time.Now().Add(-time.Minute))

				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(n, nil)
				m.repo.EXPECT().
					RecordOrphan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *payment.Orphan) error {
						assert.Equal(t, payment.ReasonOfferExpired, o.Reason)
						assert.True(t, o.Amount.Valid)

						return nil
					})
			},
			wantErr: apperr.ErrOfferExpired,
		},
		{
			name:  "CancelledNegotiationIsNotSettled",
			negID: negID,
			setupMock: func(m mocks) {
				n := active()
				n.Status = negotiation.StatusCancelled

				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(n, nil)
				m.repo.EXPECT().
					RecordOrphan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *payment.Orphan) error {
						assert.Equal(t, payment.ReasonNegotiationCancelled, o.Reason)
						assert.True(t, o.Amount.Valid)

						return nil
					})
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:  "CommitFailsStillReturnsPayload",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(active(), nil)
				m.ledger.EXPECT().
					RecordCapture(gomock.Any(), gomock.Any()).
					Return(nil, apperr.Storage("committing capture", errors.New("connection reset")))
				m.repo.EXPECT().
					RecordOrphan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *payment.Orphan) error {
						assert.Equal(t, payment.ReasonCommitFailed, o.Reason)
						assert.Contains(t, o.Detail, "connection reset")

						return nil
					})
			},
			wantReason: payment.ReasonCommitFailed,
		},
		{
			name:  "OrphanWriteFailsStillReturnsPayload",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().CaptureOrder(gomock.Any(), orderID).Return(captured("40.00"), nil)
				m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(nil, negotiation.ErrNotFound)
				m.repo.EXPECT().RecordOrphan(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantReason: payment.ReasonNegotiationNotFound,
		},
		{
			name:  "GatewayFailsNothingRecorded",
			negID: negID,
			setupMock: func(m mocks) {
				m.gateway.EXPECT().
					CaptureOrder(gomock.Any(), orderID).
					Return(nil, apperr.Gateway("capturing order", errors.New("422 UNPROCESSABLE_ENTITY")))
			},
			wantErr: apperr.ErrGatewayUnavailable,
		},
		{
			name:    "MissingNegotiationID",
			negID:   uuid.Nil,
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.CaptureOrder(context.Background(), orderID, tt.negID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, string(raw), string(got.Raw))

			if tt.wantTx {
				assert.NotNil(t, got.Transaction)
				assert.Nil(t, got.Orphan)

				return
			}

			require.NotNil(t, got.Orphan)
			assert.Nil(t, got.Transaction)
			assert.Equal(t, tt.wantReason, got.Orphan.Reason)
		})
	}
}

func TestService_CaptureOrder_DetachedFromRequest(t *testing.T) {
	svc, m := newService(t)

	ctx, cancel := context.WithCancel(context.Background())
	negID := uuid.New()

	m.gateway.EXPECT().
		CaptureOrder(gomock.Any(), "ORDER-1").
		DoAndReturn(func(context.Context, string) (*paypal.Capture, error) {
			cancel()

			return &paypal.Capture{Raw: json.RawMessage(`{}`)}, nil
		})
	m.negotiations.EXPECT().
		Lookup(gomock.Any(), negID).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID) (*negotiation.Negotiation, error) {
			assert.NoError(t, ctx.Err())

			return &negotiation.Negotiation{ID: negID, PitchPrice: decimal.NewFromInt(5)}, nil
		})
	m.ledger.EXPECT().RecordCapture(gomock.Any(), gomock.Any()).Return(&transaction.Transaction{ID: uuid.New()}, nil)

	got, err := svc.CaptureOrder(ctx, "ORDER-1", negID)
	require.NoError(t, err)
	assert.NotNil(t, got.Transaction)
}

func TestService_CaptureOrder_ShortfallIsLogged(t *testing.T) {
	var logs bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc, m := newService(t)
	negID := uuid.New()

	n := &negotiation.Negotiation{
		ID:         negID,
		Status:     negotiation.StatusActive,
		PitchPrice: decimal.NewFromInt(45),
		FinalPrice: decimal.NewNullDecimal(decimal.NewFromInt(50)),
	}

	m.gateway.EXPECT().
		CaptureOrder(gomock.Any(), "ORDER-2").
		Return(&paypal.Capture{Raw: json.RawMessage(`{}`), Amount: decimal.NewNullDecimal(decimal.NewFromInt(1))}, nil)
	m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(n, nil)
	m.ledger.EXPECT().
		RecordCapture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p transaction.CaptureParams) (*transaction.Transaction, error) {
			assert.True(t, decimal.NewFromInt(1).Equal(p.Amount))

			return &transaction.Transaction{ID: uuid.New()}, nil
		})

	got, err := svc.CaptureOrder(context.Background(), "ORDER-2", negID)
	require.NoError(t, err)
	assert.NotNil(t, got.Transaction)

	assert.Contains(t, logs.String(), "captured amount below agreed price")
	assert.Contains(t, logs.String(), `"agreed":"50"`)
}

func TestService_Reconcile(t *testing.T) {
	negID := uuid.New()
	orphanID := uuid.New()

	orphan := func(reason payment.Reason) *payment.Orphan {
		return &payment.Orphan{
			ID:            orphanID,
			OrderID:       "ORDER-9",
			NegotiationID: &negID,
			Amount:        decimal.NewNullDecimal(decimal.RequireFromString("12.00")),
			Reason:        reason,
		}
	}

	t.Run("CommitFailedIsRetried", func(t *testing.T) {
		svc, m := newService(t)
		txID := uuid.New()

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(orphan(payment.ReasonCommitFailed), nil)
		m.negotiations.EXPECT().Lookup(gomock.Any(), negID).Return(&negotiation.Negotiation{ID: negID}, nil)
		m.ledger.EXPECT().
			RecordCapture(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p transaction.CaptureParams) (*transaction.Transaction, error) {
				assert.Equal(t, "ORDER-9", p.OrderID)
				assert.True(t, decimal.NewFromInt(12).Equal(p.Amount))

				return &transaction.Transaction{ID: txID}, nil
			})
		m.repo.EXPECT().ResolveOrphan(gomock.Any(), orphanID, "reconciled as transaction "+txID.String(), gomock.Any()).Return(nil)

		got, err := svc.Reconcile(context.Background(), orphanID)
		require.NoError(t, err)
		assert.Equal(t, txID, got.ID)
	})

	t.Run("CancelledMeanwhileIsNotRetried", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(orphan(payment.ReasonCommitFailed), nil)
		m.negotiations.EXPECT().
			Lookup(gomock.Any(), negID).
			Return(&negotiation.Negotiation{ID: negID, Status: negotiation.StatusCancelled}, nil)

		_, err := svc.Reconcile(context.Background(), orphanID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("ExpiredOfferIsNotRetried", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(orphan(payment.ReasonOfferExpired), nil)

		_, err := svc.Reconcile(context.Background(), orphanID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		svc, m := newService(t)

		o := orphan(payment.ReasonCommitFailed)
		o.ResolvedAt = new(time.Now())
		o.Resolution = "refunded"

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(o, nil)

		_, err := svc.Reconcile(context.Background(), orphanID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_Dismiss(t *testing.T) {
	orphanID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(&payment.Orphan{ID: orphanID, Reason: payment.ReasonOfferExpired}, nil)
		m.repo.EXPECT().ResolveOrphan(gomock.Any(), orphanID, "refunded via dashboard", gomock.Any()).Return(nil)

		require.NoError(t, svc.Dismiss(context.Background(), orphanID, "  refunded via dashboard "))
	})

	t.Run("NoteRequired", func(t *testing.T) {
		svc, _ := newService(t)

		assert.ErrorIs(t, svc.Dismiss(context.Background(), orphanID, " "), apperr.ErrValidation)
	})

	t.Run("Missing", func(t *testing.T) {
		svc, m := newService(t)

		m.repo.EXPECT().GetOrphan(gomock.Any(), orphanID).Return(nil, payment.ErrOrphanNotFound)

		assert.ErrorIs(t, svc.Dismiss(context.Background(), orphanID, "refunded"), apperr.ErrNotFound)
	})
}

// TestBuyerSellerCapture walks a listing from first contact to a recorded
// sale through the real negotiation and ledger services.
func TestBuyerSellerCapture(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	seller := auth.Identity{UserID: uuid.New(), Email: "seller@example.com"}
	buyer := auth.Identity{UserID: uuid.New(), Email: "buyer@example.com"}
	listing := &product.Product{
		ID:       uuid.New(),
		SellerID: seller.UserID,
		Title:    "Road bike",
		Price:    decimal.RequireFromString("50.00"),
		Status:   product.StatusActive,
	}

	var stored *negotiation.Negotiation

	negRepo := negotiation.NewMockRepository(ctrl)
	products := negotiation.NewMockProductReader(ctrl)
	products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)

	negRepo.EXPECT().FindByProductAndBuyer(gomock.Any(), listing.ID, buyer.UserID).Return(nil, negotiation.ErrNotFound)
	negRepo.EXPECT().
		CreateNegotiation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *negotiation.Negotiation) (bool, error) {
			n.ID = uuid.New()
			stored = new(*n)

			return true, nil
		})
	negRepo.EXPECT().
		GetNegotiation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, uuid.UUID) (*negotiation.Negotiation, error) {
			return new(*stored), nil
		}).
		AnyTimes()
	negRepo.EXPECT().
		UpdatePitch(gomock.Any(), gomock.Any(), gomock.Any(), negotiation.StatusActive).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, price decimal.Decimal, status negotiation.Status) error {
			stored.PitchPrice = price
			stored.Status = status

			return nil
		})
	negRepo.EXPECT().
		SetFinalOffer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, price decimal.Decimal, expiresAt time.Time) error {
			stored.FinalPrice = decimal.NewNullDecimal(price)
			stored.FinalOfferExpiresAt = &expiresAt

			return nil
		})

	negotiations := negotiation.NewService(negRepo, products)

	n, created, err := negotiations.StartOrResume(ctx, buyer, listing.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, negotiation.StatusPending, n.Status)

	_, err = negotiations.Pitch(ctx, buyer, n.ID, decimal.RequireFromString("35"))
	require.NoError(t, err)

	_, err = negotiations.MakeFinalOffer(ctx, buyer, n.ID, decimal.RequireFromString("40"), time.Hour)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = negotiations.MakeFinalOffer(ctx, seller, n.ID, decimal.RequireFromString("40"), time.Hour)
	require.NoError(t, err)

	txRepo := transaction.NewMockRepository(ctrl)
	capTx := transaction.NewMockCaptureTx(ctrl)

	txRepo.EXPECT().BeginCapture(gomock.Any(), "ORDER-1").Return(capTx, nil)
	capTx.EXPECT().FindByOrderID(gomock.Any(), "ORDER-1").Return(nil, transaction.ErrNotFound)
	capTx.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.ID = uuid.New()

			return nil
		})
	capTx.EXPECT().MarkProductSold(gomock.Any(), listing.ID, gomock.Any()).Return(nil)
	capTx.EXPECT().
		MarkNegotiationPaid(gomock.Any(), n.ID).
		DoAndReturn(func(context.Context, uuid.UUID) error {
			stored.Status = negotiation.StatusPaid

			return nil
		})
	capTx.EXPECT().Commit().Return(nil)
	capTx.EXPECT().Rollback().Return(nil)

	gateway := payment.NewMockGateway(ctrl)
	gateway.EXPECT().
		CreateOrder(gomock.Any(), decimalEq("40")).
		Return(json.RawMessage(`{"id":"ORDER-1","status":"CREATED"}`), nil)
	gateway.EXPECT().
		CaptureOrder(gomock.Any(), "ORDER-1").
		Return(&paypal.Capture{Raw: json.RawMessage(`{"id":"ORDER-1","status":"COMPLETED"}`)}, nil)

	payments := payment.NewService(payment.NewMockRepository(ctrl), gateway, negotiations, transaction.NewService(txRepo))

	agreed, err := negotiations.Get(ctx, buyer, n.ID)
	require.NoError(t, err)

	_, err = payments.CreateOrder(ctx, agreed.AgreedPrice())
	require.NoError(t, err)

	res, err := payments.CaptureOrder(ctx, "ORDER-1", n.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)
	assert.Nil(t, res.Orphan)
	assert.True(t, decimal.NewFromInt(40).Equal(res.Transaction.Amount))
	assert.Equal(t, buyer.UserID, res.Transaction.BuyerID)
	assert.Equal(t, seller.UserID, res.Transaction.SellerID)

	final, err := negotiations.Get(ctx, seller, n.ID)
	require.NoError(t, err)
	assert.Equal(t, negotiation.StatusPaid, final.Status)

	_, err = negotiations.Pitch(ctx, buyer, n.ID, decimal.NewFromInt(30))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
