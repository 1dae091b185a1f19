package negotiation_test

import (
	"context"
	"errors"
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
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

type fixture struct {
	repo     *negotiation.MockRepository
	products *negotiation.MockProductReader
	svc      *negotiation.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := negotiation.NewMockRepository(ctrl)
	products := negotiation.NewMockProductReader(ctrl)

	return fixture{repo: repo, products: products, svc: negotiation.NewService(repo, products)}
}

func decimalEq(want string) gomock.Matcher {
	return gomock.Cond(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

func TestService_StartOrResume(t *testing.T) {
	seller := auth.Identity{UserID: uuid.New()}
	buyer := auth.Identity{UserID: uuid.New()}
	listing := &product.Product{
		ID:       uuid.New(),
		SellerID: seller.UserID,
		Price:    decimal.NewFromInt(50),
		Status:   product.StatusActive,
	}

	type testCase struct {
		name        string
		caller      auth.Identity
		setupMock   func(f fixture)
		wantCreated bool
		wantErr     error
	}

	tests := []testCase{
		{
			name:   "Creates",
			caller: buyer,
			setupMock: func(f fixture) {
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
				f.repo.EXPECT().FindByProductAndBuyer(gomock.Any(), listing.ID, buyer.UserID).Return(nil, negotiation.ErrNotFound)
				f.repo.EXPECT().
					CreateNegotiation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n *negotiation.Negotiation) (bool, error) {
						assert.True(t, decimal.NewFromInt(50).Equal(n.PitchPrice))
						assert.Equal(t, negotiation.StatusPending, n.Status)
						assert.Equal(t, seller.UserID, n.SellerID)

						n.ID = uuid.New()

						return true, nil
					})
			},
			wantCreated: true,
		},
		{
			name:   "Resumes",
			caller: buyer,
			setupMock: func(f fixture) {
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
				f.repo.EXPECT().FindByProductAndBuyer(gomock.Any(), listing.ID, buyer.UserID).Return(&negotiation.Negotiation{
					ID: uuid.New(), ProductID: listing.ID, BuyerID: buyer.UserID, SellerID: seller.UserID, Status: negotiation.StatusActive,
				}, nil)
			},
		},
		{
			name:   "LostRaceReturnsWinner",
			caller: buyer,
			setupMock: func(f fixture) {
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
				f.repo.EXPECT().FindByProductAndBuyer(gomock.Any(), listing.ID, buyer.UserID).Return(nil, negotiation.ErrNotFound)
				f.repo.EXPECT().CreateNegotiation(gomock.Any(), gomock.Any()).Return(false, nil)
			},
		},
		{
			name:    "Anonymous",
			caller:  auth.Identity{},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name:   "SelfNegotiation",
			caller: seller,
			setupMock: func(f fixture) {
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil)
			},
			wantErr: apperr.ErrSelfNegotiation,
		},
		{
			name:   "ProductMissing",
			caller: buyer,
			setupMock: func(f fixture) {
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(nil, product.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:   "ProductSold",
			caller: buyer,
			setupMock: func(f fixture) {
				sold := *listing
				sold.Status = product.StatusSold
				f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(&sold, nil)
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			got, created, err := f.svc.StartOrResume(context.Background(), tt.caller, listing.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}

func TestService_StartOrResume_Twice(t *testing.T) {
	f := newFixture(t)
	buyer := auth.Identity{UserID: uuid.New()}
	listing := &product.Product{ID: uuid.New(), SellerID: uuid.New(), Price: decimal.NewFromInt(10), Status: product.StatusActive}

	var stored *negotiation.Negotiation

	f.products.EXPECT().Get(gomock.Any(), listing.ID).Return(listing, nil).Times(2)
	f.repo.EXPECT().
		FindByProductAndBuyer(gomock.Any(), listing.ID, buyer.UserID).
		DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*negotiation.Negotiation, error) {
			if stored == nil {
				return nil, negotiation.ErrNotFound
			}

			return stored, nil
		}).
		Times(2)
	f.repo.EXPECT().
		CreateNegotiation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, n *negotiation.Negotiation) (bool, error) {
			n.ID = uuid.New()
			stored = n

			return true, nil
		})

	first, _, err := f.svc.StartOrResume(context.Background(), buyer, listing.ID)
	require.NoError(t, err)

	second, created, err := f.svc.StartOrResume(context.Background(), buyer, listing.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_Get(t *testing.T) {
	n := &negotiation.Negotiation{ID: uuid.New(), BuyerID: uuid.New(), SellerID: uuid.New()}

	t.Run("Participant", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), n.ID).Return(n, nil)

		got, err := f.svc.Get(context.Background(), auth.Identity{UserID: n.SellerID}, n.ID)
		require.NoError(t, err)
		assert.Equal(t, n.ID, got.ID)
	})

	t.Run("Stranger", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), n.ID).Return(n, nil)

		_, err := f.svc.Get(context.Background(), auth.Identity{UserID: uuid.New()}, n.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_Pitch(t *testing.T) {
	buyer := uuid.New()
	id := uuid.New()

	t.Run("ActivatesPending", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), id).Return(&negotiation.Negotiation{
			ID: id, BuyerID: buyer, SellerID: uuid.New(), Status: negotiation.StatusPending,
		}, nil)
		f.repo.EXPECT().UpdatePitch(gomock.Any(), id, decimalEq("40"), negotiation.StatusActive).Return(nil)

		got, err := f.svc.Pitch(context.Background(), auth.Identity{UserID: buyer}, id, decimal.RequireFromString("40"))
		require.NoError(t, err)
		assert.Equal(t, negotiation.StatusActive, got.Status)
	})

	t.Run("NonPositive", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Pitch(context.Background(), auth.Identity{UserID: buyer}, id, decimal.Zero)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Terminal", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), id).Return(&negotiation.Negotiation{
			ID: id, BuyerID: buyer, SellerID: uuid.New(), Status: negotiation.StatusPaid,
		}, nil)

		_, err := f.svc.Pitch(context.Background(), auth.Identity{UserID: buyer}, id, decimal.NewFromInt(30))
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_MakeFinalOffer(t *testing.T) {
	seller := uuid.New()
	buyer := uuid.New()
	id := uuid.New()
	open := func() *negotiation.Negotiation {
		return &negotiation.Negotiation{ID: id, BuyerID: buyer, SellerID: seller, Status: negotiation.StatusActive}
	}

	t.Run("Seller", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), id).Return(open(), nil)
		f.repo.EXPECT().SetFinalOffer(gomock.Any(), id, decimalEq("45"), gomock.Any()).Return(nil)

		got, err := f.svc.MakeFinalOffer(context.Background(), auth.Identity{UserID: seller}, id, decimal.RequireFromString("45"), time.Hour)
		require.NoError(t, err)
		require.NotNil(t, got.FinalOfferExpiresAt)
		assert.True(t, got.FinalPrice.Valid)
		assert.WithinDuration(t, time.Now().Add(time.Hour), *got.FinalOfferExpiresAt, time.Minute)
	})

	t.Run("Buyer", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetNegotiation(gomock.Any(), id).Return(open(), nil)

		_, err := f.svc.MakeFinalOffer(context.Background(), auth.Identity{UserID: buyer}, id, decimal.NewFromInt(45), time.Hour)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("BadTTL", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.MakeFinalOffer(context.Background(), auth.Identity{UserID: seller}, id, decimal.NewFromInt(45), 0)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_Cancel(t *testing.T) {
	buyer := uuid.New()
	id := uuid.New()

	f := newFixture(t)
	f.repo.EXPECT().GetNegotiation(gomock.Any(), id).Return(&negotiation.Negotiation{
		ID: id, BuyerID: buyer, SellerID: uuid.New(), Status: negotiation.StatusActive,
	}, nil)
	f.repo.EXPECT().UpdateStatus(gomock.Any(), id, negotiation.StatusCancelled).Return(errors.New("db down"))

	_, err := f.svc.Cancel(context.Background(), auth.Identity{UserID: buyer}, id)
	assert.Error(t, err)
}

func TestNegotiation_OfferExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "NoOffer", expiresAt: nil, want: false},
		{name: "Future", expiresAt: new(now.Add(time.Minute)), want: false},
		{name: "Past", expiresAt: new(now.Add(-time.Minute)), want: true},
		{name: "Exactly", expiresAt: new(now), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := negotiation.Negotiation{FinalOfferExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, n.OfferExpired(now))
		})
	}
}

func TestNegotiation_AgreedPrice(t *testing.T) {
	n := negotiation.Negotiation{PitchPrice: decimal.NewFromInt(50)}
	assert.True(t, decimal.NewFromInt(50).Equal(n.AgreedPrice()))

	n.FinalPrice = decimal.NewNullDecimal(decimal.NewFromInt(42))
	assert.True(t, decimal.NewFromInt(42).Equal(n.AgreedPrice()))
}
