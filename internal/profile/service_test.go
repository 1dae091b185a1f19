package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	"github.com/MrJamesThe3rd/haggle/internal/profile"
)

func TestService_Get(t *testing.T) {
	id := auth.Identity{UserID: uuid.New(), Email: "ana@example.com"}

	type testCase struct {
		name      string
		id        auth.Identity
		setupMock func(m *profile.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Existing",
			id:   id,
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(&profile.Profile{ID: id.UserID}, nil)
			},
		},
		{
			name: "CreatedLazily",
			id:   id,
			setupMock: func(m *profile.MockRepository) {
				gomock.InOrder(
					m.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(nil, profile.ErrNotFound),
					m.EXPECT().
						EnsureProfile(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, p *profile.Profile) error {
							assert.Equal(t, id.UserID, p.ID)
							assert.Equal(t, profile.ModeBuyer, p.Mode)

							return nil
						}),
					m.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(&profile.Profile{ID: id.UserID}, nil),
				)
			},
		},
		{
			name:    "Anonymous",
			id:      auth.Identity{},
			wantErr: apperr.ErrUnauthorized,
		},
		{
			name: "StorageError",
			id:   id,
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(nil, apperr.Storage("getting profile", errors.New("conn reset")))
			},
			wantErr: apperr.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := profile.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := profile.NewService(repo).Get(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id.UserID, got.ID)
		})
	}
}

func TestService_SetMode(t *testing.T) {
	id := auth.Identity{UserID: uuid.New()}

	t.Run("Seller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := profile.NewMockRepository(ctrl)

		repo.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(&profile.Profile{ID: id.UserID, Mode: profile.ModeBuyer}, nil)
		repo.EXPECT().UpdateMode(gomock.Any(), id.UserID, profile.ModeSeller).Return(nil)
		repo.EXPECT().GetProfile(gomock.Any(), id.UserID).Return(&profile.Profile{ID: id.UserID, Mode: profile.ModeSeller}, nil)

		got, err := profile.NewService(repo).SetMode(context.Background(), id, profile.ModeSeller)
		require.NoError(t, err)
		assert.Equal(t, profile.ModeSeller, got.Mode)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := profile.NewMockRepository(ctrl)

		_, err := profile.NewService(repo).SetMode(context.Background(), id, profile.Mode("admin"))
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestService_Rename(t *testing.T) {
	id := auth.Identity{UserID: uuid.New()}

	ctrl := gomock.NewController(t)
	repo := profile.NewMockRepository(ctrl)

	_, err := profile.NewService(repo).Rename(context.Background(), id, "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProfile_Name(t *testing.T) {
	tests := []struct {
		name    string
		profile profile.Profile
		want    string
	}{
		{name: "DisplayName", profile: profile.Profile{DisplayName: "Ana", Email: "ana@example.com"}, want: "Ana"},
		{name: "EmailFallback", profile: profile.Profile{Email: "ana@example.com"}, want: "ana"},
		{name: "Empty", profile: profile.Profile{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Name())
		})
	}
}
