package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
)

func TestVerifier_IssueAndVerify(t *testing.T) {
	v := auth.NewVerifier("secret", "haggle")
	id := auth.Identity{UserID: uuid.New(), Email: "buyer@example.com"}

	token, err := v.Issue(id, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifier_Verify(t *testing.T) {
	type testCase struct {
		name  string
		token func(t *testing.T) string
	}

	sign := func(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
		t.Helper()

		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		return s
	}

	tests := []testCase{
		{
			name: "WrongSecret",
			token: func(t *testing.T) string {
				return sign(t, "other", jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					Issuer:    "haggle",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}})
			},
		},
		{
			name: "Expired",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					Issuer:    "haggle",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				}})
			},
		},
		{
			name: "MissingExpiry",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
					Subject: uuid.NewString(),
					Issuer:  "haggle",
				}})
			},
		},
		{
			name: "WrongIssuer",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   uuid.NewString(),
					Issuer:    "someone-else",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}})
			},
		},
		{
			name: "SubjectNotUUID",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
					Subject:   "42",
					Issuer:    "haggle",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}})
			},
		},
		{
			name:  "Garbage",
			token: func(*testing.T) string { return "not-a-token" },
		},
	}

	v := auth.NewVerifier("secret", "haggle")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token(t))
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		})
	}
}

func TestIdentity_Require(t *testing.T) {
	assert.ErrorIs(t, auth.Identity{}.Require(), apperr.ErrUnauthorized)
	assert.NoError(t, auth.Identity{UserID: uuid.New()}.Require())
}

func TestContextRoundTrip(t *testing.T) {
	assert.True(t, auth.FromContext(context.Background()).IsZero())

	id := auth.Identity{UserID: uuid.New()}
	ctx := auth.WithIdentity(context.Background(), id)
	assert.Equal(t, id, auth.FromContext(ctx))
}
