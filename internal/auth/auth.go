// Package auth turns bearer session tokens issued by the identity provider
// into an explicit Identity value that is passed into every core operation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

// Identity is the authenticated caller. The zero value is an anonymous caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil
}

// Require returns apperr.ErrUnauthorized for an anonymous caller.
func (i Identity) Require() error {
	if i.IsZero() {
		return fmt.Errorf("%w: sign in required", apperr.ErrUnauthorized)
	}

	return nil
}

// Claims is the token payload. The subject carries the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

func (v *Verifier) Verify(tokenStr string) (Identity, error) {
	if len(v.secret) == 0 {
		return Identity{}, fmt.Errorf("%w: token verification is not configured", apperr.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	if !token.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", apperr.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject is not a user id", apperr.ErrUnauthorized)
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}

// Issue signs a session token for id. The identity provider normally does
// this; the API only needs it for local tooling and tests.
func (v *Verifier) Issue(id Identity, ttl time.Duration) (string, error) {
	if id.IsZero() {
		return "", errors.New("cannot issue a token for an anonymous identity")
	}

	now := time.Now()
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached by the HTTP middleware, or the
// anonymous identity.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}
