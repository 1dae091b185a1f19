package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "Validation",
			err:        apperr.Validation("invalid amount"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"validation failed: invalid amount"}`,
		},
		{
			name:       "OfferExpired",
			err:        fmt.Errorf("%w: at noon", apperr.ErrOfferExpired),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"final offer expired: at noon"}`,
		},
		{
			name:       "Unauthorized",
			err:        apperr.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"unauthorized"}`,
		},
		{
			name:       "SelfNegotiation",
			err:        apperr.ErrSelfNegotiation,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"cannot negotiate on your own product"}`,
		},
		{
			name:       "NotFound",
			err:        fmt.Errorf("product %w", apperr.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"product not found"}`,
		},
		{
			name:       "GatewayHidesDetail",
			err:        apperr.Gateway("capturing order", errors.New("secret upstream detail")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"payment gateway unavailable"}`,
		},
		{
			name:       "StorageIsInternal",
			err:        apperr.Storage("listing products", errors.New("pq: relation missing")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestDecode(t *testing.T) {
	var body struct {
		Amount string `json:"amount"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":"12.50"}`))
	require.NoError(t, respond.Decode(rec, req, &body))
	assert.Equal(t, "12.50", body.Amount)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":`))
	assert.ErrorIs(t, respond.Decode(rec, req, &body), apperr.ErrValidation)
}

func TestID(t *testing.T) {
	_, err := respond.ID("negotiationId", "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "negotiationId")
}
