// Package respond writes JSON responses and maps domain errors to HTTP
// statuses. Error bodies are always {"error": "..."}.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
)

const maxBody = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Raw writes an already encoded JSON document, e.g. a gateway payload.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error writes err with the status of its class. Unclassified errors are
// logged and reported as "internal error".
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classify(err)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}

	JSON(w, status, errorBody{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrOfferExpired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, apperr.ErrSelfNegotiation):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, apperr.ErrGatewayUnavailable):
		return http.StatusInternalServerError, apperr.ErrGatewayUnavailable.Error()
	}

	return http.StatusInternalServerError, "internal error"
}

// Decode reads a JSON body into v. Malformed input is a validation error.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))

	if err := dec.Decode(v); err != nil {
		return apperr.Validation("invalid request body: %s", err)
	}

	return nil
}

// ID parses a uuid path or body parameter.
func ID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s", name)
	}

	return id, nil
}

// PathID parses the chi URL parameter name as a uuid.
func PathID(r *http.Request, name string) (uuid.UUID, error) {
	return ID(name, chi.URLParam(r, name))
}
