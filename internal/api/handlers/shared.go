package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/middleware"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// maxBodyBytes caps the size of a decoded request body.
const maxBodyBytes = 1 << 20

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON", "error", err)
		}
	}
}

// parseJSON decodes the request body into a T. An empty body is an error.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is empty")
		}
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// requireClaims returns the session claims set by the auth middleware and
// writes 401 when they are missing.
func requireClaims(w http.ResponseWriter, r *http.Request) (model.TokenClaims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "access denied, no token provided", "")
	}
	return claims, ok
}
