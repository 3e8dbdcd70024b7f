package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/middleware"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// TestRespondJSON tests the respondJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// respondJSON is unexported.
func TestRespondJSON(t *testing.T) {
	t.Run("sets content-type and status code correctly", func(t *testing.T) {
		w := httptest.NewRecorder()

		respondJSON(w, http.StatusOK, map[string]string{"message": "success"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
	})

	t.Run("handles un-encodable data gracefully", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		respondJSON(w, http.StatusOK, map[string]any{"channel": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestParseJSON(t *testing.T) {
	t.Run("decodes body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
			strings.NewReader(`{"email":"ali@example.com","password":"secret1"}`))

		got, err := parseJSON[request.SignInRequest](req)
		if err != nil {
			t.Fatalf("parseJSON() returned unexpected error: %v", err)
		}
		if got.Email != "ali@example.com" {
			t.Errorf("Expected email ali@example.com, got %s", got.Email)
		}
	})

	t.Run("rejects empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(""))

		if _, err := parseJSON[request.SignInRequest](req); err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{"paymentAmount": "lots"}`))

		if _, err := parseJSON[request.JobRequest](req); err == nil {
			t.Error("Expected error for wrong field type")
		}
	})
}

func TestRequireClaims(t *testing.T) {
	t.Run("writes 401 without claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		w := httptest.NewRecorder()

		if _, ok := requireClaims(w, req); ok {
			t.Error("Expected no claims")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("returns stored claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		req = req.WithContext(middleware.WithClaims(req.Context(), model.TokenClaims{UserID: "u1"}))

		claims, ok := requireClaims(httptest.NewRecorder(), req)
		if !ok || claims.UserID != "u1" {
			t.Errorf("Expected claims for u1, got %+v", claims)
		}
	})
}
