package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/middleware"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/testutil"
)

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	auth := testutil.NewTestAuthService(t, db)
	user := testutil.CreateUser(t, db)

	session, err := auth.SignIn(ctx, user.Email, testutil.TestPassword)
	if err != nil {
		t.Fatalf("SignIn() returned unexpected error: %v", err)
	}

	serve := func(header string) (*httptest.ResponseRecorder, *model.TokenClaims) {
		var got *model.TokenClaims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
				got = &claims
			}
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		middleware.Authenticate(auth)(next).ServeHTTP(w, req)
		return w, got
	}

	errorOf := func(w *httptest.ResponseRecorder) string {
		var response map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		msg, _ := response["error"].(string)
		return msg
	}

	t.Run("rejects request without token", func(t *testing.T) {
		w, claims := serve("")

		if claims != nil {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if msg := errorOf(w); msg != "access denied, no token provided" {
			t.Errorf("Expected missing token error, got '%s'", msg)
		}
	})

	t.Run("rejects non-bearer scheme", func(t *testing.T) {
		w, claims := serve("Basic " + session.Token)

		if claims != nil {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		w, claims := serve("Bearer invalid")

		if claims != nil {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if msg := errorOf(w); msg != "invalid token" {
			t.Errorf("Expected 'invalid token' error, got '%s'", msg)
		}
	})

	t.Run("allows request with valid token", func(t *testing.T) {
		w, claims := serve("Bearer " + session.Token)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if claims == nil || claims.UserID != user.ID {
			t.Errorf("Expected claims for user %s, got %+v", user.ID, claims)
		}
	})

	t.Run("rejects token after logout", func(t *testing.T) {
		other, err := auth.SignIn(ctx, user.Email, testutil.TestPassword)
		if err != nil {
			t.Fatalf("SignIn() returned unexpected error: %v", err)
		}
		claims, err := auth.ParseToken(ctx, other.Token)
		if err != nil {
			t.Fatalf("ParseToken() returned unexpected error: %v", err)
		}
		if err := auth.Logout(ctx, claims); err != nil {
			t.Fatalf("Logout() returned unexpected error: %v", err)
		}

		w, got := serve("Bearer " + other.Token)

		if got != nil {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if msg := errorOf(w); msg != "token revoked" {
			t.Errorf("Expected 'token revoked' error, got '%s'", msg)
		}
	})
}
