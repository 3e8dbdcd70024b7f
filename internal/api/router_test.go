package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/config"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/ratelimit"
	"github.com/artilectsolutions/budgetsplit-backend/internal/testutil"
)

func newTestRouter(t *testing.T, requests int) (http.Handler, model.User) {
	t.Helper()

	return newTestRouterWithConfig(t, &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{Requests: requests, Window: time.Minute},
	})
}

func newTestRouterWithConfig(t *testing.T, cfg *config.Config) (http.Handler, model.User) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db)

	services := api.Services{
		System: testutil.NewTestSystemService(t, db),
		Auth:   testutil.NewTestAuthService(t, db),
		Jobs:   testutil.NewTestJobService(t, db),
		Share:  testutil.NewTestShareService(t, db),
	}

	return api.NewRouter(services, ratelimit.NewMemoryStore(), cfg, testutil.DiscardLogger()), user
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestRouter_JobLifecycle drives the API end to end through the router.
//
// WHY: Handlers are tested in isolation elsewhere; this checks the routes,
// the auth middleware and the share link are wired together.
func TestRouter_JobLifecycle(t *testing.T) {
	router, user := newTestRouter(t, 1000)

	w := do(t, router, http.MethodPost, "/api/auth/signin", "", request.SignInRequest{
		Email:    user.Email,
		Password: testutil.TestPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var session model.Session
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&session)

	if w := do(t, router, http.MethodGet, "/api/jobs", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("jobs without token: expected 401, got %d", w.Code)
	}

	w = do(t, router, http.MethodPost, "/api/jobs", session.Token, request.JobRequest{
		ProjectName:   "Routed",
		PaymentAmount: 1000,
		Frequency:     "One-time",
		WorkingDev:    "Ali",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var job model.Job
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&job)

	if w := do(t, router, http.MethodGet, "/api/jobs/not-a-uuid", session.Token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/jobs/stats", session.Token, nil); w.Code != http.StatusOK {
		t.Errorf("stats: expected 200, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/jobs/"+job.ID+"/breakdown", session.Token, nil); w.Code != http.StatusOK {
		t.Errorf("breakdown: expected 200, got %d", w.Code)
	}

	w = do(t, router, http.MethodPost, "/api/jobs/"+job.ID+"/share", session.Token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("share: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var link model.ShareLink
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&link)

	if w := do(t, router, http.MethodGet, "/api/share/"+link.Token, "", nil); w.Code != http.StatusOK {
		t.Errorf("public share: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if w := do(t, router, http.MethodPost, "/api/auth/logout", session.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/jobs", session.Token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("jobs after logout: expected 401, got %d", w.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router, _ := newTestRouter(t, 2)

	for range 2 {
		do(t, router, http.MethodGet, "/api/jobs", "", nil)
	}

	if w := do(t, router, http.MethodGet, "/api/jobs", "", nil); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", w.Code)
	}

	// System endpoints are not limited.
	if w := do(t, router, http.MethodGet, "/api/system/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("Expected health to stay available, got %d", w.Code)
	}
}

// TestRouter_RateLimitProxyHeaders tests which client address the limiter keys on.
//
// WHY: Forwarding headers are client-controlled unless a trusted proxy sets
// them; honoring them by default would let every request pick a fresh key.
func TestRouter_RateLimitProxyHeaders(t *testing.T) {
	forwarded := func(h http.Handler, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
		req.Header.Set("X-Forwarded-For", ip)
		req.Header.Set("X-Real-IP", ip)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("ignores forwarding headers by default", func(t *testing.T) {
		router, _ := newTestRouter(t, 2)

		forwarded(router, "203.0.113.1")
		forwarded(router, "203.0.113.2")

		if code := forwarded(router, "203.0.113.3"); code != http.StatusTooManyRequests {
			t.Errorf("Expected 429 despite a new forwarded address, got %d", code)
		}
	})

	t.Run("keys on forwarded address behind a trusted proxy", func(t *testing.T) {
		router, _ := newTestRouterWithConfig(t, &config.Config{
			Server:    config.ServerConfig{TrustProxy: true},
			RateLimit: config.RateLimitConfig{Requests: 2, Window: time.Minute},
		})

		forwarded(router, "203.0.113.1")
		forwarded(router, "203.0.113.1")

		if code := forwarded(router, "203.0.113.1"); code != http.StatusTooManyRequests {
			t.Errorf("Expected 429 for the same forwarded address, got %d", code)
		}
		if code := forwarded(router, "203.0.113.2"); code == http.StatusTooManyRequests {
			t.Error("Expected another forwarded address to have its own window")
		}
	})
}

func TestRouter_Preflight(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected allowed origin, got %q", got)
	}
}
