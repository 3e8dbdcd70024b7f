package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/testutil"
)

func TestDistributionHandler_Preview(t *testing.T) {
	setupHandler := func(t *testing.T) *DistributionHandler {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewDistributionHandler(testutil.NewTestJobService(t, db))
	}

	pct := func(v float64) *float64 { return &v }

	t.Run("computes advanced distribution with interns", func(t *testing.T) {
		handler := setupHandler(t)

		body := request.JobRequest{
			PaymentAmount: 1000,
			WorkingDev:    "Ali",
			PolicyType:    model.PolicyAdvanced,
			AdvancedPolicy: &request.AdvancedPolicyRequest{
				CompanyPercentage:   pct(30),
				DeveloperPercentage: pct(70),
				Interns: []request.InternRequest{
					{Name: "Zara", Type: "percentage", Percentage: 10},
					{Name: "Omar", Type: "fixed", Amount: 13900},
				},
			},
		}

		w := httptest.NewRecorder()
		handler.Preview(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/distribution/preview", body, nil))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Breakdown
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		// 700 developer base; 70 for Zara and 50 for Omar, both against 700.
		if math.Abs(response.Distribution.Intern-120) > 1e-9 {
			t.Errorf("Expected intern total 120, got %v", response.Distribution.Intern)
		}
		if math.Abs(response.Distribution.WorkingDev-580) > 1e-9 {
			t.Errorf("Expected developer share 580, got %v", response.Distribution.WorkingDev)
		}
		if len(response.Interns) != 2 {
			t.Errorf("Expected 2 intern shares, got %d", len(response.Interns))
		}
		if !response.Reconciled {
			t.Error("Expected distribution to reconcile")
		}
	})

	t.Run("returns 400 when company and developer exceed 100", func(t *testing.T) {
		handler := setupHandler(t)

		body := request.JobRequest{
			PaymentAmount: 1000,
			WorkingDev:    "Ali",
			PolicyType:    model.PolicyAdvanced,
			AdvancedPolicy: &request.AdvancedPolicyRequest{
				CompanyPercentage:   pct(50),
				DeveloperPercentage: pct(60),
			},
		}

		w := httptest.NewRecorder()
		handler.Preview(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/distribution/preview", body, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 when company alone overflows the default developer share", func(t *testing.T) {
		handler := setupHandler(t)

		body := request.JobRequest{
			PaymentAmount:  1000,
			WorkingDev:     "Ali",
			PolicyType:     model.PolicyAdvanced,
			AdvancedPolicy: &request.AdvancedPolicyRequest{CompanyPercentage: pct(80)},
		}

		w := httptest.NewRecorder()
		handler.Preview(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/distribution/preview", body, nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		if _, ok := response.Details["developerPercentage"]; !ok {
			t.Errorf("Expected developerPercentage error, got %v", response.Details)
		}
	})

	t.Run("returns 400 for missing developer", func(t *testing.T) {
		handler := setupHandler(t)

		w := httptest.NewRecorder()
		handler.Preview(w, testutil.NewJSONRequest(t, http.MethodPost, "/api/distribution/preview",
			request.JobRequest{PaymentAmount: 1000}, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
