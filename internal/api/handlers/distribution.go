package handlers

import (
	"net/http"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

// DistributionHandler computes distributions without storing them
type DistributionHandler struct {
	jobService *service.JobService
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(jobService *service.JobService) *DistributionHandler {
	return &DistributionHandler{
		jobService: jobService,
	}
}

// Preview computes the distribution a job would get. Nothing is persisted.
//
// Endpoint: POST /api/distribution/preview
// Request Body: JobRequest (projectName and frequency are ignored)
// Response: 200 OK with model.Breakdown
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *DistributionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.JobRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePreview(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	breakdown, err := h.jobService.Preview(req)
	if err != nil {
		response.RespondValidationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}
