package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

// JobHandler handles job-related HTTP requests. Every method expects the auth
// middleware to have run and only ever touches the signed-in user's jobs.
type JobHandler struct {
	jobService   *service.JobService
	shareService *service.ShareService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *service.JobService, shareService *service.ShareService) *JobHandler {
	return &JobHandler{
		jobService:   jobService,
		shareService: shareService,
	}
}

// ListJobs handles GET requests to list the user's jobs, newest first.
//
// Endpoint: GET /api/jobs?page=1&limit=10&search=&frequency=All
// Response: 200 OK with model.JobPage
// Error: 400 Bad Request if a query parameter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	filters, err := request.ParseJobFilters(
		r.URL.Query().Get("page"),
		r.URL.Query().Get("limit"),
		r.URL.Query().Get("search"),
		r.URL.Query().Get("frequency"),
	)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "Invalid filter parameters", err.Error())
		return
	}
	filters.UserID = claims.UserID

	page, err := h.jobService.ListJobs(r.Context(), *filters)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveJobs.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, page)
}

// CreateJob handles POST requests to create a job. The distribution is
// computed from the request and stored with it.
//
// Endpoint: POST /api/jobs
// Request Body: JobRequest (projectName, paymentAmount, frequency, workingDev, and optionally,
// conversionRate, jobHunter, communicatingDev, policyType and advancedPolicy)
// Response: 201 Created with model.Job
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.JobRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateJob(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), claims.UserID, req)
	if err != nil {
		respondJobError(w, err, apperrors.ErrFailedToCreateJob)
		return
	}

	response.RespondJSON(w, http.StatusCreated, job)
}

// GetJob handles GET requests to retrieve one job.
//
// Endpoint: GET /api/jobs/{uuid}
// Response: 200 OK with model.Job
// Error: 404 Not Found if the job does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(r.Context(), claims.UserID, chi.URLParam(r, "uuid"))
	if err != nil {
		respondJobError(w, err, apperrors.ErrFailedToRetrieveJob)
		return
	}

	response.RespondJSON(w, http.StatusOK, job)
}

// UpdateJob handles PUT requests to replace a job's inputs. The distribution
// is recomputed from scratch.
//
// Endpoint: PUT /api/jobs/{uuid}
// Request Body: JobRequest
// Response: 200 OK with model.Job
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the job does not exist or belongs to another user
// Error: 500 Internal Server Error if update fails
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.JobRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateJob(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	job, err := h.jobService.UpdateJob(r.Context(), claims.UserID, chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondJobError(w, err, apperrors.ErrFailedToUpdateJob)
		return
	}

	response.RespondJSON(w, http.StatusOK, job)
}

// DeleteJob handles DELETE requests to remove a job and its interns.
//
// Endpoint: DELETE /api/jobs/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the job does not exist or belongs to another user
// Error: 500 Internal Server Error if deletion fails
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(r.Context(), claims.UserID, chi.URLParam(r, "uuid")); err != nil {
		respondJobError(w, err, apperrors.ErrFailedToDeleteJob)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Stats handles GET requests for the user's job totals.
//
// Endpoint: GET /api/jobs/stats
// Response: 200 OK with model.JobStats
// Error: 500 Internal Server Error if aggregation fails
func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	stats, err := h.jobService.Stats(r.Context(), claims.UserID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// NameSuggestions handles GET requests for names used on the user's jobs.
//
// Endpoint: GET /api/jobs/names/suggestions
// Response: 200 OK with []string
// Error: 500 Internal Server Error if retrieval fails
func (h *JobHandler) NameSuggestions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	names, err := h.jobService.NameSuggestions(r.Context(), claims.UserID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetNames.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, names)
}

// Export handles GET requests to download the user's jobs as CSV.
//
// Endpoint: GET /api/jobs/export
// Response: 200 OK with text/csv attachment
// Error: 500 Internal Server Error if the export fails
func (h *JobHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.jobService.ExportCSV(r.Context(), claims.UserID, &buf); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExportJobs.Error(), err.Error())
		return
	}

	filename := fmt.Sprintf("budgetsplit-jobs-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Breakdown handles GET requests for a job's rendered distribution.
//
// Endpoint: GET /api/jobs/{uuid}/breakdown
// Response: 200 OK with model.Breakdown
// Error: 404 Not Found if the job does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *JobHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	breakdown, err := h.jobService.Breakdown(r.Context(), claims.UserID, chi.URLParam(r, "uuid"))
	if err != nil {
		respondJobError(w, err, apperrors.ErrFailedToRetrieveJob)
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}

// Share handles POST requests to create a public link to a job's breakdown.
//
// Endpoint: POST /api/jobs/{uuid}/share
// Response: 201 Created with model.ShareLink
// Error: 404 Not Found if the job does not exist or belongs to another user
// Error: 500 Internal Server Error if the link cannot be created
func (h *JobHandler) Share(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	link, err := h.shareService.CreateShareLink(r.Context(), claims.UserID, chi.URLParam(r, "uuid"))
	if err != nil {
		respondJobError(w, err, apperrors.ErrFailedToCreateShare)
		return
	}

	response.RespondJSON(w, http.StatusCreated, link)
}

// respondJobError maps validation errors to 400, ErrJobNotFound to 404 and
// anything else to 500 with fallback as the message.
func respondJobError(w http.ResponseWriter, err error, fallback error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondValidationError(w, err)
		return
	}
	if errors.Is(err, apperrors.ErrJobNotFound) {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrJobNotFound.Error(), "")
		return
	}
	response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
}
