package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
)

// ShareHandler serves shared breakdowns to anyone holding a link
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// Resolve renders the breakdown a share token points to. No authentication.
//
// Endpoint: GET /api/share/{token}
// Response: 200 OK with model.Breakdown
// Error: 404 Not Found if the token is invalid or expired, or the job was deleted
// Error: 500 Internal Server Error if retrieval fails
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.shareService.ResolveShareLink(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidShareToken):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvalidShareToken.Error(), "")
		case errors.Is(err, apperrors.ErrJobNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrJobNotFound.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveJob.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}
