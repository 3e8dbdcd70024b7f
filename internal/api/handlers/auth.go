package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/validation"
)

// AuthHandler handles sign-in and session HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// VerifyTokenResponse represents the verify-token response
type VerifyTokenResponse struct {
	Valid     bool       `json:"valid"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// SignIn handles POST requests to open a session.
//
// Endpoint: POST /api/auth/signin
// Request Body: SignInRequest (email, password)
// Response: 200 OK with model.Session
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 401 Unauthorized if the email or password is wrong
// Error: 403 Forbidden if the account is inactive
// Error: 500 Internal Server Error if sign-in fails
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SignInRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSignIn(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	session, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
		case errors.Is(err, apperrors.ErrUserInactive):
			response.RespondError(w, http.StatusForbidden, apperrors.ErrUserInactive.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSignIn.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, session)
}

// Me returns the signed-in user.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with model.User
// Error: 403 Forbidden if the account was disabled after sign-in
// Error: 404 Not Found if the account no longer exists
// Error: 500 Internal Server Error if retrieval fails
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, ok := h.currentUser(w, r, claims)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// VerifyToken confirms that the presented token is still valid.
//
// Endpoint: POST /api/auth/verify-token
// Response: 200 OK with VerifyTokenResponse
// Error: 401 Unauthorized (from the auth middleware) if the token is not valid
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	user, ok := h.currentUser(w, r, claims)
	if !ok {
		return
	}

	response.RespondJSON(w, http.StatusOK, VerifyTokenResponse{
		Valid:     true,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	})
}

// Logout revokes the presented token.
//
// Endpoint: POST /api/auth/logout
// Response: 200 OK
// Error: 500 Internal Server Error if the token cannot be revoked
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSignOut.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request, claims model.TokenClaims) (model.User, bool) {
	user, err := h.authService.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrUserInactive):
			response.RespondError(w, http.StatusForbidden, apperrors.ErrUserInactive.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveUser.Error(), err.Error())
		}
		return model.User{}, false
	}
	return user, true
}
