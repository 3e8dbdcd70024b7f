package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/response"
	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// TokenVerifier checks a raw session token.
type TokenVerifier interface {
	ParseToken(ctx context.Context, raw string) (model.TokenClaims, error)
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims model.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (model.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(model.TokenClaims)
	return claims, ok
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the verified claims in the request context.
// Returns 401 Unauthorized for missing, malformed, expired or revoked tokens.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.ParseToken(r.Context(), bearerToken(r))
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrMissingToken),
					errors.Is(err, apperrors.ErrTokenExpired),
					errors.Is(err, apperrors.ErrTokenRevoked):
					response.RespondError(w, http.StatusUnauthorized, err.Error(), "")
				case errors.Is(err, apperrors.ErrInvalidToken):
					response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), "")
				default:
					response.RespondError(w, http.StatusInternalServerError, "failed to verify token", err.Error())
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken extracts the token from the Authorization header. A header
// without the Bearer scheme yields an empty token.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
