package validation

import (
	"net/mail"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
)

// MinPasswordLength is the shortest password accepted at sign-in.
const MinPasswordLength = 6

// ValidateSignIn validates a sign-in request.
//
// Required fields:
//   - email: Must be a syntactically valid address
//   - password: At least 6 characters
func ValidateSignIn(req request.SignInRequest) error {
	errors := make(map[string]string)

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errors["email"] = "email is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errors["email"] = "please provide a valid email"
	}

	if len(req.Password) < MinPasswordLength {
		errors["password"] = "password must be at least 6 characters long"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
