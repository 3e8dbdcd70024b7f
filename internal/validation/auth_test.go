package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api/request"
)

func TestValidateSignIn(t *testing.T) {
	tests := []struct {
		name    string
		req     request.SignInRequest
		invalid []string
	}{
		{"valid", request.SignInRequest{Email: "admin@example.com", Password: "secret1"}, nil},
		{"missing email", request.SignInRequest{Password: "secret1"}, []string{"email"}},
		{"malformed email", request.SignInRequest{Email: "not-an-email", Password: "secret1"}, []string{"email"}},
		{"display name form rejected", request.SignInRequest{Email: "Admin <admin@example.com>", Password: "secret1"}, []string{"email"}},
		{"short password", request.SignInRequest{Email: "admin@example.com", Password: "12345"}, []string{"password"}},
		{"both invalid", request.SignInRequest{}, []string{"email", "password"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSignIn(tc.req)
			if len(tc.invalid) == 0 {
				assert.NoError(t, err)
				return
			}
			f := fields(t, err)
			assert.Len(t, f, len(tc.invalid))
			for _, field := range tc.invalid {
				assert.Contains(t, f, field)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.ErrorIs(t, ValidateUUID("invalid-id"), ErrInvalidUUID)
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Fields: map[string]string{"email": "email is required"}}
	assert.Equal(t, "email: email is required", err.Error())
}
