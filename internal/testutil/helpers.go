package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/artilectsolutions/budgetsplit-backend/internal/distribution"
	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
)

// TestJWTSecret signs the session tokens of services built here.
const TestJWTSecret = "test-jwt-secret"

// TestDefaults are the job defaults used by services built here.
var TestDefaults = service.Defaults{
	ConversionRate: distribution.DefaultConversionRate,
	Policy:         distribution.DefaultPolicy(),
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func NewTestJobService(t *testing.T, db *sql.DB) *service.JobService {
	t.Helper()

	return service.NewJobService(
		repository.NewJobRepository(db),
		TestDefaults,
		DiscardLogger(),
	)
}

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	return service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRevokedTokenRepository(db),
		service.AuthOptions{
			Secret:     TestJWTSecret,
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
	)
}

func NewTestShareService(t *testing.T, db *sql.DB) *service.ShareService {
	t.Helper()

	shareService, err := service.NewShareService("", time.Hour, NewTestJobService(t, db))
	if err != nil {
		t.Fatalf("Failed to create share service: %v", err)
	}
	return shareService
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Project")
//	// Returns: "Project ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Name"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail("admin")
//	// Returns: "admin.abc123@example.com"
func MakeEmail(local string) string {
	if local == "" {
		local = "user"
	}
	return local + "." + strings.ToLower(randomAlphanumeric(6)) + "@example.com"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
