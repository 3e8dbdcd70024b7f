package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrJobNotFound indicates that a job with the given ID does not exist
	// or is owned by another user.
	ErrJobNotFound = errors.New("job not found")

	// ErrUserNotFound indicates that no user matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")
)

// Authentication errors represent rejected credentials or session tokens.
var (
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserInactive indicates that the account exists but has been disabled.
	ErrUserInactive = errors.New("user is inactive")

	// ErrMissingToken indicates that a request carried no bearer token.
	ErrMissingToken = errors.New("access denied, no token provided")

	// ErrInvalidToken indicates a malformed token or a bad signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates a token that was signed out.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidShareToken indicates a share link that is forged, corrupted or expired.
	ErrInvalidShareToken = errors.New("share link is invalid or expired")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveJobs  = errors.New("failed to retrieve jobs")
	ErrFailedToRetrieveJob   = errors.New("failed to retrieve job")
	ErrFailedToCreateJob     = errors.New("failed to create job")
	ErrFailedToUpdateJob     = errors.New("failed to update job")
	ErrFailedToDeleteJob     = errors.New("failed to delete job")
	ErrFailedToGetStats      = errors.New("failed to get job statistics")
	ErrFailedToGetNames      = errors.New("failed to get name suggestions")
	ErrFailedToExportJobs    = errors.New("failed to export jobs")
	ErrFailedToCreateShare   = errors.New("failed to create share link")
	ErrFailedToSignIn        = errors.New("failed to sign in")
	ErrFailedToSignOut       = errors.New("failed to sign out")
	ErrFailedToGetVersion    = errors.New("failed to get version information")
	ErrFailedToRetrieveUser  = errors.New("failed to retrieve user")
	ErrFailedToPurgeSessions = errors.New("failed to purge revoked tokens")
)
