package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// UserRepository provides data access methods for the app_user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, is_active, created_at`

// GetUserByEmail looks a user up by email, ignoring case.
// Returns ErrUserNotFound if no user has that email.
func (s *UserRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE email = ?`
	return s.getUser(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

// GetUserByID retrieves a user by ID.
// Returns ErrUserNotFound if no user has that ID.
func (s *UserRepository) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, apperrors.ErrEmptyID
	}
	query := `SELECT ` + userColumns + ` FROM app_user WHERE id = ?`
	return s.getUser(ctx, query, userID)
}

func (s *UserRepository) getUser(ctx context.Context, query string, arg string) (model.User, error) {
	var u model.User
	var createdAt string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.IsActive,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query app_user: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAt)
	if err != nil {
		return model.User{}, err
	}

	return u, nil
}

// InsertUser stores a new user. Emails are stored lower-cased.
// Returns ErrDuplicateEntry if the email is already taken.
func (s *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}

	query := `
		INSERT INTO app_user (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := s.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.IsActive,
		FormatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}
