package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RevokedTokenRepository records signed-out session tokens by their ID.
type RevokedTokenRepository struct {
	db *sql.DB
}

// NewRevokedTokenRepository creates a new RevokedTokenRepository with the provided database connection.
func NewRevokedTokenRepository(db *sql.DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

// RevokeToken marks a token ID as revoked until expiresAt. Revoking the same
// ID twice is a no-op.
func (s *RevokedTokenRepository) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	query := `INSERT OR IGNORE INTO revoked_token (token_id, expires_at) VALUES (?, ?)`

	if _, err := s.db.ExecContext(ctx, query, tokenID, FormatTime(expiresAt)); err != nil {
		return fmt.Errorf("failed to insert revoked_token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether a token ID has been revoked.
func (s *RevokedTokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_token WHERE token_id = ?)`

	var revoked bool
	if err := s.db.QueryRowContext(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to query revoked_token: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose token expired before now and
// returns how many were removed.
func (s *RevokedTokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM revoked_token WHERE expires_at < ?`

	result, err := s.db.ExecContext(ctx, query, FormatTime(now))
	if err != nil {
		return 0, fmt.Errorf("failed to purge revoked_token: %w", err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return purged, nil
}
