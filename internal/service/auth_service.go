package service

//go:generate mockgen -source=auth_service.go -destination=mocks/auth_mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artilectsolutions/budgetsplit-backend/internal/apperrors"
	"github.com/artilectsolutions/budgetsplit-backend/internal/model"
)

// UserStore looks up and creates user accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, userID string) (model.User, error)
	InsertUser(ctx context.Context, u *model.User) error
}

// RevocationStore remembers signed-out token IDs until the tokens expire.
type RevocationStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthOptions configures token signing and password hashing.
// A BcryptCost of zero uses bcrypt.DefaultCost.
type AuthOptions struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// AuthService signs users in and issues and verifies HS256 session tokens.
type AuthService struct {
	users   UserStore
	revoked RevocationStore
	secret  []byte
	ttl     time.Duration
	cost    int
	now     func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, revoked RevocationStore, opts AuthOptions) *AuthService {
	cost := opts.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:   users,
		revoked: revoked,
		secret:  []byte(opts.Secret),
		ttl:     opts.TokenTTL,
		cost:    cost,
		now:     time.Now,
	}
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignIn checks an email and password and opens a session.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (model.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.Session{}, apperrors.ErrInvalidCredentials
		}
		return model.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Session{}, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.Session{}, apperrors.ErrUserInactive
	}

	token, claims, err := s.IssueToken(user)
	if err != nil {
		return model.Session{}, err
	}

	return model.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      user,
	}, nil
}

// IssueToken signs a new session token for user.
func (s *AuthService) IssueToken(user model.User) (string, model.TokenClaims, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	claims := model.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenID:   uuid.New().String(),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.TokenID,
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", model.TokenClaims{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ParseToken verifies a session token's signature, expiry and revocation.
func (s *AuthService) ParseToken(ctx context.Context, raw string) (model.TokenClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return model.TokenClaims{}, apperrors.ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, apperrors.ErrTokenExpired
		}
		return model.TokenClaims{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	sc, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || sc.UserID == "" || sc.ID == "" {
		return model.TokenClaims{}, apperrors.ErrInvalidToken
	}

	revoked, err := s.revoked.IsTokenRevoked(ctx, sc.ID)
	if err != nil {
		return model.TokenClaims{}, err
	}
	if revoked {
		return model.TokenClaims{}, apperrors.ErrTokenRevoked
	}

	claims := model.TokenClaims{
		UserID:    sc.UserID,
		Email:     sc.Email,
		TokenID:   sc.ID,
		ExpiresAt: sc.ExpiresAt.Time.UTC(),
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// CurrentUser returns the active user a verified token belongs to.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if !user.IsActive {
		return model.User{}, apperrors.ErrUserInactive
	}
	return user, nil
}

// Logout revokes a session token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims model.TokenClaims) error {
	if err := s.revoked.RevokeToken(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// PurgeRevoked drops revocations of tokens that have expired anyway.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.revoked.PurgeExpired(ctx, s.now().UTC())
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// EnsureUser creates an active user with the given credentials unless one
// with that email already exists. The existing user is returned unchanged;
// created reports whether a new account was made.
func (s *AuthService) EnsureUser(ctx context.Context, email, password, name string) (user model.User, created bool, err error) {
	existing, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, false, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return model.User{}, false, err
	}

	user = model.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.InsertUser(ctx, &user); err != nil {
		return model.User{}, false, fmt.Errorf("failed to create user: %w", err)
	}

	return user, true, nil
}
