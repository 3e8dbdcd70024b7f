package model

import "time"

// User is an account that can sign in and own jobs.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// TokenClaims are the verified contents of a session token.
type TokenClaims struct {
	UserID    string
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
