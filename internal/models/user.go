package models

import "time"

// User represents a user account in the system.
// PasswordHash is never serialized to JSON.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// RevokedToken represents a token invalidated before its natural expiry.
// Tokens are stored by their jti claim, never by the raw token string.
// Entries past ExpiresAt are dead weight: the codec rejects the token
// anyway, so the ledger only keeps them until the next pruning pass.
type RevokedToken struct {
	JTI       string    `json:"jti"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}
