package user

import (
	"errors"
	"time"
)

var (
	// ErrTokenMalformed covers undecodable tokens, bad signatures and unexpected algorithms.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired is returned when the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenClaims is the payload carried by a session token
type TokenClaims struct {
	UserID    uint
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec issues and parses signed, time-limited session tokens
type TokenCodec interface {
	Issue(userID uint, email string) (string, *TokenClaims, error)
	Parse(token string) (*TokenClaims, error)
}

// PasswordHasher produces and checks one-way password hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
	// IsHash reports whether stored is a hash produced by this hasher, as opposed to a legacy plaintext credential.
	IsHash(stored string) bool
}
