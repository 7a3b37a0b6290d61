package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"boxmas/internal/domain/user"
	"boxmas/internal/shared/biztime"
	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/id"
)

// DefaultInsecureSecret signs tokens when no secret is configured. It is only
// acceptable outside production; config validation refuses it there.
const DefaultInsecureSecret = constants.InsecureJWTSecret

// DefaultTokenValidity is the lifetime of a token and of the session that holds it.
const DefaultTokenValidity = 7 * 24 * time.Hour

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and parses HS256 session tokens. The secret and clock are
// fixed at construction.
type TokenCodec struct {
	secret         []byte
	validity       time.Duration
	now            biztime.Clock
	insecureSecret bool
}

func NewTokenCodec(secret string, validity time.Duration) *TokenCodec {
	insecure := secret == ""
	if insecure {
		secret = DefaultInsecureSecret
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenCodec{
		secret:         []byte(secret),
		validity:       validity,
		now:            biztime.NowUTC,
		insecureSecret: insecure,
	}
}

// WithClock replaces the time source used for issuing and expiry checks
func (c *TokenCodec) WithClock(clock biztime.Clock) *TokenCodec {
	c.now = clock
	return c
}

// UsesInsecureSecret reports whether the codec fell back to DefaultInsecureSecret
func (c *TokenCodec) UsesInsecureSecret() bool {
	return c.insecureSecret
}

// Validity returns the lifetime given to issued tokens
func (c *TokenCodec) Validity() time.Duration {
	return c.validity
}

func (c *TokenCodec) Issue(userID uint, email string) (string, *user.TokenClaims, error) {
	// Second precision, matching what the token can carry
	now := c.now().UTC().Truncate(time.Second)
	exp := now.Add(c.validity)

	// jti keeps tokens unique when one user logs in twice within a second
	jti, err := id.Generate(id.TokenIDLength)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token ID: %w", err)
	}

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, &user.TokenClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// Parse verifies the signature and embedded expiry. Failures wrap
// user.ErrTokenExpired or user.ErrTokenMalformed.
func (c *TokenCodec) Parse(tokenString string) (*user.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", user.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", user.ErrTokenMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, user.ErrTokenMalformed
	}

	result := &user.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
