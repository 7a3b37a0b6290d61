package user

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	vo "boxmas/internal/domain/user/valueobjects"
	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/id"
)

// ErrPasswordMismatch is returned when a supplied password does not match the stored credential.
var ErrPasswordMismatch = errors.New("password does not match")

// User is a credential-store record. The password hash is never exposed outside the domain
// except to persistence.
type User struct {
	id           uint
	sid          string
	name         string
	email        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a user that has not been persisted yet
func NewUser(name *vo.Name, email *vo.Email, passwordHash string, now time.Time) (*User, error) {
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	sid, err := id.GenerateWithPrefix(constants.PrefixUser, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	return &User{
		sid:          sid,
		name:         name.String(),
		email:        email.String(),
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence. Stored values are trusted as-is;
// legacy rows may hold a plaintext credential in passwordHash.
func ReconstructUser(id uint, sid, name, email, passwordHash string, createdAt, updatedAt time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:           id,
		sid:          sid,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SID() string {
	return u.sid
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID sets the internal ID assigned by the store on create
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// VerifyPassword checks password against the stored credential. It never writes:
// needsUpgrade reports that the stored credential is legacy plaintext which matched,
// and the caller is expected to hash and persist it through ChangePasswordHash and
// Repository.UpdatePasswordHash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) (needsUpgrade bool, err error) {
	if u.passwordHash == "" {
		return false, ErrPasswordMismatch
	}

	if hasher.IsHash(u.passwordHash) {
		if err := hasher.Verify(password, u.passwordHash); err != nil {
			return false, ErrPasswordMismatch
		}
		return false, nil
	}

	if subtle.ConstantTimeCompare([]byte(u.passwordHash), []byte(password)) != 1 {
		return false, ErrPasswordMismatch
	}
	return true, nil
}

// ChangePasswordHash replaces the stored credential
func (u *User) ChangePasswordHash(hash string, at time.Time) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = at
	return nil
}
