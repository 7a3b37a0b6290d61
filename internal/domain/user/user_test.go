package user

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "boxmas/internal/domain/user/valueobjects"
)

// prefixHasher marks hashes with a "hashed:" prefix.
type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (prefixHasher) IsHash(stored string) bool { return strings.HasPrefix(stored, "hashed:") }

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewUser(t *testing.T) {
	name, _ := vo.NewName("Alice")
	email, _ := vo.NewEmail(" a@x.com ")

	u, err := NewUser(name, email, "hashed:secret123", testNow)
	require.NoError(t, err)

	assert.Zero(t, u.ID())
	assert.True(t, strings.HasPrefix(u.SID(), "usr_"))
	assert.Equal(t, "a@x.com", u.Email())
	assert.Equal(t, testNow, u.CreatedAt())

	require.NoError(t, u.SetID(7))
	assert.Equal(t, uint(7), u.ID())
	assert.Error(t, u.SetID(8))
}

func TestNewUser_RequiresHash(t *testing.T) {
	name, _ := vo.NewName("Alice")
	email, _ := vo.NewEmail("a@x.com")

	_, err := NewUser(name, email, "", testNow)
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name        string
		stored      string
		password    string
		wantUpgrade bool
		wantErr     error
	}{
		{"hashed match", "hashed:secret123", "secret123", false, nil},
		{"hashed mismatch", "hashed:secret123", "wrong", false, ErrPasswordMismatch},
		{"plaintext match", "secret123", "secret123", true, nil},
		{"plaintext mismatch", "secret123", "secret124", false, ErrPasswordMismatch},
		{"empty credential", "", "", false, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := ReconstructUser(1, "usr_x", "Alice", "a@x.com", tt.stored, testNow, testNow)
			require.NoError(t, err)

			upgrade, err := u.VerifyPassword(tt.password, prefixHasher{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantUpgrade, upgrade)
			assert.Equal(t, tt.stored, u.PasswordHash(), "verification must not modify the credential")
		})
	}
}

func TestChangePasswordHash(t *testing.T) {
	u, _ := ReconstructUser(1, "usr_x", "Alice", "a@x.com", "secret123", testNow, testNow)
	later := testNow.Add(time.Hour)

	require.NoError(t, u.ChangePasswordHash("hashed:secret123", later))
	assert.Equal(t, "hashed:secret123", u.PasswordHash())
	assert.Equal(t, later, u.UpdatedAt())

	upgrade, err := u.VerifyPassword("secret123", prefixHasher{})
	require.NoError(t, err)
	assert.False(t, upgrade)
}

func TestNewSession(t *testing.T) {
	expires := testNow.Add(7 * 24 * time.Hour)

	s, err := NewSession(1, "tok", "curl/8", "203.0.113.7", testNow, expires)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.ID, "ses_"))
	assert.Equal(t, testNow, s.LastUsedAt)
	assert.Equal(t, expires, s.ExpiresAt)

	assert.False(t, s.IsExpiredAt(expires.Add(-time.Second)))
	assert.True(t, s.IsExpiredAt(expires))

	_, err = NewSession(0, "tok", "", "", testNow, expires)
	assert.Error(t, err)
	_, err = NewSession(1, "", "", "", testNow, expires)
	assert.Error(t, err)
	_, err = NewSession(1, "tok", "", "", testNow, testNow)
	assert.Error(t, err)
}
