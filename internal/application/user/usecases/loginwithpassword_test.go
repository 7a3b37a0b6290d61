package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxmas/internal/infrastructure/persistence/models"
	"boxmas/internal/shared/errors"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	registered := env.registerUser(t, "a@x.com", "secret123")

	result := env.loginOK(t, "  a@x.com ", "secret123")

	assert.Equal(t, registered.ID(), result.User.ID())
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "test-agent", result.Session.DeviceInfo)
	assert.Equal(t, "203.0.113.7", result.Session.IPAddress)
	assert.Equal(t, env.now, result.Session.LastUsedAt)
	assert.Equal(t, env.now.Add(env.codec.Validity()), result.Session.ExpiresAt)

	stored, err := env.sessions.GetByToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, stored.ID)
}

func TestLogin_NoEnumeration(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "a@x.com", "secret123")
	ctx := context.Background()

	_, unknownErr := env.login.Execute(ctx, LoginWithPasswordCommand{Email: "nobody@x.com", Password: "secret123"})
	_, wrongErr := env.login.Execute(ctx, LoginWithPasswordCommand{Email: "a@x.com", Password: "wrong-pass1"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	unknown := errors.GetAppError(unknownErr)
	wrong := errors.GetAppError(wrongErr)
	require.NotNil(t, unknown)
	require.NotNil(t, wrong)
	assert.Equal(t, *unknown, *wrong)
	assert.Equal(t, errors.ErrorTypeInvalidCredentials, unknown.Type)
	assert.Equal(t, 400, unknown.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.SessionModel{}).Count(&count).Error)
	assert.Zero(t, count, "failed logins create no sessions")
}

func TestLogin_EmailIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "a@x.com", "secret123")

	_, err := env.login.Execute(context.Background(), LoginWithPasswordCommand{Email: "A@x.com", Password: "secret123"})
	assert.True(t, errors.IsAuthError(err))
}

func TestLogin_PlaintextMigration(t *testing.T) {
	env := newTestEnv(t)
	userID := env.insertLegacyUser(t, "legacy@x.com", "secret123")

	first := env.loginOK(t, "legacy@x.com", "secret123")
	hash := env.storedHash(t, userID)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "credential is hashed after first login")
	assert.NotEqual(t, "secret123", hash)
	assert.Equal(t, hash, first.User.PasswordHash())

	env.loginOK(t, "legacy@x.com", "secret123")
	assert.Equal(t, hash, env.storedHash(t, userID), "second login must not re-migrate")
}

func TestLogin_PlaintextMismatchDoesNotMigrate(t *testing.T) {
	env := newTestEnv(t)
	userID := env.insertLegacyUser(t, "legacy@x.com", "secret123")

	_, err := env.login.Execute(context.Background(), LoginWithPasswordCommand{Email: "legacy@x.com", Password: "secret1234"})
	require.Error(t, err)
	assert.Equal(t, "secret123", env.storedHash(t, userID))
}

func TestLogin_ConcurrentSessionsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "a@x.com", "secret123")

	first := env.loginOK(t, "a@x.com", "secret123")
	second := env.loginOK(t, "a@x.com", "secret123")

	assert.NotEqual(t, first.Token, second.Token)
	assert.NotEqual(t, first.Session.ID, second.Session.ID)
}
