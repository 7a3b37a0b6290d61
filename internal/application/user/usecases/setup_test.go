package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/auth"
	"boxmas/internal/infrastructure/database/dbtest"
	"boxmas/internal/infrastructure/persistence/models"
	"boxmas/internal/infrastructure/repository"
	"boxmas/internal/shared/logger"
)

// testEnv wires every use case against an in-memory database and one movable clock.
type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	sessions *repository.SessionRepository
	hasher   *auth.BcryptPasswordHasher
	codec    *auth.TokenCodec
	now      time.Time

	login     *LoginWithPasswordUseCase
	logout    *LogoutUseCase
	logoutAll *LogoutAllUseCase
	authorize *AuthorizeRequestUseCase
	register  *RegisterUserUseCase
	list      *ListUsersUseCase
	purge     *PurgeExpiredSessionsUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:  dbtest.New(t),
		now: time.Date(2024, 4, 10, 8, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }
	log := logger.NewNopLogger()

	env.users = repository.NewUserRepository(env.db, log)
	env.sessions = repository.NewSessionRepository(env.db)
	env.hasher = auth.NewBcryptPasswordHasher(4)
	env.codec = auth.NewTokenCodec("usecase-test-secret", auth.DefaultTokenValidity).WithClock(clock)

	env.login = NewLoginWithPasswordUseCase(env.users, env.sessions, env.hasher, env.codec, log).WithClock(clock)
	env.logout = NewLogoutUseCase(env.sessions, log)
	env.logoutAll = NewLogoutAllUseCase(env.sessions, log)
	env.authorize = NewAuthorizeRequestUseCase(env.codec, env.sessions, log).WithClock(clock)
	env.register = NewRegisterUserUseCase(env.users, env.hasher, log).WithClock(clock)
	env.list = NewListUsersUseCase(env.users, log)
	env.purge = NewPurgeExpiredSessionsUseCase(env.sessions, log).WithClock(clock)
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

func (e *testEnv) registerUser(t *testing.T, email, password string) *user.User {
	t.Helper()
	u, err := e.register.Execute(context.Background(), RegisterUserCommand{
		Name:     "Test User",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return u
}

// insertLegacyUser writes a row whose credential is the plaintext password itself.
func (e *testEnv) insertLegacyUser(t *testing.T, email, password string) uint {
	t.Helper()
	model := &models.UserModel{
		SID:          "usr_legacy" + email,
		Name:         "Legacy",
		Email:        email,
		PasswordHash: password,
		CreatedAt:    e.now,
		UpdatedAt:    e.now,
	}
	require.NoError(t, e.db.Create(model).Error)
	return model.ID
}

func (e *testEnv) loginOK(t *testing.T, email, password string) *LoginWithPasswordResult {
	t.Helper()
	result, err := e.login.Execute(context.Background(), LoginWithPasswordCommand{
		Email:      email,
		Password:   password,
		DeviceInfo: "test-agent",
		IPAddress:  "203.0.113.7",
	})
	require.NoError(t, err)
	return result
}

func (e *testEnv) storedHash(t *testing.T, userID uint) string {
	t.Helper()
	var model models.UserModel
	require.NoError(t, e.db.First(&model, userID).Error)
	return model.PasswordHash
}

func bearer(token string) string {
	return "Bearer " + token
}
