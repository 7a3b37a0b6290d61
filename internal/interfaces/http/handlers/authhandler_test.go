package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/domain/user"
	"boxmas/internal/interfaces/http/handlers/testutil"
	"boxmas/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockLoginUseCase struct {
	result  *usecases.LoginWithPasswordResult
	err     error
	lastCmd usecases.LoginWithPasswordCommand
}

func (m *mockLoginUseCase) Execute(ctx context.Context, cmd usecases.LoginWithPasswordCommand) (*usecases.LoginWithPasswordResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockLogoutUseCase struct {
	err       error
	lastToken string
}

func (m *mockLogoutUseCase) Execute(ctx context.Context, token string) error {
	m.lastToken = token
	return m.err
}

type mockLogoutAllUseCase struct {
	result    *usecases.LogoutAllResult
	err       error
	lastToken string
}

func (m *mockLogoutAllUseCase) Execute(ctx context.Context, token string) (*usecases.LogoutAllResult, error) {
	m.lastToken = token
	return m.result, m.err
}

func newTestUser(t *testing.T) *user.User {
	t.Helper()
	now := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)
	u, err := user.ReconstructUser(1, "usr_test123", "Alice", "alice@example.com", "$2a$12$hash", now, now)
	require.NoError(t, err)
	return u
}

func newAuthHandler(login *mockLoginUseCase, logout *mockLogoutUseCase, logoutAll *mockLogoutAllUseCase) *AuthHandler {
	return NewAuthHandler(login, logout, logoutAll, testutil.NewMockLogger())
}

// =====================================================================
// Login
// =====================================================================

func TestAuthHandler_Login_Success(t *testing.T) {
	login := &mockLoginUseCase{
		result: &usecases.LoginWithPasswordResult{
			User:  newTestUser(t),
			Token: "signed.jwt.token",
		},
	}
	handler := newAuthHandler(login, &mockLogoutUseCase{}, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Secret123",
	})
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, "signed.jwt.token", body["token"])

	u, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "usr_test123", u["id"])
	assert.Equal(t, "alice@example.com", u["email"])
	assert.NotContains(t, u, "password")
	assert.NotContains(t, u, "passwordHash")
	assert.NotContains(t, w.Body.String(), "$2a$12$hash")

	assert.Equal(t, "alice@example.com", login.lastCmd.Email)
	assert.Equal(t, "Secret123", login.lastCmd.Password)
	assert.Equal(t, "test-agent", login.lastCmd.DeviceInfo)
	assert.Equal(t, "203.0.113.7", login.lastCmd.IPAddress)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	login := &mockLoginUseCase{err: errors.NewInvalidCredentialsError()}
	handler := newAuthHandler(login, &mockLogoutUseCase{}, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, string(errors.ErrorTypeInvalidCredentials), resp.Error.Type)
}

func TestAuthHandler_Login_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"email":`},
		{name: "missing password", body: `{"email":"alice@example.com"}`},
		{name: "empty object", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			login := &mockLoginUseCase{}
			handler := newAuthHandler(login, &mockLogoutUseCase{}, &mockLogoutAllUseCase{})

			c, w := testutil.NewRawTestContext(http.MethodPost, "/auth/login", tt.body)
			handler.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, login.lastCmd.Email, "use case must not run")
		})
	}
}

func TestAuthHandler_Login_InternalErrorHidden(t *testing.T) {
	login := &mockLoginUseCase{err: stderrors.New("dial tcp: connection refused")}
	handler := newAuthHandler(login, &mockLogoutUseCase{}, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Secret123",
	})

	handler.Login(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

// =====================================================================
// Logout
// =====================================================================

func TestAuthHandler_Logout_Success(t *testing.T) {
	logout := &mockLogoutUseCase{}
	handler := newAuthHandler(&mockLoginUseCase{}, logout, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
	testutil.SetAuthContext(c, 1, "token-a")

	handler.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-a", logout.lastToken)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Logged out successfully", resp.Message)
}

func TestAuthHandler_Logout_AlreadyLoggedOut(t *testing.T) {
	logout := &mockLogoutUseCase{err: errors.NewNotFoundError("Session not found")}
	handler := newAuthHandler(&mockLoginUseCase{}, logout, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
	testutil.SetAuthContext(c, 1, "token-a")

	handler.Logout(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Logout_NoTokenInContext(t *testing.T) {
	logout := &mockLogoutUseCase{}
	handler := newAuthHandler(&mockLoginUseCase{}, logout, &mockLogoutAllUseCase{})

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)

	handler.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, logout.lastToken)
}

// =====================================================================
// LogoutAll
// =====================================================================

func TestAuthHandler_LogoutAll_Success(t *testing.T) {
	logoutAll := &mockLogoutAllUseCase{
		result: &usecases.LogoutAllResult{UserID: 1, RevokedCount: 3},
	}
	handler := newAuthHandler(&mockLoginUseCase{}, &mockLogoutUseCase{}, logoutAll)

	c, w := testutil.NewTestContext(http.MethodDelete, "/auth/logout", nil)
	testutil.SetAuthContext(c, 1, "token-b")

	handler.LogoutAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-b", logoutAll.lastToken)

	var body map[string]any
	require.NoError(t, testutil.ParseResponse(w, &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["revokedCount"])
}

func TestAuthHandler_LogoutAll_UnknownToken(t *testing.T) {
	logoutAll := &mockLogoutAllUseCase{err: errors.NewTokenInvalidError()}
	handler := newAuthHandler(&mockLoginUseCase{}, &mockLogoutUseCase{}, logoutAll)

	c, w := testutil.NewTestContext(http.MethodDelete, "/auth/logout", nil)
	testutil.SetAuthContext(c, 1, "token-b")

	handler.LogoutAll(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
