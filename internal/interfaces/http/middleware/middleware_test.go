package middleware

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxmas/internal/application/user/usecases"
	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthorizer struct {
	identity   *usecases.Identity
	err        error
	lastHeader string
}

func (s *stubAuthorizer) Execute(ctx context.Context, header string) (*usecases.Identity, error) {
	s.lastHeader = header
	return s.identity, s.err
}

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint(constants.ContextKeyUserID),
			"token":   c.GetString(constants.ContextKeyToken),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func TestRequireAuth_Admits(t *testing.T) {
	authorizer := &stubAuthorizer{identity: &usecases.Identity{
		UserID:    42,
		Email:     "alice@example.com",
		SessionID: "ses_1",
		Token:     "tok",
	}}
	r := newEngine(NewAuthMiddleware(authorizer, logger.NewNopLogger()).RequireAuth())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer tok", authorizer.lastHeader)
	assert.JSONEq(t, `{"user_id":42,"token":"tok"}`, w.Body.String())
}

func TestRequireAuth_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "no token", err: errors.NewNoTokenError(), wantStatus: http.StatusUnauthorized, wantType: "no_token"},
		{name: "invalid", err: errors.NewTokenInvalidError(), wantStatus: http.StatusUnauthorized, wantType: "invalid_token"},
		{name: "expired", err: errors.NewTokenExpiredError(), wantStatus: http.StatusUnauthorized, wantType: "expired_token"},
		{name: "revoked", err: errors.NewTokenRevokedError(), wantStatus: http.StatusUnauthorized, wantType: "revoked_token"},
		{name: "store failure", err: stderrors.New("db down"), wantStatus: http.StatusInternalServerError, wantType: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(NewAuthMiddleware(&stubAuthorizer{err: tt.err}, logger.NewNopLogger()).RequireAuth())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"type":"`+tt.wantType+`"`)
			assert.NotContains(t, w.Body.String(), "user_id")
		})
	}
}

func TestRequireAuth_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "store failure", err: stderrors.New("db down"), wantLevel: "ERROR"},
		{name: "tampered token", err: errors.NewTokenInvalidError(), wantLevel: "WARN"},
		{name: "revoked token replay", err: errors.NewTokenRevokedError(), wantLevel: "INFO"},
		{name: "missing token", err: errors.NewNoTokenError()},
		{name: "expired session", err: errors.NewTokenExpiredError()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewLoggerWithSlog(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
			r := newEngine(NewAuthMiddleware(&stubAuthorizer{err: tt.err}, log).RequireAuth())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("allows under limit", func(t *testing.T) {
		limiter := &stubLimiter{allowed: true}
		r := newEngine(RateLimit(limiter, logger.NewNopLogger()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, limiter.keys, 1)
		assert.NotEmpty(t, limiter.keys[0])
	})

	t.Run("rejects over limit", func(t *testing.T) {
		r := newEngine(RateLimit(&stubLimiter{allowed: false}, logger.NewNopLogger()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "rate_limited")
	})

	t.Run("fails open when limiter errors", func(t *testing.T) {
		r := newEngine(RateLimit(&stubLimiter{err: stderrors.New("redis: connection refused")}, logger.NewNopLogger()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	t.Run("generates when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})

	t.Run("propagates caller value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("replaces oversized value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin not echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRecovery_MasksAuthorization(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-token")

	headers := maskedHeaders(req)
	assert.Contains(t, headers, "Authorization: *")
	for _, h := range headers {
		assert.NotContains(t, h, "secret-token")
	}
}
