package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(headers map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c, w
}

func TestOriginatingIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"real ip fallback", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, "203.0.113.7"},
		{"unknown", nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.headers)
			assert.Equal(t, tt.want, OriginatingIP(c))
		})
	}
}

func TestDeviceInfo(t *testing.T) {
	c, _ := newContext(map[string]string{"User-Agent": "Mozilla/5.0 (X11)"})
	assert.Equal(t, "Mozilla/5.0 (X11)", DeviceInfo(c))

	c, _ = newContext(nil)
	c.Request.Header.Del("User-Agent")
	assert.Equal(t, "Unknown", DeviceInfo(c))
}

func TestClientInfo_CappedToColumnWidth(t *testing.T) {
	t.Run("oversized user agent", func(t *testing.T) {
		c, _ := newContext(map[string]string{"User-Agent": strings.Repeat("a", 4096)})
		got := DeviceInfo(c)
		assert.Len(t, got, constants.MaxDeviceInfoLength)
	})

	t.Run("multibyte user agent keeps whole runes", func(t *testing.T) {
		c, _ := newContext(map[string]string{"User-Agent": strings.Repeat("é", 600)})
		got := DeviceInfo(c)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, constants.MaxDeviceInfoLength, utf8.RuneCountInString(got))
	})

	t.Run("oversized forwarded hop", func(t *testing.T) {
		c, _ := newContext(map[string]string{"X-Forwarded-For": strings.Repeat("1", 300) + ", 10.0.0.1"})
		assert.Len(t, OriginatingIP(c), constants.MaxIPAddressLength)
	})

	t.Run("oversized real ip", func(t *testing.T) {
		c, _ := newContext(map[string]string{"X-Real-IP": strings.Repeat("f", 100)})
		assert.Len(t, OriginatingIP(c), constants.MaxIPAddressLength)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", TruncateRunes("héllo", 4))
	assert.Equal(t, "héllo", TruncateRunes("héllo", 5))
	assert.Equal(t, "héllo", TruncateRunes("héllo", 50))
	assert.Equal(t, "", TruncateRunes("héllo", 0))
}

func TestErrorResponseWithError_HidesInternalDetails(t *testing.T) {
	c, w := newContext(nil)

	ErrorResponseWithError(c, fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "internal_error", resp.Error.Type)
}

func TestErrorResponseWithError_AppError(t *testing.T) {
	c, w := newContext(nil)

	ErrorResponseWithError(c, errors.NewTokenRevokedError())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"revoked_token"`)
}

func TestTranslateValidationError_UsesJSONNames(t *testing.T) {
	type req struct {
		Secret string `json:"pass_word" binding:"required,min=8"`
	}

	c, _ := newContext(nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(`{"pass_word":"short"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var r req
	err := TranslateValidationError(c.ShouldBindJSON(&r))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "pass_word must be at least 8 characters long")
}

func TestTranslateValidationError_MalformedBody(t *testing.T) {
	c, _ := newContext(nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/user", strings.NewReader(`{"pass_word":`))
	c.Request.Header.Set("Content-Type", "application/json")

	var r struct {
		Secret string `json:"pass_word" binding:"required"`
	}
	err := TranslateValidationError(c.ShouldBindJSON(&r))
	require.Error(t, err)
	assert.Equal(t, string(errors.ErrorTypeBadRequest), string(errors.GetAppError(err).Type))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "a***@x.com", MaskEmail("alice@x.com"))
	assert.Equal(t, "***", MaskEmail("broken"))
	assert.Equal(t, "***", MaskSecret("short"))
	assert.Equal(t, "***cdef", MaskSecret("0123456789abcdef"))
	assert.Equal(t, "", MaskSecret(""))
}
