package utils

import (
	"strings"

	"github.com/gin-gonic/gin"

	"boxmas/internal/shared/constants"
)

// DeviceInfo returns the request's User-Agent, or "Unknown".
// The value is capped to the width of sessions.device_info.
func DeviceInfo(c *gin.Context) string {
	if ua := strings.TrimSpace(c.GetHeader(constants.HeaderUserAgent)); ua != "" {
		return TruncateRunes(ua, constants.MaxDeviceInfoLength)
	}
	return constants.UnknownClientValue
}

// OriginatingIP returns the first hop of X-Forwarded-For, then X-Real-IP,
// and "Unknown" when neither header is present.
func OriginatingIP(c *gin.Context) string {
	if forwarded := c.GetHeader(constants.HeaderXForwardedFor); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if first != "" {
			return TruncateRunes(first, constants.MaxIPAddressLength)
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader(constants.HeaderXRealIP)); realIP != "" {
		return TruncateRunes(realIP, constants.MaxIPAddressLength)
	}
	return constants.UnknownClientValue
}

// TruncateRunes cuts s to at most max characters without splitting a rune.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
