package errors

import (
	stderrors "errors"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeNoToken            ErrorType = "no_token"
	ErrorTypeTokenInvalid       ErrorType = "invalid_token"
	ErrorTypeTokenExpired       ErrorType = "expired_token"
	ErrorTypeTokenRevoked       ErrorType = "revoked_token"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged
	// Some auth errors (like invalid credentials) may be expected and don't need error-level logging
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// Unknown email and wrong password share this exact shape.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusBadRequest,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewNoTokenError is returned when a protected route is called without a bearer token.
func NewNoTokenError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeNoToken,
			Message: "Authorization token is required",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenInvalidError creates an error for tokens that fail decoding or signature checks.
func NewTokenInvalidError(details ...string) *AuthError {
	detail := "Token is invalid"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: "Invalid token",
			Code:    http.StatusUnauthorized,
			Details: detail,
		},
		ShouldLog:     true, // May indicate tampering
		SecurityEvent: true,
	}
}

// NewTokenExpiredError creates an error for sessions past their expiry.
func NewTokenExpiredError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: "Session has expired",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenRevokedError creates an error for tokens with no live session row.
func NewTokenRevokedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenRevoked,
			Message: "Token has been revoked",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// IsUnauthenticated reports whether err is one of the 401 rejection kinds.
func IsUnauthenticated(err error) bool {
	authErr := GetAuthError(err)
	if authErr == nil {
		return false
	}
	switch authErr.Type {
	case ErrorTypeNoToken, ErrorTypeTokenInvalid, ErrorTypeTokenExpired, ErrorTypeTokenRevoked:
		return true
	}
	return false
}

// ShouldLogAuthError returns true if the authentication error should be logged
// This helps reduce noise in logs from expected auth failures
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true // Default to logging if not an AuthError
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
