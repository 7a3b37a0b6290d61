package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderUserAgent     = "User-Agent"

	// BearerPrefix is the only accepted Authorization scheme.
	BearerPrefix = "Bearer "

	// UnknownClientValue is recorded when the device or address cannot be determined.
	UnknownClientValue = "Unknown"

	// Column widths of sessions.device_info and sessions.ip_address, in characters.
	MaxDeviceInfoLength = 512
	MaxIPAddressLength  = 64

	// InsecureJWTSecret signs tokens when no secret is configured. Refused in production.
	InsecureJWTSecret = "boxmas-insecure-development-secret"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyEmail     = "email"
	ContextKeySessionID = "session_id"
	ContextKeyToken     = "auth_token"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers    = "users"
	TableSessions = "sessions"

	// ID prefixes (Stripe-style)
	PrefixUser    = "usr"
	PrefixSession = "ses"

	// Database drivers
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)
