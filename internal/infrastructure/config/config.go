package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"boxmas/internal/shared/constants"
	sharedConfig "boxmas/internal/shared/config"
)

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Session   sharedConfig.SessionConfig   `mapstructure:"session" yaml:"session"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis" yaml:"redis"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit" yaml:"ratelimit"`
}

// ErrInsecureSecret is returned by Validate when production runs without a
// signing secret of its own.
var ErrInsecureSecret = errors.New("auth.jwt.secret must be set in production")

// NormalizeMode maps the accepted spellings of a server mode onto
// development, test or production. Unknown values fall back to development.
func NormalizeMode(mode string) string {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case constants.EnvProduction, "prod", "release":
		return constants.EnvProduction
	case constants.EnvTest, "testing":
		return constants.EnvTest
	default:
		return constants.EnvDevelopment
	}
}

// Load loads configuration from an optional file and environment variables.
// An explicit configPath must exist; otherwise configs/config.yaml is used when present.
// A .env file in the working directory is applied to the environment first.
func Load(env, configPath string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	// Set environment variable prefix and replacer
	v.SetEnvPrefix("BOXMAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("auth.jwt.secret", "BOXMAS_AUTH_JWT_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind jwt secret env: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Server.Mode = NormalizeMode(config.Server.Mode)

	return &config, nil
}

// Validate rejects configurations that must never reach a running server.
func (c *Config) Validate() error {
	if c.IsProduction() {
		secret := strings.TrimSpace(c.Auth.JWT.Secret)
		if secret == "" || secret == constants.InsecureJWTSecret {
			return ErrInsecureSecret
		}
	}
	if c.Auth.JWT.ValidityDays <= 0 {
		return fmt.Errorf("auth.jwt.validity_days must be positive, got %d", c.Auth.JWT.ValidityDays)
	}
	switch c.Database.Driver {
	case constants.DriverMySQL, constants.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return NormalizeMode(c.Server.Mode) == constants.EnvProduction
}

// GinMode maps the server mode to a gin mode.
func (c *Config) GinMode() string {
	switch NormalizeMode(c.Server.Mode) {
	case constants.EnvProduction:
		return "release"
	case constants.EnvTest:
		return "test"
	default:
		return "debug"
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", constants.EnvDevelopment)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.trusted_proxies", []string{"127.0.0.1", "::1"})

	// Database defaults
	v.SetDefault("database.driver", constants.DriverSQLite)
	v.SetDefault("database.path", "boxmas.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "boxmas")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", "")
	v.SetDefault("auth.jwt.validity_days", 7)

	// Session defaults
	v.SetDefault("session.cleanup_interval_minutes", 60)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window_seconds", 60)
}
