// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"boxmas/internal/infrastructure/config"
	"boxmas/internal/infrastructure/database"
	"boxmas/internal/shared/logger"
)

// Env holds what every command needs after start-up.
type Env struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
}

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// LoadConfig loads and validates configuration, then initializes the logger.
func LoadConfig(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.GinMode()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Open loads configuration and connects to the database.
func Open(env, configPath string) (*Env, error) {
	cfg, log, err := LoadConfig(env, configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{Config: cfg, Log: log, DB: db}, nil
}

// Close releases the database connection.
func (e *Env) Close() {
	if err := database.Close(e.DB); err != nil {
		e.Log.Errorw("failed to close database", "error", err)
	}
}
