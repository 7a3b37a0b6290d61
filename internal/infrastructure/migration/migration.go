package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"boxmas/internal/shared/constants"
	"boxmas/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy for the driver and environment. Development
// databases follow the models directly; every other environment runs the
// versioned SQL scripts.
func NewManager(driver, environment string) *Manager {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case constants.EnvDevelopment, "debug":
		strategy = NewGormAutoMigrateStrategy()
	default:
		strategy = NewGooseStrategy(GooseDialect(driver))
	}

	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// GooseDialect maps a database driver name to its goose dialect
func GooseDialect(driver string) string {
	if driver == constants.DriverSQLite {
		return "sqlite3"
	}
	return "mysql"
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Down rolls back steps versions; only versioned strategies support it
func (m *Manager) Down(db *gorm.DB, steps int) error {
	versioned, err := m.versioned()
	if err != nil {
		return err
	}
	return versioned.MigrateDown(db, steps)
}

// Status prints the state of every known migration
func (m *Manager) Status(db *gorm.DB) error {
	versioned, err := m.versioned()
	if err != nil {
		return err
	}
	return versioned.Status(db)
}

// Version returns the latest applied migration version
func (m *Manager) Version(db *gorm.DB) (int64, error) {
	versioned, err := m.versioned()
	if err != nil {
		return 0, err
	}
	return versioned.GetVersion(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

func (m *Manager) versioned() (VersionedStrategy, error) {
	versioned, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return nil, fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return versioned, nil
}
