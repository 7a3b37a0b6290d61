// Package dbtest opens throwaway in-memory SQLite databases with the full schema.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boxmas/internal/infrastructure/database"
	"boxmas/internal/infrastructure/persistence/models"
	"boxmas/internal/shared/config"
	"boxmas/internal/shared/constants"
)

// New returns a migrated in-memory database that is closed when the test ends.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver: constants.DriverSQLite,
		Path:   ":memory:",
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
