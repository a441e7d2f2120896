package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-project-api/internal/config"
	"github.com/yukikurage/task-project-api/internal/logger"
	"github.com/yukikurage/task-project-api/internal/models"
)

func TestDialector_UnsupportedDriver(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestDialector_Drivers(t *testing.T) {
	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres, config.DriverSQLite} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, SQLitePath: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	log := logger.NewNop()
	db, err := Connect(
		config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		config.AppConfig{Environment: "production"},
		log,
	)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db, log))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Project{}))
	assert.True(t, migrator.HasTable(&models.Task{}))
	for _, idx := range compositeIndexes {
		assert.True(t, migrator.HasIndex(idx.table, idx.name), idx.name)
	}

	// running again is a no-op
	require.NoError(t, Migrate(db, log))
}
