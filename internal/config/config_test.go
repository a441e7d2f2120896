package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Minute, cfg.Security.AuthRateTTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("AUTH_RATE_LIMIT", "0.5")
	t.Setenv("AUTH_RATE_TTL", "30s")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/tasks.db", cfg.Database.DSN())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpiresIn)
	assert.Equal(t, 0.5, cfg.Security.AuthRateLimit)
	assert.Equal(t, 30*time.Second, cfg.Security.AuthRateTTL)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsBcryptCostOutOfRange(t *testing.T) {
	for _, cost := range []string{"2", "40"} {
		t.Run(cost, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", cost)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bcrypt cost")
		})
	}
}

func TestLoad_RejectsNonPositiveRateTTL(t *testing.T) {
	t.Setenv("AUTH_RATE_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	mysql := DatabaseConfig{Driver: DriverMySQL, Host: "db", Port: 3306, User: "u", Password: "p", Name: "tasks"}
	assert.Equal(t, "u:p@tcp(db:3306)/tasks?charset=utf8mb4&parseTime=True&loc=Local", mysql.DSN())

	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", Name: "tasks", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=tasks sslmode=disable", pg.DSN())
}
