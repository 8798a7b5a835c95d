package cmd

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfig()

		assert.Equal(t, 8080, cfg.HTTPPort)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.True(t, cfg.DBAutoMigrate)
		assert.Equal(t, "0 */5 * * * *", cfg.ReconcileSchedule)
		assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	})

	t.Run("environment_overrides", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("STORAGE", "Memory")
		t.Setenv("DB_AUTO_MIGRATE", "false")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

		cfg := LoadConfig()

		assert.Equal(t, 9090, cfg.HTTPPort)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.False(t, cfg.DBAutoMigrate)
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
		assert.Equal(t, "a:9092,b:9092", cfg.KafkaBrokers)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{HTTPPort: 8080, Storage: StorageMemory, JWTSecret: "s"}
	require.NoError(t, valid.Validate())

	missingSecret := valid
	missingSecret.JWTSecret = ""
	require.Error(t, missingSecret.Validate())

	badStorage := valid
	badStorage.Storage = "mongo"
	require.Error(t, badStorage.Validate())

	badPort := valid
	badPort.HTTPPort = 0
	require.Error(t, badPort.Validate())
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "rice", DBSslMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=rice sslmode=disable", cfg.DSN())
}
