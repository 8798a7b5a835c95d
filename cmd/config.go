package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort int
	LogLevel string

	Storage       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBAutoMigrate bool

	JWTSecret string

	KafkaBrokers string
	KafkaTopic   string

	ReconcileSchedule string
}

// LoadConfig reads the environment, after an optional .env file.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.HTTPPort = cast.ToInt(getOrReturnDefault("HTTP_PORT", 8080))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))

	cfg.Storage = strings.ToLower(cast.ToString(getOrReturnDefault("STORAGE", StoragePostgres)))
	cfg.DBHost = cast.ToString(getOrReturnDefault("DB_HOST", "localhost"))
	cfg.DBPort = cast.ToString(getOrReturnDefault("DB_PORT", "5432"))
	cfg.DBUser = cast.ToString(getOrReturnDefault("DB_USER", "postgres"))
	cfg.DBPassword = cast.ToString(getOrReturnDefault("DB_PASSWORD", ""))
	cfg.DBName = cast.ToString(getOrReturnDefault("DB_NAME", "ricetrade"))
	cfg.DBSslMode = cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable"))
	cfg.DBAutoMigrate = cast.ToBool(getOrReturnDefault("DB_AUTO_MIGRATE", true))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))

	cfg.KafkaBrokers = cast.ToString(getOrReturnDefault("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = cast.ToString(getOrReturnDefault("KAFKA_ORDER_EVENTS_TOPIC", "order-events"))

	cfg.ReconcileSchedule = cast.ToString(getOrReturnDefault("RECONCILE_SCHEDULE", "0 */5 * * * *"))

	return cfg
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT %d is out of range", c.HTTPPort)
	}
	return nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel maps LOG_LEVEL, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getOrReturnDefault(key string, defaultValue any) any {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
