package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	ServerAddress     string
	StoreDriver       string
	PostgresConn      string
	RunMigrations     bool
	DBMaxOpenConns    int
	RequestTimeout    time.Duration
	AutoCloseInterval time.Duration // 0 - автозакрытие аукционов выключено
	ShutdownTimeout   time.Duration
	LogLevel          string
	LogFormat         string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		StoreDriver:   getEnv("STORE_DRIVER", StorePostgres),
		PostgresConn:  os.Getenv("POSTGRES_CONN"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.AutoCloseInterval, err = getEnvAsDuration("AUCTION_AUTOCLOSE_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.PostgresConn == "" {
			return errors.New("config: POSTGRES_CONN env variable is not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.DBMaxOpenConns <= 0 {
		return errors.New("config: DB_MAX_OPEN_CONNS must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: REQUEST_TIMEOUT must be positive")
	}
	if c.AutoCloseInterval < 0 {
		return errors.New("config: AUCTION_AUTOCLOSE_INTERVAL must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
