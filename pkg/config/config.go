package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrMissingSecret is returned when no signing secret is configured.
var ErrMissingSecret = errors.New("JWT_SECRET (or SECRET_KEY) must be set")

type Config struct {
	Port            string
	DBDriver        string
	MongoURI        string
	DatabaseName    string
	PostgresDSN     string
	DBTimeout       time.Duration
	JWTSecret       string
	JWTAccessExpiry time.Duration
	BcryptCost      int
	LogLevel        string
	LogFormat       string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry, err := getDuration("JWT_ACCESS_EXPIRY", 3000*time.Minute)
	if err != nil {
		return nil, err
	}

	dbTimeout, err := getDuration("DB_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
	}

	cfg := &Config{
		Port:            getEnv("PORT", "5001"),
		DBDriver:        getEnv("DB_DRIVER", DriverMongo),
		MongoURI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName:    getEnv("DATABASE_NAME", "ExploreHub-DB"),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		DBTimeout:       dbTimeout,
		JWTSecret:       getEnv("JWT_SECRET", os.Getenv("SECRET_KEY")),
		JWTAccessExpiry: accessExpiry,
		BcryptCost:      cost,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.JWTAccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %s", c.JWTAccessExpiry)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be set for the mongo driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN must be set for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}
