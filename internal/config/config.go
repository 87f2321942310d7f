package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dress_rental_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	PricingPerDay = "per_day"
	PricingFixed  = "fixed"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port               string
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string

	DBDriver string
	Postgres PostgresConfig
	Mongo    MongoConfig

	JWTSecret string
	JWTTTL    time.Duration

	PricingMode string

	LoginRatePerMinute int

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// DSN builds a lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode)
}

// MongoConfig contains MongoDB connection settings
type MongoConfig struct {
	URI          string
	Database     string
	Transactions bool
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		utils.LogDebug("No .env file loaded", map[string]interface{}{"reason": err.Error()})
	}

	cfg := &Config{
		Port:               utils.Getenv("PORT", "8080"),
		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
		LogLevel:           utils.Getenv("LOG_LEVEL", "info"),
		LogFormat:          utils.Getenv("LOG_FORMAT", "console"),
		DBDriver:           strings.ToLower(utils.Getenv("DB_DRIVER", DriverPostgres)),
		Postgres: PostgresConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "rental_user"),
			Password:   utils.Getenv("DB_PASSWORD", "rental_password"),
			Name:       utils.Getenv("DB_NAME", "dress_rental_db"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		Mongo: MongoConfig{
			URI:          utils.Getenv("MONGO_URI", "mongodb://localhost:27017"),
			Database:     utils.Getenv("MONGO_DB", "dress_rental"),
			Transactions: utils.GetenvBool("MONGO_TRANSACTIONS", false),
		},
		JWTSecret:          utils.Getenv("JWT_SECRET", ""),
		JWTTTL:             utils.GetenvDuration("JWT_TTL", utils.DefaultAccessTokenTTL),
		PricingMode:        strings.ToLower(utils.Getenv("RENTAL_PRICING_MODE", PricingPerDay)),
		LoginRatePerMinute: utils.GetenvInt("LOGIN_RATE_PER_MINUTE", 20),
		AdminUsername:      utils.Getenv("ADMIN_USERNAME", ""),
		AdminEmail:         utils.Getenv("ADMIN_EMAIL", ""),
		AdminPassword:      utils.Getenv("ADMIN_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks required values and enumerations.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	switch c.DBDriver {
	case DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, c.DBDriver)
	}
	switch c.PricingMode {
	case PricingPerDay, PricingFixed:
	default:
		return fmt.Errorf("RENTAL_PRICING_MODE must be %q or %q, got %q", PricingPerDay, PricingFixed, c.PricingMode)
	}
	if c.LoginRatePerMinute <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}
