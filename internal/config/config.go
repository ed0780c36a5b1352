package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DatabaseDriver   string
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	SQLitePath       string
	AutoMigrate      bool

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	GoogleClientID  string

	CookieDomain string
	CookieSecure bool
	CORSOrigins  []string

	LogLevel     string
	LogFormat    string
	ServiceName  string
	OTLPEndpoint string
}

// LoadConfig reads the environment and validates everything the API server
// needs.
func LoadConfig() (*Config, error) {
	config := Load()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Load reads the environment without validating it. Commands that only touch
// the store check it with ValidateStore.
func Load() *Config {
	return &Config{
		HTTPAddr:        getEnvString("HTTP_ADDR", "0.0.0.0:8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		DatabaseDriver:   getEnvString("DB_DRIVER", "postgres"),
		DatabaseURL:      getEnvString("DATABASE_URL", ""),
		PostgresHost:     getEnvString("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvString("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnvString("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvString("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnvString("POSTGRES_DB", "jobboard"),
		SQLitePath:       getEnvString("SQLITE_PATH", "jobboard.sqlite"),
		AutoMigrate:      getEnvBool("AUTO_MIGRATE", false),

		JWTSecret:       getEnvString("JWT_SECRET", ""),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),
		GoogleClientID:  getEnvString("GOOGLE_CLIENT_ID", ""),

		CookieDomain: getEnvString("COOKIE_DOMAIN", ""),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:  getEnvSlice("CORS_ORIGINS", []string{"http://localhost:5173"}),

		LogLevel:     getEnvString("LOG_LEVEL", "info"),
		LogFormat:    getEnvString("LOG_FORMAT", "json"),
		ServiceName:  getEnvString("SERVICE_NAME", "jobboard"),
		OTLPEndpoint: getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if err := c.ValidateStore(); err != nil {
		return err
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	return nil
}

func (c *Config) ValidateStore() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
		return nil
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DatabaseDriver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
