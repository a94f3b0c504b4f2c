// Package config loads service configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Default configuration values
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// DefaultOSAPIMaxLimit is the default maximum page size for list endpoints
	DefaultOSAPIMaxLimit = 1000
	// DefaultQuotaMetadataItems is the default number of metadata items allowed per instance
	DefaultQuotaMetadataItems = 128

	// Database defaults
	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBName     = "strato"
)

// DBConfig represents database connection settings
type DBConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLEnabled bool
}

// Config represents the full service configuration
type Config struct {
	// Port the API listens on
	Port string
	// OSAPIMaxLimit is the maximum number of items a list request may return
	OSAPIMaxLimit int
	// AllowInstanceSnapshots gates the snapshot endpoint
	AllowInstanceSnapshots bool
	// QuotaMetadataItems is the per-instance metadata item quota
	QuotaMetadataItems int
	// DB holds the database connection settings
	DB DBConfig
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present so local development matches deployment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	maxLimit, err := GetEnvInt("OSAPI_MAX_LIMIT", DefaultOSAPIMaxLimit)
	if err != nil {
		return nil, err
	}
	if maxLimit <= 0 {
		return nil, fmt.Errorf("OSAPI_MAX_LIMIT must be a positive integer, got %d", maxLimit)
	}

	quotaItems, err := GetEnvInt("QUOTA_METADATA_ITEMS", DefaultQuotaMetadataItems)
	if err != nil {
		return nil, err
	}

	allowSnapshots, err := GetEnvBool("ALLOW_INSTANCE_SNAPSHOTS", true)
	if err != nil {
		return nil, err
	}

	dbPort, err := GetEnvInt("DB_PORT", DefaultDBPort)
	if err != nil {
		return nil, err
	}

	dbSSL, err := GetEnvBool("DB_SSL_ENABLED", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                   GetEnv("PORT", DefaultPort),
		OSAPIMaxLimit:          maxLimit,
		AllowInstanceSnapshots: allowSnapshots,
		QuotaMetadataItems:     quotaItems,
		DB: DBConfig{
			Host:       GetEnv("DB_HOST", DefaultDBHost),
			Port:       dbPort,
			User:       GetEnv("DB_USER", DefaultDBUser),
			Password:   GetEnv("DB_PASSWORD", DefaultDBPassword),
			Name:       GetEnv("DB_NAME", DefaultDBName),
			SSLEnabled: dbSSL,
		},
	}, nil
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvInt retrieves an integer environment variable with a fallback value if not set
func GetEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return parsed, nil
}

// GetEnvBool retrieves a boolean environment variable with a fallback value if not set
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return parsed, nil
}
