package config

import (
	"os"
	"strconv"

	"anthrostat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Debug    DebugConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset loading settings
type DataConfig struct {
	// DatasetFile points at an .xlsx or .csv survey export.
	// Empty means the embedded sample survey is used.
	DatasetFile string
	SexColumn   string
}

// DatabaseConfig holds the optional classification-ledger settings
type DatabaseConfig struct {
	// URL enables the Postgres audit ledger when non-empty.
	URL string
}

// DebugConfig holds the secondary debug server settings
type DebugConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			DatasetFile: getEnvOrDefault("DATASET_FILE", ""),
			SexColumn:   getEnvOrDefault("SEX_COLUMN", "sex"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Debug: DebugConfig{
			Port:    getEnvOrDefault("DEBUG_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("DEBUG_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Debug.Enabled {
		if _, err := strconv.Atoi(config.Debug.Port); err != nil {
			return errors.ConfigInvalid("DEBUG_PORT must be numeric")
		}
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
