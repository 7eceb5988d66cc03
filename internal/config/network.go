package config

import (
	"fmt"
	"os"
)

// NetworkConfig holds network-related configuration read from the environment
type NetworkConfig struct {
	// OpenAI-compatible endpoint, empty for the public API
	OpenAIBaseURL string

	// Database
	DatabaseURL  string
	DBHost       string
	PostgresPort string
}

// GetNetworkConfig returns network configuration from environment or defaults
func GetNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		OpenAIBaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", ""),
		DBHost:        getEnvOrDefault("DB_HOST", "localhost"),
		PostgresPort:  getEnvOrDefault("POSTGRES_PORT", "5432"),
	}
}

// GetPostgresConnectionString constructs PostgreSQL connection string
func (nc *NetworkConfig) GetPostgresConnectionString() string {
	if nc.DatabaseURL != "" {
		return nc.DatabaseURL
	}

	port := getEnvOrDefault("DB_PORT", nc.PostgresPort)
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "")
	dbname := getEnvOrDefault("DB_NAME", "speech2text")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		nc.DBHost, port, user, password, dbname)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
