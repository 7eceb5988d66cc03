package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds the credentials read from the environment
type APIKeys struct {
	OpenAI string
}

// envFileCandidates lists where LoadEnv looks for a .env file, in order.
func envFileCandidates() []string {
	candidates := []string{".env", ".env.local"}
	if root, err := GetProjectRoot(); err == nil {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}
	return candidates
}

// LoadEnv loads the first .env file found in the working directory or the
// project root. Variables already set in the environment are not overridden.
// Having no file at all is fine.
func LoadEnv() error {
	for _, envPath := range envFileCandidates() {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("error loading %s: %w", envPath, err)
		}
		fmt.Fprintf(os.Stderr, "✅ Loaded environment from %s\n", envPath)
		return nil
	}
	return nil
}

// GetAPIKeys reads OPENAI_API_KEY. The sk- format is only enforced against the
// public API: baseURL is the resolved Settings.BaseURL, and gateways behind it
// issue their own key formats.
func GetAPIKeys(baseURL string) (*APIKeys, error) {
	keys := &APIKeys{OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))}

	if keys.OpenAI == "" || baseURL != "" {
		return keys, nil
	}
	if err := ValidateAPIKey(keys.OpenAI, "OpenAI"); err != nil {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY format: %w", err)
	}
	return keys, nil
}

// RequireAPIKeys fails when no key is available for the transcription service.
func RequireAPIKeys(keys *APIKeys) error {
	if keys == nil || keys.OpenAI == "" {
		return fmt.Errorf("transcription requires an API key - please set OPENAI_API_KEY in environment or .env file")
	}
	return nil
}

// GetProjectRoot walks up from the working directory to the first go.mod.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

// InitializeConfig loads .env. main calls it once at start-up; the key itself is
// checked by the commands that need it, once the settings are resolved.
func InitializeConfig() error {
	if err := LoadEnv(); err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	return nil
}
