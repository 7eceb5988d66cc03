// Package cli holds the state shared by every s2t subcommand.
package cli

import (
	"fmt"

	"go.uber.org/zap"

	"speech2text/internal/app/logging"
	"speech2text/internal/config"
)

// Set by the root command's persistent flags.
var (
	ConfigFile string
	Verbose    bool
)

func DefaultConfigName() string {
	return config.DefaultSettingsFile
}

// LoadSettings reads the settings file selected by --config, applies the
// environment, then lets override adjust the result before validation.
func LoadSettings(override func(*config.Settings)) (*config.Settings, error) {
	settings, err := config.LoadSettings(ConfigFile)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// NewLogger returns a development logger under --verbose, a production one otherwise.
func NewLogger() (*zap.Logger, error) {
	logger, err := logging.NewLogger(Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
