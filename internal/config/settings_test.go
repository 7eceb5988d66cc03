package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()

	require.NoError(t, s.Validate())
	assert.Equal(t, "gpt-4o-transcribe-diarize", s.Model)
	assert.Equal(t, "diarized_json", s.ResponseFormat)
	assert.Equal(t, 1400.0, s.MaxRequestDurationSec)
	assert.Equal(t, 900.0, s.WindowLengthSec)
	assert.Equal(t, 5.0, s.WindowOverlapSec)
	assert.Equal(t, 3, s.MaxAttempts)
}

func TestSettingsValidate(t *testing.T) {
	testCases := []struct {
		name          string
		mutate        func(s *Settings)
		errorContains string
	}{
		{
			name:          "overlap equal to window",
			mutate:        func(s *Settings) { s.WindowOverlapSec = s.WindowLengthSec },
			errorContains: "window_overlap_sec",
		},
		{
			name:          "negative overlap",
			mutate:        func(s *Settings) { s.WindowOverlapSec = -1 },
			errorContains: "window_overlap_sec",
		},
		{
			name:          "zero window",
			mutate:        func(s *Settings) { s.WindowLengthSec = 0 },
			errorContains: "window_length_sec",
		},
		{
			name:          "window longer than request limit",
			mutate:        func(s *Settings) { s.WindowLengthSec = 1500 },
			errorContains: "exceeds the maximum request duration",
		},
		{
			name:          "zero attempts",
			mutate:        func(s *Settings) { s.MaxAttempts = 0 },
			errorContains: "max_attempts",
		},
		{
			name:          "too many attempts",
			mutate:        func(s *Settings) { s.MaxAttempts = 11 },
			errorContains: "max_attempts out of range (must be between 1 and 10)",
		},
		{
			name:          "missing model",
			mutate:        func(s *Settings) { s.Model = "" },
			errorContains: "model is required",
		},
		{
			name:          "unknown history driver",
			mutate:        func(s *Settings) { s.History.Driver = "mongo" },
			errorContains: "history.driver",
		},
		{
			name:          "zero request timeout",
			mutate:        func(s *Settings) { s.RequestTimeout = 0 },
			errorContains: "request_timeout out of range",
		},
		{
			name:          "negative backoff",
			mutate:        func(s *Settings) { s.RetryBackoff = -time.Second },
			errorContains: "retry_backoff out of range (must be between 0s and 5m0s)",
		},
		{
			name:          "request timeout above an hour",
			mutate:        func(s *Settings) { s.RequestTimeout = 2 * time.Hour },
			errorContains: "request_timeout out of range (must be between 1s and 1h0m0s)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(s)

			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	t.Setenv("S2T_MODEL", "")
	t.Setenv("OPENAI_BASE_URL", "")

	path := filepath.Join(t.TempDir(), "s2t.yaml")
	content := `
model: gpt-4o-transcribe
language: en
window_length_sec: 600
window_overlap_sec: 10
request_timeout: 2m
retry_backoff: 1500ms
history:
  driver: none
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-transcribe", s.Model)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, 600.0, s.WindowLengthSec)
	assert.Equal(t, 10.0, s.WindowOverlapSec)
	assert.Equal(t, 2*time.Minute, s.RequestTimeout)
	assert.Equal(t, 1500*time.Millisecond, s.RetryBackoff)
	assert.Equal(t, "none", s.History.Driver)
	// untouched keys keep their defaults
	assert.Equal(t, 1400.0, s.MaxRequestDurationSec)
	assert.Equal(t, DefaultOutputDir, s.OutputDir)
	require.NoError(t, s.Validate())
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSettingsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window_length_sec: [1, 2"), 0644))

	_, err := LoadSettings(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(originalDir)

	t.Setenv("S2T_MODEL", "whisper-1")
	t.Setenv("S2T_LANGUAGE", "")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "whisper-1", s.Model)
	assert.Equal(t, "", s.Language, "an empty S2T_LANGUAGE enables auto-detection")
	assert.Equal(t, "http://localhost:8080/v1", s.BaseURL)
}
