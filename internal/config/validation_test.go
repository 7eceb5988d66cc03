package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "speech2text/internal/app/errors"
)

func TestValidateWindow(t *testing.T) {
	testCases := []struct {
		name     string
		length   float64
		overlap  float64
		max      float64
		expectOK bool
	}{
		{"defaults", 900, 5, 1400, true},
		{"no overlap", 900, 0, 1400, true},
		{"window equals limit", 1400, 5, 1400, true},
		{"overlap equals window", 900, 900, 1400, false},
		{"overlap exceeds window", 900, 901, 1400, false},
		{"negative overlap", 900, -5, 1400, false},
		{"zero window", 0, 0, 1400, false},
		{"window above limit", 1500, 5, 1400, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.length, tc.overlap, tc.max)
			if tc.expectOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRanges(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		message string
	}{
		{"timeout ok", ValidateTimeout(10*time.Minute, "request_timeout"), ""},
		{"timeout zero", ValidateTimeout(0, "request_timeout"), "request_timeout out of range (must be between 1s and 1h0m0s)"},
		{"timeout too large", ValidateTimeout(2*time.Hour, "request_timeout"), "request_timeout out of range"},
		{"attempts ok", ValidateAttempts(1, "max_attempts"), ""},
		{"attempts zero", ValidateAttempts(0, "max_attempts"), "max_attempts out of range (must be between 1 and 10)"},
		{"attempts too many", ValidateAttempts(11, "max_attempts"), "max_attempts out of range"},
		{"delay zero", ValidateRetryDelay(0, "retry_backoff"), ""},
		{"delay negative", ValidateRetryDelay(-time.Millisecond, "retry_backoff"), "retry_backoff out of range (must be between 0s and 5m0s)"},
		{"delay too large", ValidateRetryDelay(6*time.Minute, "retry_backoff"), "retry_backoff out of range"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.message == "" {
				assert.NoError(t, tc.err)
				return
			}
			require.Error(t, tc.err)
			assert.True(t, errors.Is(tc.err, apperrors.ErrInvalidConfig))
			assert.Contains(t, tc.err.Error(), tc.message)
		})
	}
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://api.openai.com/v1", "base"))
	assert.Error(t, ValidateURL("api.openai.com", "base"))
}
