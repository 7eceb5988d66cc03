package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "speech2text/internal/app/errors"
)

// Range limits for the request settings.
const (
	MinRequestTimeout = time.Second
	MaxRequestTimeout = 60 * time.Minute
	MinAttempts       = 1
	MaxAttempts       = 10
	MaxRetryDelay     = 5 * time.Minute
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, field string) error {
	if timeout < MinRequestTimeout || timeout > MaxRequestTimeout {
		return apperrors.OutOfRange(field, MinRequestTimeout, MaxRequestTimeout)
	}
	return nil
}

// ValidateAttempts validates the total number of attempts per request
func ValidateAttempts(attempts int, field string) error {
	if attempts < MinAttempts || attempts > MaxAttempts {
		return apperrors.OutOfRange(field, MinAttempts, MaxAttempts)
	}
	return nil
}

// ValidateRetryDelay validates retry delay
func ValidateRetryDelay(delay time.Duration, field string) error {
	if delay < 0 || delay > MaxRetryDelay {
		return apperrors.OutOfRange(field, time.Duration(0), MaxRetryDelay)
	}
	return nil
}

// ValidateWindow validates the window geometry. Overlap must be strictly shorter
// than the window, otherwise consecutive windows would never advance.
func ValidateWindow(lengthSec, overlapSec, maxRequestSec float64) error {
	if lengthSec <= 0 {
		return fmt.Errorf("window length must be positive, got %gs", lengthSec)
	}
	if overlapSec < 0 {
		return fmt.Errorf("window overlap cannot be negative, got %gs", overlapSec)
	}
	if overlapSec >= lengthSec {
		return fmt.Errorf("window overlap %gs must be shorter than window length %gs", overlapSec, lengthSec)
	}
	if lengthSec > maxRequestSec {
		return fmt.Errorf("window length %gs exceeds the maximum request duration %gs", lengthSec, maxRequestSec)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}
