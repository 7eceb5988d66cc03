package api

import "fmt"

// Error codes of TranscriptionError
const (
	CodeAuthentication = "authentication_failed"
	CodeRateLimited    = "rate_limited"
	CodeInvalidRequest = "invalid_request"
	CodeFileTooLarge   = "file_too_large"
	CodeServerError    = "server_error"
	CodeTimeout        = "timeout"
	CodeNetwork        = "network_error"
	CodeBadResponse    = "bad_response"
)

// TranscriptionError represents provider-specific errors
type TranscriptionError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Provider    string   `json:"provider"`
	StatusCode  int      `json:"status_code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cause       error    `json:"-"`
}

func (e *TranscriptionError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s transcription failed (%s, status %d): %s", e.Provider, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s transcription failed (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the provider client's original error
func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the request timed out before the service answered
func (e *TranscriptionError) Timeout() bool {
	return e.Code == CodeTimeout
}
