package errors

import "fmt"

// Error kinds. Match them with errors.Is.
var (
	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// External media tools
	ErrToolUnavailable   = New("external tool unavailable")
	ErrProbeFailed       = New("duration probe failed")
	ErrMalformedDuration = New("malformed duration")
	ErrExtractFailed     = New("audio extraction failed")

	// Splitting
	ErrSplitFailed = New("audio splitting failed")
	ErrEmptySplit  = New("splitting produced no windows")

	// File errors
	ErrFileNotFound  = New("file not found")
	ErrNoMediaFiles  = New("no audio or video files found")
	ErrInvalidChoice = New("invalid selection")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
	kind    *Error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Mark tags err with one of the kinds above so that errors.Is(result, kind) holds.
// err may be nil when the kind itself is the failure.
func Mark(kind *Error, err error, format string, args ...interface{}) error {
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
		kind:    kind,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.message
	if e.kind != nil {
		if msg == "" {
			msg = e.kind.message
		} else {
			msg = e.kind.message + ": " + msg
		}
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.kind != nil && e.kind.message == t.message {
		return true
	}
	return e.message == t.message
}

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Mark(ErrInvalidConfig, nil, "%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Mark(ErrInvalidConfig, nil, "%s is invalid: %s", field, reason)
}

// OutOfRange returns an error for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Mark(ErrInvalidConfig, nil, "%s out of range (must be between %v and %v)", field, min, max)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Mark(ErrFileNotFound, nil, "%s not found: %s", itemType, identifier)
}
