package pesoshield

import (
	"errors"
	"fmt"
)

var (
	// ErrNoReportData is returned when a month has nothing to report:
	// zero transactions and an all-zero planned budget. This is a
	// legitimate empty state, distinct from a generation failure.
	ErrNoReportData = errors.New("no data to report")

	// ErrReportUnavailable is returned when the text-generation
	// collaborator fails
	ErrReportUnavailable = errors.New("report generation unavailable")

	// ErrNoGenerator is returned when report generation is requested but
	// no Generator was configured
	ErrNoGenerator = errors.New("no generator configured")

	// ErrNoAssistant is returned when a chat turn is requested but no
	// Assistant was configured
	ErrNoAssistant = errors.New("no assistant configured")

	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")
)

// Error represents an SDK error with a stable code
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// ValidationError reports an invalid user-supplied field. Validation
// blocks the write; it never panics and never partially persists.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a field validation failure.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
