package invoke

import "fmt"

// Error codes for invocation failures.
const (
	// ErrCodeConfig marks configuration errors: unusable versions,
	// unreadable project state. Never retried.
	ErrCodeConfig = "CONFIG"
	// ErrCodeCheckerFailed marks a checker run that reported errors.
	ErrCodeCheckerFailed = "CHECKER_FAILED"
	// ErrCodeExecution marks unexpected I/O or process-spawn failures.
	ErrCodeExecution = "EXECUTION"
)

// RunError is a classified invocation failure.
type RunError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *RunError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *RunError) Unwrap() error {
	return e.Underlying
}

func configErr(suggestion, format string, args ...interface{}) *RunError {
	return &RunError{Code: ErrCodeConfig, Message: fmt.Sprintf(format, args...), Suggestion: suggestion}
}

func executionErr(msg string, underlying error) *RunError {
	return &RunError{Code: ErrCodeExecution, Message: msg, Underlying: underlying}
}
