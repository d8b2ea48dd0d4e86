package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for the failure classes a link run can end in
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Usage errors (missing target selector, bad arguments)
	ErrUsage ErrorCode = "USAGE"

	// Configuration errors
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrInstanceNotFound ErrorCode = "INSTANCE_NOT_FOUND"

	// Policy violations and operator aborts
	ErrPolicyForbidden ErrorCode = "POLICY_FORBIDDEN"
	ErrAborted         ErrorCode = "ABORTED"

	// Topology and filesystem layout
	ErrTopology         ErrorCode = "TOPOLOGY"
	ErrDeployDirMissing ErrorCode = "DEPLOY_DIR_MISSING"

	// Remote execution
	ErrRemoteExec ErrorCode = "REMOTE_EXEC"
)

// exitCodes maps error codes to process exit codes. Anything not listed
// exits with 1.
var exitCodes = map[ErrorCode]int{
	ErrUsage:            2,
	ErrConfigLoad:       3,
	ErrConfigInvalid:    3,
	ErrInstanceNotFound: 3,
	ErrPolicyForbidden:  4,
	ErrAborted:          5,
	ErrTopology:         6,
	ErrDeployDirMissing: 7,
	ErrRemoteExec:       8,
}

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var linkErr *Error
	if errors.As(err, &linkErr) {
		return linkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var linkErr *Error
	if errors.As(err, &linkErr) {
		return linkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var linkErr *Error
	if errors.As(err, &linkErr) {
		return linkErr.Details
	}
	return nil
}

// ExitCode returns the process exit code for err. nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return 1
}

// UserMessage returns the human-readable message of the outermost *Error,
// without the code prefix. Other errors are returned as is.
func UserMessage(err error) string {
	var linkErr *Error
	if errors.As(err, &linkErr) {
		if linkErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", linkErr.Message, linkErr.Wrapped)
		}
		return linkErr.Message
	}
	return err.Error()
}
