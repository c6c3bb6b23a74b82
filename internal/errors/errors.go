// Package errors provides centralized error definitions and error handling utilities
// for nikit. It defines sentinel errors for the safe file writer and command
// lookup, domain and semantic error types with context builders, and
// classification helpers.
//
// # Error Types
//
// Domain-specific errors:
//   - FileError: a failed stage of a safe file write (acquire, write, rename)
//
// Semantic errors:
//   - NotFoundError: resource not found (e.g. an executable on PATH)
//   - AlreadyExistsError: resource already exists (e.g. a temp file name collision)
//   - ValidationError: invalid input or state
//
// # Usage
//
//	err := errors.NewFileError(errors.OpRename, "rename into place", cause).
//		WithTempPath(tmp).WithDest(dest)
//
//	if errors.Is(err, errors.ErrRename) { ... }
//
//	var fileErr *errors.FileError
//	if errors.As(err, &fileErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions so callers can import only this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Safe write sentinel errors
var (
	// ErrTempCreate indicates that no temp file could be created in the shared temp directory.
	ErrTempCreate = New("temp file could not be created")
	// ErrTempWrite indicates that content could not be written to the temp file.
	ErrTempWrite = New("temp file write failed")
	// ErrRename indicates that the temp file could not be renamed onto the destination.
	ErrRename = New("rename into place failed")
)

// Command lookup sentinel errors
var (
	// ErrCommandNotFound indicates that an executable is not resolvable on PATH.
	ErrCommandNotFound = New("command not found")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// KitError is the base interface for all nikit errors.
type KitError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the operation may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the message is safe to display to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// FileOp names the stage of a safe write that failed.
type FileOp string

const (
	OpAcquire FileOp = "acquire"
	OpWrite   FileOp = "write"
	OpRename  FileOp = "rename"
)

// sentinel maps each stage to the sentinel error it matches.
func (op FileOp) sentinel() error {
	switch op {
	case OpAcquire:
		return ErrTempCreate
	case OpWrite:
		return ErrTempWrite
	case OpRename:
		return ErrRename
	default:
		return nil
	}
}

// FileError represents a failed stage of a safe file write.
//
// Example:
//
//	err := errors.NewFileError(errors.OpWrite, "write temp file", ioErr).WithTempPath("/tmp/antfu-ni/.42.0")
//	fmt.Println(err) // "file error [op=write, temp=/tmp/antfu-ni/.42.0]: write temp file: <ioErr>"
type FileError struct {
	baseError
	Op       FileOp
	TempPath string
	Dest     string
}

// NewFileError creates a new FileError. The returned error matches the
// sentinel for op (ErrTempCreate, ErrTempWrite or ErrRename) in addition to cause.
func NewFileError(op FileOp, message string, cause error) *FileError {
	return &FileError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Op: op,
	}
}

// WithTempPath adds the temp file path to the error context.
func (e *FileError) WithTempPath(path string) *FileError {
	e.TempPath = path
	return e
}

// WithDest adds the destination path to the error context.
func (e *FileError) WithDest(path string) *FileError {
	e.Dest = path
	return e
}

// WithSeverity sets the error severity.
func (e *FileError) WithSeverity(s Severity) *FileError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *FileError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.TempPath != "" {
		parts = append(parts, fmt.Sprintf("temp=%s", e.TempPath))
	}
	if e.Dest != "" {
		parts = append(parts, fmt.Sprintf("dest=%s", e.Dest))
	}

	prefix := "file error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("file error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *FileError) Is(target error) bool {
	if _, ok := target.(*FileError); ok {
		return true
	}
	if s := e.Op.sentinel(); s != nil && target == s {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("command", "volta")
//	fmt.Println(err) // "command 'volta' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("temp file", "/tmp/antfu-ni/.42.3").WithRetryable(true)
//	fmt.Println(err) // "temp file '/tmp/antfu-ni/.42.3' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *AlreadyExistsError) WithRetryable(r bool) *AlreadyExistsError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("width must not be negative").WithField("width").WithValue(-1)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			cause:      ErrInvalidInput,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation error")
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" [field=%s]", e.Field))
	}
	sb.WriteString(": ")
	sb.WriteString(e.message)
	if e.Value != nil {
		sb.WriteString(fmt.Sprintf(" (got: %v)", e.Value))
	}
	return sb.String()
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
//
// Example:
//
//	for {
//	    f, err := claim(next())
//	    if errors.IsRetryable(err) {
//	        continue
//	    }
//	    ...
//	}
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var kitErr KitError
	if As(err, &kitErr) {
		return kitErr.IsRetryable()
	}
	return false
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var kitErr KitError
	if As(err, &kitErr) {
		return kitErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement KitError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var kitErr KitError
	if As(err, &kitErr) {
		return kitErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
