package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"

	// CodeNotConfigured indicates no compendiums are marked for indexing
	CodeNotConfigured Code = "not_configured"

	// CodeMissingCollaborator indicates an expected host subsystem is absent
	CodeMissingCollaborator Code = "missing_collaborator"

	// CodeResolutionFailure indicates a UUID did not resolve to a document
	CodeResolutionFailure Code = "resolution_failure"

	// CodeInsufficientFunds indicates an actor cannot afford a spell copy
	CodeInsufficientFunds Code = "insufficient_funds"

	// CodeUserCancel indicates the user declined a confirmation prompt
	CodeUserCancel Code = "user_cancel"

	// CodeWriteFailure indicates a document update failed
	CodeWriteFailure Code = "write_failure"

	// CodeContention indicates a create-or-get waiter exceeded its sanity bound
	CodeContention Code = "contention"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper constructors for common error kinds

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists creates an already exists error
func AlreadyExists(message string) *Error {
	return New(CodeAlreadyExists, message)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// NotConfigured creates a not configured error
func NotConfigured(message string) *Error {
	return New(CodeNotConfigured, message)
}

// MissingCollaborator creates a missing collaborator error
func MissingCollaborator(message string) *Error {
	return New(CodeMissingCollaborator, message)
}

// MissingCollaboratorf creates a formatted missing collaborator error
func MissingCollaboratorf(format string, args ...any) *Error {
	return Newf(CodeMissingCollaborator, format, args...)
}

// ResolutionFailure creates a resolution failure error
func ResolutionFailure(message string) *Error {
	return New(CodeResolutionFailure, message)
}

// ResolutionFailuref creates a formatted resolution failure error
func ResolutionFailuref(format string, args ...any) *Error {
	return Newf(CodeResolutionFailure, format, args...)
}

// InsufficientFunds creates an insufficient funds error
func InsufficientFunds(message string) *Error {
	return New(CodeInsufficientFunds, message)
}

// InsufficientFundsf creates a formatted insufficient funds error
func InsufficientFundsf(format string, args ...any) *Error {
	return Newf(CodeInsufficientFunds, format, args...)
}

// UserCancel creates a user cancel error
func UserCancel(message string) *Error {
	return New(CodeUserCancel, message)
}

// WriteFailure creates a write failure error
func WriteFailure(message string) *Error {
	return New(CodeWriteFailure, message)
}

// WriteFailuref creates a formatted write failure error
func WriteFailuref(format string, args ...any) *Error {
	return Newf(CodeWriteFailure, format, args...)
}

// Contention creates a contention error
func Contention(message string) *Error {
	return New(CodeContention, message)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsNotConfigured checks if the error is a not configured error
func IsNotConfigured(err error) bool {
	return Is(err, CodeNotConfigured)
}

// IsResolutionFailure checks if the error is a resolution failure
func IsResolutionFailure(err error) bool {
	return Is(err, CodeResolutionFailure)
}

// IsInsufficientFunds checks if the error is an insufficient funds error
func IsInsufficientFunds(err error) bool {
	return Is(err, CodeInsufficientFunds)
}

// IsUserCancel checks if the error is a user cancel error
func IsUserCancel(err error) bool {
	return Is(err, CodeUserCancel)
}

// IsWriteFailure checks if the error is a write failure error
func IsWriteFailure(err error) bool {
	return Is(err, CodeWriteFailure)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
