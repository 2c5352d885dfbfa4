package errors

import (
	stderrors "errors"
	"fmt"

	"swingstats/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise derives one
// from the domain taxonomy
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeFor(err)
}

// Predefined error codes
const (
	CodeInputNotFound    = "INPUT_NOT_FOUND"
	CodeMalformedInput   = "MALFORMED_INPUT"
	CodeOutputWrite      = "OUTPUT_WRITE"
	CodeInvalidExclusion = "INVALID_EXCLUSION"
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeInternalError    = "INTERNAL_ERROR"
)

// CodeFor maps a domain error onto its application code
func CodeFor(err error) string {
	switch {
	case core.IsInputNotFound(err):
		return CodeInputNotFound
	case core.IsMalformedInput(err):
		return CodeMalformedInput
	case core.IsOutputWrite(err):
		return CodeOutputWrite
	case stderrors.Is(err, core.ErrUnknownExclusion):
		return CodeInvalidExclusion
	default:
		return CodeInternalError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
