package model

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable classification of a packing error.
type ErrorCode string

const (
	// Validation errors, fatal at construction
	ErrCodeInvalidDimension ErrorCode = "INVALID_DIMENSION" // Non-positive width, height or depth
	ErrCodeInvalidItem      ErrorCode = "INVALID_ITEM"      // Negative item weight or invalid geometry
	ErrCodeInvalidBin       ErrorCode = "INVALID_BIN"       // Negative bin weight capacity

	// Placement errors, reported per item and recoverable by trying another bin
	ErrCodeWeightExceeded ErrorCode = "WEIGHT_EXCEEDED" // Item weight beyond the bin's remaining capacity
	ErrCodeNoFit          ErrorCode = "NO_FIT"          // No anchor point and orientation accepts the item
	ErrCodeAlreadyPlaced  ErrorCode = "ALREADY_PLACED"  // Placement requested twice for the same item
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    ErrorCode // Machine-readable error code
	Message string    // Human-readable message
	Cause   error     // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an Error with the given code and formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an Error wrapping an existing error.
func WrapError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether any error in the chain carries the given code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// CodeOf extracts the outermost error code, or empty string if the error
// carries none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the human-readable message without the code prefix.
// Plain errors are returned as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
