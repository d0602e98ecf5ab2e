package core

import (
	"fmt"
)

// ErrorCategory classifies resolution failures.
type ErrorCategory int

const (
	// ErrCategoryTransport - device command round trip failed (adb link down, etc.)
	ErrCategoryTransport ErrorCategory = iota
	// ErrCategoryCapture - accessibility dump or screenshot was empty or malformed
	ErrCategoryCapture
	// ErrCategoryUnavailable - a collaborator (OCR, vision) is not installed or reachable
	ErrCategoryUnavailable
	// ErrCategoryNotFound - every attempted tier was below its acceptance threshold
	ErrCategoryNotFound
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryTransport:
		return "transport"
	case ErrCategoryCapture:
		return "capture"
	case ErrCategoryUnavailable:
		return "unavailable"
	case ErrCategoryNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ResolveError represents a structured error with category and details.
// Tier boundaries downgrade transport and capture faults to ordinary misses,
// so callers only ever see ErrCategoryNotFound from the cascade itself.
type ResolveError struct {
	Category ErrorCategory
	Code     string // Machine-readable code: element_not_found, dump_empty, etc.
	Message  string // Human-readable message
	Cause    error  // Underlying error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error with the given cause.
func (e *ResolveError) WithCause(cause error) *ResolveError {
	return &ResolveError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ResolveError) WithMessage(msg string) *ResolveError {
	return &ResolveError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	ErrElementNotFound = &ResolveError{
		Category: ErrCategoryNotFound,
		Code:     "element_not_found",
		Message:  "element not found",
	}
	ErrDumpEmpty = &ResolveError{
		Category: ErrCategoryCapture,
		Code:     "dump_empty",
		Message:  "accessibility dump is empty",
	}
	ErrScreenshotFailed = &ResolveError{
		Category: ErrCategoryCapture,
		Code:     "screenshot_failed",
		Message:  "screenshot capture failed",
	}
	ErrDeviceCommand = &ResolveError{
		Category: ErrCategoryTransport,
		Code:     "device_command_failed",
		Message:  "device command failed",
	}
	ErrOCRUnavailable = &ResolveError{
		Category: ErrCategoryUnavailable,
		Code:     "ocr_unavailable",
		Message:  "OCR engine not available",
	}
	ErrVisionUnavailable = &ResolveError{
		Category: ErrCategoryUnavailable,
		Code:     "vision_unavailable",
		Message:  "vision model not available",
	}
)
