package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error class.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_VALIDATION
	ErrorCode_GENERATION_FAILED
	ErrorCode_EXPORT_FAILED
	ErrorCode_EXTRACTION_FAILED
	ErrorCode_SESSION_NOT_FOUND
	ErrorCode_ITEM_NOT_FOUND
	ErrorCode_ITEM_REMOVED
	ErrorCode_REGENERATION_IN_FLIGHT
	ErrorCode_STORAGE_FAILED
)

// String returns the code name used in logs and response bodies.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_VALIDATION:
		return "VALIDATION"
	case ErrorCode_GENERATION_FAILED:
		return "GENERATION_FAILED"
	case ErrorCode_EXPORT_FAILED:
		return "EXPORT_FAILED"
	case ErrorCode_EXTRACTION_FAILED:
		return "EXTRACTION_FAILED"
	case ErrorCode_SESSION_NOT_FOUND:
		return "SESSION_NOT_FOUND"
	case ErrorCode_ITEM_NOT_FOUND:
		return "ITEM_NOT_FOUND"
	case ErrorCode_ITEM_REMOVED:
		return "ITEM_REMOVED"
	case ErrorCode_REGENERATION_IN_FLIGHT:
		return "REGENERATION_IN_FLIGHT"
	case ErrorCode_STORAGE_FAILED:
		return "STORAGE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// ErrValidation reports a required field missing or malformed before
// any network call is made. Never fatal to the session.
func ErrValidation(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VALIDATION,
		Message:  message,
	}
}

// Generation Errors

// ErrGeneration reports a failed remote generation call, either
// transport-level or because the model output could not be parsed
// after code-fence stripping.
func ErrGeneration(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_GENERATION_FAILED,
		Message:  "Agenda generation failed",
	}
}

// ErrRegenerationInFlight reports a second regeneration trigger on a
// target that already has one running.
func ErrRegenerationInFlight(target string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_REGENERATION_IN_FLIGHT,
		Message:  "A regeneration for this target is already in progress",
	}.WithDetail("target", target)
}

// Session / item errors

func ErrSessionNotFound(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SESSION_NOT_FOUND,
		Message:  "Agenda session not found or expired",
	}.WithDetail("session_id", sessionID)
}

func ErrItemNotFound(itemID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ITEM_NOT_FOUND,
		Message:  "Agenda item not found",
	}.WithDetail("item_id", itemID)
}

// ErrItemRemoved reports a regeneration result discarded because its
// target item was deleted while the call was in flight.
func ErrItemRemoved(itemID string) AppError {
	return AppError{
		HTTPCode: http.StatusGone,
		Code:     ErrorCode_ITEM_REMOVED,
		Message:  "Agenda item was removed while regenerating; result discarded",
	}.WithDetail("item_id", itemID)
}

// Export / extraction errors

func ErrExport(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXPORT_FAILED,
		Message:  fmt.Sprintf("Failed to export agenda as %s", format),
	}.WithDetail("format", format)
}

func ErrExtraction(fileName string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_EXTRACTION_FAILED,
		Message:  "Failed to extract text from attachment",
	}.WithDetail("file_name", fileName)
}

func ErrStorage(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  "Attachment storage operation failed",
	}
}
