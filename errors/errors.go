package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of failure reported to the workflow
type ErrorCode string

const (
	// Validation errors, never reach the network
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField    ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidDateRange ErrorCode = "INVALID_DATE_RANGE"

	// Session
	ErrCodeNoSession ErrorCode = "NO_SESSION"

	// Transport errors
	ErrCodeHTTP      ErrorCode = "HTTP_ERROR"
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
	ErrCodeDecode    ErrorCode = "DECODE_ERROR"

	// Workflow errors
	ErrCodeSubmissionInFlight ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeInvalidOperation   ErrorCode = "INVALID_OPERATION"
)

// AppError carries a code and a user facing message
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError reports whether err is (or wraps) an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError extracts the AppError from err
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// CodeOf returns the code of err, or an empty code for foreign errors
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err is one of the input validation codes
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeInvalidDateRange:
		return true
	}
	return false
}

// MessageOf returns the user facing message of err
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if appErr := GetAppError(err); appErr != nil && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

var (
	// Session errors
	ErrNoSession = NewAppError(ErrCodeNoSession, "sign in to continue", nil)

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrNoModal             = errors.New("no modal is open")
)
