package apperrors

import (
	"context"
	"errors"
)

// Common errors. Every error the services return wraps exactly one of these.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Service errors
	ErrServiceFailure = errors.New("service failure")
)

// Student errors
var (
	ErrStudentNotFound       = NewResourceNotFoundError("student not found")
	ErrStudentCodeExists     = NewConflictError("student code already exists")
	ErrStudentHasOpenRentals = NewConflictError("student has active or overdue rentals and cannot be deleted")
)

// Locker errors
var (
	ErrLockerNotFound       = NewResourceNotFoundError("locker not found")
	ErrLockerHasOpenRentals = NewConflictError("locker has active or overdue rentals and cannot be deleted")
)

// Rental errors
var (
	ErrRentalNotFound         = NewResourceNotFoundError("rental not found")
	ErrRentalStudentNotFound  = NewValidationError("rental references a student that does not exist")
	ErrRentalLockerNotFound   = NewValidationError("rental references a locker that does not exist")
	ErrRentalDateRangeInvalid = NewValidationError("endDate must not be before startDate")
)

// Kind classifies an error into the categories callers react to.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuthentication
	KindForbidden
	KindConflict
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind of err. Unrecognised non-nil errors are service errors.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case Is(err, ErrValidationFailed, ErrBadRequest):
		return KindValidation
	case errors.Is(err, ErrResourceNotFound):
		return KindNotFound
	case Is(err, ErrInvalidCredentials, ErrTokenExpired, ErrTokenInvalid, ErrTokenRevoked, ErrUnauthenticated):
		return KindAuthentication
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindService
	}
}

// IsAuthentication reports whether err must force the user to log in again.
// A forbidden action is not one: the session stays valid.
func IsAuthentication(err error) bool {
	return KindOf(err) == KindAuthentication
}

// IsCanceled reports whether err came from a cancelled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return NewCustomError(ErrConflict, message)
}

// NewValidationError creates a new custom error for user-correctable input problems
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// NewServiceError creates a new custom error for failures the user cannot correct
func NewServiceError(message string) *CustomError {
	return NewCustomError(ErrServiceFailure, message)
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Message returns the most specific human-readable message carried by err.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
