package errors

import (
	"net/http"

	"seopulse/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Unauthorized",
		"",
	)

	ErrSessionTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_TOKEN_INVALID",
		"Invalid or expired session token",
		"",
	)

	// Connection-related errors
	ErrServiceUnknown = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SERVICE",
		"Unknown service type",
		"",
	)

	ErrServiceNotConnected = NewBaseError(
		http.StatusBadRequest,
		"SERVICE_NOT_CONNECTED",
		"Service is not connected",
		"",
	)

	// OAuth-related errors
	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"Invalid or expired OAuth state",
		"",
	)

	ErrOAuthCodeMissing = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_CODE_MISSING",
		"Missing authorization code",
		"",
	)

	ErrOAuthExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"OAUTH_EXCHANGE_FAILED",
		"Authorization code exchange failed",
		"",
	)

	ErrOAuthNotConfigured = NewBaseError(
		http.StatusServiceUnavailable,
		"OAUTH_NOT_CONFIGURED",
		"OAuth client is not configured",
		"",
	)

	// Audit-related errors
	ErrMissingURL = NewBaseError(
		http.StatusBadRequest,
		"MISSING_URL",
		"URL is required",
		"",
	)

	ErrInvalidDevice = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DEVICE",
		"Device must be mobile or desktop",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// PageSpeedError represents a failure reported by the external audit API,
// carrying the provider's own message through to the client.
type PageSpeedError struct {
	statusCode int
	message    string
}

// NewPageSpeedError creates an audit provider error. Non-2xx provider
// responses surface their status and message; transport failures map to 502.
func NewPageSpeedError(statusCode int, message string) AppError {
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusBadGateway
	}
	if message == "" {
		message = "PageSpeed audit failed"
	}
	return &PageSpeedError{
		statusCode: statusCode,
		message:    message,
	}
}

// Error implements the error interface
func (e *PageSpeedError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code
func (e *PageSpeedError) HTTPCode() int {
	return e.statusCode
}

// ErrorCode returns the business error code
func (e *PageSpeedError) ErrorCode() string {
	return "PAGESPEED_FAILED"
}

// Message returns the user-friendly error message
func (e *PageSpeedError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *PageSpeedError) Details() string {
	return ""
}
