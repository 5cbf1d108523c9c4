package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailExists is returned when an account with the email already exists.
	ErrEmailExists = errors.New("an account with this email already exists")
	// ErrAuthMismatch is returned when the claimed identity does not match the verified credential.
	ErrAuthMismatch = errors.New("authenticated identity does not match the request")
	// ErrPermissionDenied is returned when the caller's role is insufficient.
	ErrPermissionDenied = errors.New("Permission denied.")
	// ErrRegistrationNotFound is returned when a registration record is absent.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrRegistrationExists is returned when the user already has a registration.
	ErrRegistrationExists = errors.New("a registration already exists for this account")
	// ErrUserNotFound is returned when a profile record is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuestionNotFound is returned when a Q&A question is absent.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrContentNotFound is returned when a content item is absent.
	ErrContentNotFound = errors.New("content item not found")
	// ErrAccessRequestExists is returned on a repeated organizer-access request.
	ErrAccessRequestExists = errors.New("You have already submitted a request.")
	// ErrSelfRoleChange is returned when a superadmin targets their own role.
	ErrSelfRoleChange = errors.New("cannot change your own role")
	// ErrInvalidTransition is returned when the transition table forbids a status move.
	ErrInvalidTransition = errors.New("status change not allowed")
	// ErrTicketUnavailable is returned when a ticket is requested for a non-approved registration.
	ErrTicketUnavailable = errors.New("ticket is not available for this registration")
	// ErrCertificateUnavailable is returned when a certificate has not been granted.
	ErrCertificateUnavailable = errors.New("certificate has not been granted")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	if ve, ok := AsValidation(err); ok {
		return NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_FAILED")
	}
	switch {
	case errors.Is(err, ErrEmailExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrAuthMismatch):
		return NewHTTPError(http.StatusForbidden, err.Error(), "AUTH_MISMATCH")
	case errors.Is(err, ErrPermissionDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case errors.Is(err, ErrRegistrationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REGISTRATION_NOT_FOUND")
	case errors.Is(err, ErrRegistrationExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "REGISTRATION_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrQuestionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "QUESTION_NOT_FOUND")
	case errors.Is(err, ErrContentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CONTENT_NOT_FOUND")
	case errors.Is(err, ErrAccessRequestExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ACCESS_REQUEST_EXISTS")
	case errors.Is(err, ErrSelfRoleChange):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_ROLE_CHANGE")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrTicketUnavailable):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TICKET_UNAVAILABLE")
	case errors.Is(err, ErrCertificateUnavailable):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CERTIFICATE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// ValidationError wraps a field-level validation failure so the handler can
// surface the message while keeping a stable machine code.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation failure with a user-facing message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AsValidation reports whether err is a validation failure.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
