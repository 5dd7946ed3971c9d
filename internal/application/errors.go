package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the orchestration-level error the REST layer maps to HTTP.
// Persistence and gateway detail stays in the wrapped error for the logs;
// Message is what callers may see.
type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeGateway    = "GATEWAY_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

func NewValidationError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    err.Error(),
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewGatewayError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeGateway,
		Message:    "Failed to create payment link",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    err.Error(),
		HTTPStatus: http.StatusNotFound,
		Err:        err,
	}
}

func NewConflictError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeConflict,
		Message:    err.Error(),
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// ToHTTPStatus maps any error to the status the REST layer should write.
func ToHTTPStatus(err error) int {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ToErrorCode maps any error to its machine-readable code.
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}
	return ErrCodeInternal
}

// ToMessage returns the caller-safe message for an error. Wrapped causes are
// for the logs only.
func ToMessage(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Message
	}
	return "An internal error occurred"
}
