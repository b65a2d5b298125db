package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError wraps orchestration failures with an HTTP status for the
// transport layer.
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
	ErrCodeStorage      = "STORAGE_FAILURE"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// NewStorageError marks a failed persistence of a computed transition. Fatal
// to the current request; the whole operation must be retried by the caller.
func NewStorageError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeStorage,
		Message:    "failed to persist booking state",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewForbiddenError(reason string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeForbidden,
		Message:    reason,
		HTTPStatus: http.StatusForbidden,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    "invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// GatewayError is a failed payment processor call. A timeout or ambiguous
// response is treated as failure, never as a silent success.
type GatewayError struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *GatewayError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}
