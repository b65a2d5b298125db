package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if domain.IsValidationError(err) {
		return CategoryClientError
	}

	if domain.IsConflictError(err) || domain.IsCapacityExceededError(err) ||
		errors.Is(err, domain.ErrStatusConflict) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrBookingNotFound) || errors.Is(err, domain.ErrHotelNotFound) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeInvalidInput, ErrCodeForbidden:
			return CategoryClientError
		case ErrCodeStorage, ErrCodeInternal:
			return CategoryInfrastructure
		}
	}

	if gwErr, ok := IsGatewayError(err); ok {
		if gwErr.StatusCode >= 500 {
			return CategoryTransient
		}

		switch gwErr.Code {
		case "internal_error", "rate_limited":
			return CategoryTransient
		case "intent_not_found", "refund_not_found", "missing_idempotency_key":
			return CategoryClientError
		default:
			// Card/charge level rejections need human intervention.
			return CategoryPermanent
		}
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsConflictError(err),
		domain.IsCapacityExceededError(err),
		errors.Is(err, domain.ErrStatusConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrHotelNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	if gwErr, ok := IsGatewayError(err); ok {
		if gwErr.StatusCode >= 500 {
			return http.StatusBadGateway
		}
		return gwErr.StatusCode
	}

	return http.StatusInternalServerError
}

// ToErrorCode returns a stable code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	switch {
	case domain.IsValidationError(err):
		return "VALIDATION_FAILED"
	case domain.IsCapacityExceededError(err):
		return "CAPACITY_EXCEEDED"
	case domain.IsConflictError(err), errors.Is(err, domain.ErrStatusConflict):
		return "CONFLICT"
	case errors.Is(err, domain.ErrBookingNotFound):
		return "BOOKING_NOT_FOUND"
	case errors.Is(err, domain.ErrHotelNotFound):
		return "HOTEL_NOT_FOUND"
	}

	if gwErr, ok := IsGatewayError(err); ok {
		return "GATEWAY_" + gwErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return "INTERNAL_ERROR"
}
