package domain

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError is a business rule violated before any state mutation.
// Never retried automatically; surfaced to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError means the entity's current state disallows the requested
// transition. The caller must re-fetch current state before retrying.
type ConflictError struct {
	Current   BookingStatus
	Requested BookingStatus
	Message   string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cannot transition from %s to %s", e.Current, e.Requested)
}

func NewInvalidTransitionError(from, to BookingStatus) *ConflictError {
	return &ConflictError{Current: from, Requested: to}
}

// NewStatusConflictError names the current status so callers can see which
// state blocked them, e.g. cancelling an already-refunded booking.
func NewStatusConflictError(current BookingStatus, operation string) *ConflictError {
	return &ConflictError{
		Current: current,
		Message: fmt.Sprintf("booking cannot be %s - current status: %s", operation, current),
	}
}

func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// CapacityExceededError means the availability ledger could not commit the
// full date range. No partial reservation remains.
type CapacityExceededError struct {
	HotelID string
	Date    time.Time
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("hotel %s is fully booked on %s", e.HotelID, DateKey(e.Date))
}

func NewCapacityExceededError(hotelID string, date time.Time) *CapacityExceededError {
	return &CapacityExceededError{HotelID: hotelID, Date: date}
}

func IsCapacityExceededError(err error) bool {
	var ce *CapacityExceededError
	return errors.As(err, &ce)
}

// Not-found sentinels shared by every store implementation.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrHotelNotFound   = errors.New("hotel not found")

	// ErrStatusConflict is returned by stores when a compare-and-swap status
	// update observes a different current status than expected.
	ErrStatusConflict = errors.New("booking status changed concurrently")

	// ErrDuplicateIdempotencyKey is returned by stores when a booking with the
	// same creation idempotency key already exists.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already exists")
)
