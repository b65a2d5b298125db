// Package domain encodes the booking lifecycle and its invariants.
package domain

import (
	"slices"
	"time"
)

// BookingStatus represents the current state of a booking in its lifecycle
type BookingStatus string

const (
	StatusConfirmed     BookingStatus = "CONFIRMED"
	StatusCompleted     BookingStatus = "COMPLETED"
	StatusCancelled     BookingStatus = "CANCELLED"
	StatusRefundPending BookingStatus = "REFUND_PENDING"
	StatusRefunded      BookingStatus = "REFUNDED"
	StatusRefundFailed  BookingStatus = "REFUND_FAILED"
)

type Booking struct {
	ID      string
	HotelID string
	GuestID string

	CheckIn  time.Time
	CheckOut time.Time

	AdultCount int
	ChildCount int

	TotalCostCents int64
	Currency       string

	PaymentIntentID string
	Status          BookingStatus

	CancellationReason *string
	RefundID           *string
	Reviewed           bool

	// RoomsReleased records that the cancelled stay's room-nights were
	// returned to the ledger, so recovery never decrements them twice.
	RoomsReleased bool

	IdempotencyKey string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time

	RefundAttempts    int
	LastErrorCategory *string
}

// ValidateStay checks the stay parameters before any state mutation or
// external call is made.
func ValidateStay(checkIn, checkOut time.Time, adultCount, childCount int, now time.Time) error {
	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)
	if !checkOut.After(checkIn) {
		return NewValidationError("checkOut", "check-out must be after check-in")
	}
	if checkIn.Before(DateOf(now)) {
		return NewValidationError("checkIn", "check-in date is in the past")
	}
	if adultCount < 1 {
		return NewValidationError("adultCount", "at least one adult is required")
	}
	if childCount < 0 {
		return NewValidationError("childCount", "child count cannot be negative")
	}
	return nil
}

// NewBooking validates the stay parameters and returns a CONFIRMED booking.
// checkIn/checkOut are calendar dates; checkOut is exclusive.
func NewBooking(
	id string,
	hotel *Hotel,
	guestID string,
	checkIn, checkOut time.Time,
	adultCount, childCount int,
	paymentIntentID string,
	idempotencyKey string,
	now time.Time,
) (*Booking, error) {
	if id == "" {
		return nil, NewValidationError("id", "booking id is required")
	}
	if guestID == "" {
		return nil, NewValidationError("guestId", "guest id is required")
	}
	if paymentIntentID == "" {
		return nil, NewValidationError("paymentIntentId", "payment intent id is required")
	}
	if err := ValidateStay(checkIn, checkOut, adultCount, childCount, now); err != nil {
		return nil, err
	}
	checkIn = DateOf(checkIn)
	checkOut = DateOf(checkOut)

	nights := Nights(checkIn, checkOut)
	return &Booking{
		ID:              id,
		HotelID:         hotel.ID,
		GuestID:         guestID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		AdultCount:      adultCount,
		ChildCount:      childCount,
		TotalCostCents:  hotel.PricePerNightCents * int64(nights),
		Currency:        hotel.Currency,
		PaymentIntentID: paymentIntentID,
		Status:          StatusConfirmed,
		IdempotencyKey:  idempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (b *Booking) Nights() int {
	return Nights(b.CheckIn, b.CheckOut)
}

// ShouldComplete reports whether the stay is over and the booking is due for
// promotion to COMPLETED. Every read path must apply this before returning
// the booking.
func (b *Booking) ShouldComplete(now time.Time) bool {
	return b.Status == StatusConfirmed && now.After(b.CheckOut)
}

// Complete promotes a CONFIRMED booking whose checkout date has passed.
// Promoting an already-completed booking is a no-op.
func (b *Booking) Complete(now time.Time) error {
	if b.Status == StatusCompleted {
		return nil
	}
	if err := b.transition(StatusCompleted); err != nil {
		return err
	}
	b.UpdatedAt = now
	return nil
}

// BeginCancellation moves a CONFIRMED booking into REFUND_PENDING and records
// the cancellation details. The caller is responsible for persisting this
// state durably before the gateway refund is requested.
func (b *Booking) BeginCancellation(reason string, now time.Time) error {
	if reason == "" {
		return NewValidationError("cancellationReason", "cancellation reason is required")
	}
	if err := b.transition(StatusRefundPending); err != nil {
		return err
	}
	b.CancellationReason = &reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// ConfirmRefund records a refund confirmed by the payment gateway.
func (b *Booking) ConfirmRefund(refundID string, now time.Time) error {
	if err := b.transition(StatusRefunded); err != nil {
		return err
	}
	b.RefundID = &refundID
	b.UpdatedAt = now
	return nil
}

// FailRefund records a failed or timed-out gateway refund. The booking stays
// operator-visible and retryable; released room-nights are not re-reserved.
func (b *Booking) FailRefund(errorCategory string, now time.Time) error {
	if err := b.transition(StatusRefundFailed); err != nil {
		return err
	}
	b.RefundAttempts++
	b.LastErrorCategory = &errorCategory
	b.UpdatedAt = now
	return nil
}

// ReopenRefund moves a REFUND_FAILED booking back to REFUND_PENDING for an
// operator-initiated retry.
func (b *Booking) ReopenRefund(now time.Time) error {
	if err := b.transition(StatusRefundPending); err != nil {
		return err
	}
	b.UpdatedAt = now
	return nil
}

func (b *Booking) transition(target BookingStatus) error {
	if err := b.canTransitionTo(target); err != nil {
		return err
	}
	b.Status = target
	return nil
}

// canTransitionTo defines the legal edges of the lifecycle. CANCELLED is kept
// as a recognized terminal status for historical records but is never a
// transition target: cancellation always goes through REFUND_PENDING.
func (b *Booking) canTransitionTo(target BookingStatus) error {
	switch b.Status {
	case StatusConfirmed:
		return b.allow(target, StatusCompleted, StatusRefundPending)
	case StatusRefundPending:
		return b.allow(target, StatusRefunded, StatusRefundFailed)
	case StatusRefundFailed:
		return b.allow(target, StatusRefundPending)
	}
	return NewInvalidTransitionError(b.Status, target)
}

func (b *Booking) allow(target BookingStatus, allowed ...BookingStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(b.Status, target)
}

// IsTerminal reports whether no further transitions are possible.
// REFUND_FAILED is terminal-for-now: only an operator retry leaves it.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}
