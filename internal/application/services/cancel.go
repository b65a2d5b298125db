package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// CancelBooking moves a CONFIRMED booking into REFUND_PENDING, releases its
// room-nights, and then drives the gateway refund. The REFUND_PENDING state
// is persisted before the gateway call so a crash in between leaves the
// booking visible and retryable, never silently lost.
func (s *BookingService) CancelBooking(ctx context.Context, cmd CancelBookingCommand) (*domain.Booking, error) {
	if cmd.Reason == "" {
		return nil, domain.NewValidationError("cancellationReason", "cancellation reason is required")
	}

	booking, err := s.store.FindBooking(ctx, cmd.BookingID)
	if err != nil {
		return nil, err
	}

	// A completed stay cannot be cancelled; apply the promotion rule first.
	booking, err = s.promoteIfDue(ctx, booking)
	if err != nil {
		return nil, err
	}

	if booking.GuestID != cmd.RequesterID && !cmd.IsAdmin {
		return nil, application.NewForbiddenError("booking belongs to a different guest")
	}

	if booking.Status != domain.StatusConfirmed {
		return nil, domain.NewStatusConflictError(booking.Status, "cancelled")
	}

	now := s.clock.Now()
	if !cmd.IsAdmin {
		if booking.CheckIn.Sub(now) < s.cancellationWindow {
			return nil, domain.NewValidationError("checkIn",
				fmt.Sprintf("cancellation is only allowed up to %s before check-in", s.cancellationWindow))
		}
	}

	from := booking.Status
	if err := booking.BeginCancellation(cmd.Reason, now); err != nil {
		return nil, err
	}

	// CAS on CONFIRMED: of two concurrent cancellations exactly one wins, so
	// the range below is released exactly once.
	if err := s.store.UpdateBookingStatus(ctx, booking, domain.StatusConfirmed); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			current, ferr := s.store.FindBooking(ctx, booking.ID)
			if ferr != nil {
				return nil, ferr
			}
			return nil, domain.NewStatusConflictError(current.Status, "cancelled")
		}
		return nil, application.NewStorageError(err)
	}
	s.publish(booking, from)

	s.logger.Info("booking cancellation accepted",
		"booking_id", booking.ID,
		"requester_id", cmd.RequesterID,
		"is_admin", cmd.IsAdmin,
	)

	return s.executeRefund(ctx, booking)
}

// releaseRooms returns the booking's room-nights to the ledger and persists
// the released flag so later drives of the same booking skip the decrement.
func (s *BookingService) releaseRooms(ctx context.Context, booking *domain.Booking) {
	if booking.RoomsReleased {
		return
	}

	if err := s.ledger.Release(ctx, booking.HotelID, booking.CheckIn, booking.CheckOut); err != nil {
		// The nights stay committed until the next drive of this refund.
		s.logger.Error("failed to release room-nights",
			"booking_id", booking.ID,
			"hotel_id", booking.HotelID,
			"error", err,
		)
		return
	}

	booking.RoomsReleased = true
	if err := s.store.MarkRoomsReleased(ctx, booking.ID); err != nil {
		s.logger.Error("failed to record room-night release",
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
