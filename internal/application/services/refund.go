package services

import (
	"context"
	"errors"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// RetryRefund re-drives the gateway refund for a booking stuck in
// REFUND_FAILED (operator retry) or REFUND_PENDING (crash recovery).
// Retrying an already-REFUNDED booking is a no-op success returning the
// stored refund id.
func (s *BookingService) RetryRefund(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.store.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case domain.StatusRefunded:
		return booking, nil

	case domain.StatusRefundPending:
		// Persisted before the gateway call but never reconciled.
		return s.executeRefund(ctx, booking)

	case domain.StatusRefundFailed:
		from := booking.Status
		if err := booking.ReopenRefund(s.clock.Now()); err != nil {
			return nil, err
		}
		if err := s.store.UpdateBookingStatus(ctx, booking, domain.StatusRefundFailed); err != nil {
			if errors.Is(err, domain.ErrStatusConflict) {
				current, ferr := s.store.FindBooking(ctx, booking.ID)
				if ferr != nil {
					return nil, ferr
				}
				return nil, domain.NewStatusConflictError(current.Status, "refunded")
			}
			return nil, application.NewStorageError(err)
		}
		s.publish(booking, from)
		return s.executeRefund(ctx, booking)

	default:
		return nil, domain.NewStatusConflictError(booking.Status, "refunded")
	}
}

// executeRefund calls the gateway for a booking already persisted in
// REFUND_PENDING and reconciles the outcome. A gateway failure or timeout
// lands the booking in REFUND_FAILED; that is an operator-visible state, not
// an error to the caller. Released room-nights are never re-reserved.
func (s *BookingService) executeRefund(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	// Heal a release that a crash or storage error skipped on an earlier drive.
	s.releaseRooms(ctx, booking)

	resp, err := s.gateway.Refund(ctx, booking.PaymentIntentID, refundKey(booking.ID))
	now := s.clock.Now()

	if err != nil {
		category := string(application.CategorizeError(err))
		s.logger.Warn("gateway refund failed",
			"booking_id", booking.ID,
			"payment_intent_id", booking.PaymentIntentID,
			"category", category,
			"error", err,
		)

		from := booking.Status
		if ferr := booking.FailRefund(category, now); ferr != nil {
			return nil, ferr
		}
		if uerr := s.store.UpdateBookingStatus(ctx, booking, domain.StatusRefundPending); uerr != nil {
			if errors.Is(uerr, domain.ErrStatusConflict) {
				return s.store.FindBooking(ctx, booking.ID)
			}
			return nil, application.NewStorageError(uerr)
		}
		s.publish(booking, from)
		return booking, nil
	}

	from := booking.Status
	if err := booking.ConfirmRefund(resp.RefundID, now); err != nil {
		return nil, err
	}
	if err := s.store.UpdateBookingStatus(ctx, booking, domain.StatusRefundPending); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return s.store.FindBooking(ctx, booking.ID)
		}
		return nil, application.NewStorageError(err)
	}

	s.logger.Info("refund confirmed",
		"booking_id", booking.ID,
		"refund_id", resp.RefundID,
	)
	s.publish(booking, from)

	return booking, nil
}
