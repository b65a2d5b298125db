package services

import (
	"context"
	"time"
)

// SweepCompleted batch-promotes CONFIRMED bookings whose checkout date has
// passed, using the same transition as the lazy read path. Returns how many
// bookings were promoted.
func (s *BookingService) SweepCompleted(ctx context.Context, limit int) (int, error) {
	due, err := s.store.FindConfirmedCheckedOutBefore(ctx, s.clock.Now(), limit)
	if err != nil {
		return 0, err
	}

	var promoted int
	for _, booking := range due {
		before := booking.Status
		updated, err := s.promoteIfDue(ctx, booking)
		if err != nil {
			s.logger.Error("failed to promote booking",
				"booking_id", booking.ID,
				"error", err,
			)
			continue
		}
		if before != updated.Status {
			promoted++
		}
	}
	return promoted, nil
}

// SweepStuckRefunds re-drives the gateway call for bookings that persisted
// REFUND_PENDING but never reconciled, i.e. a crash between the durable
// transition and the gateway response. Returns how many were re-driven.
func (s *BookingService) SweepStuckRefunds(ctx context.Context, olderThan time.Duration, maxAttempts, limit int) (int, error) {
	cutoff := s.clock.Now().Add(-olderThan)
	stuck, err := s.store.FindRefundPendingOlderThan(ctx, cutoff, limit)
	if err != nil {
		return 0, err
	}

	var driven int
	for _, booking := range stuck {
		if maxAttempts > 0 && booking.RefundAttempts >= maxAttempts {
			continue
		}
		if _, err := s.executeRefund(ctx, booking); err != nil {
			s.logger.Error("failed to re-drive refund",
				"booking_id", booking.ID,
				"error", err,
			)
			continue
		}
		driven++
	}
	return driven, nil
}
