package services

import (
	"context"
	"errors"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// GetBooking returns a booking with the lazy COMPLETED promotion applied and
// persisted, so every read observes the same derived status.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := s.store.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.promoteIfDue(ctx, booking)
}

// ListBookingsByGuest returns all bookings for one guest, most recent first,
// each with the promotion rule applied.
func (s *BookingService) ListBookingsByGuest(ctx context.Context, guestID string) ([]*domain.Booking, error) {
	bookings, err := s.store.FindBookingsByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	return s.promoteAll(ctx, bookings)
}

// ListAllBookings is the operator view across hotels.
func (s *BookingService) ListAllBookings(ctx context.Context, limit, offset int) ([]*domain.Booking, error) {
	bookings, err := s.store.ListBookings(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.promoteAll(ctx, bookings)
}

func (s *BookingService) promoteAll(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		promoted, err := s.promoteIfDue(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, promoted)
	}
	return out, nil
}

// promoteIfDue applies the single time-based transition rule: a CONFIRMED
// booking whose checkout has passed reads as COMPLETED, and the promotion is
// persisted so subsequent reads agree. Losing the CAS to a concurrent
// promotion or cancellation is fine; the stored state wins.
func (s *BookingService) promoteIfDue(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	now := s.clock.Now()
	if !booking.ShouldComplete(now) {
		return booking, nil
	}

	from := booking.Status
	if err := booking.Complete(now); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBookingStatus(ctx, booking, domain.StatusConfirmed); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return s.store.FindBooking(ctx, booking.ID)
		}
		return nil, application.NewStorageError(err)
	}
	s.publish(booking, from)

	return booking, nil
}
