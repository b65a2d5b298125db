package services

import (
	"context"
	"errors"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/google/uuid"
)

// CreateBooking runs the creation flow in this order: validate, check
// capacity, create the payment intent, reserve room-nights, persist. The
// gateway call happens before the ledger commit so an intent failure never
// leaves a ghost reservation; the ledger commit happens before persistence so
// a persistence failure is the only partial-failure mode, and it is undone
// here so a retry with the same idempotency key is safe.
func (s *BookingService) CreateBooking(ctx context.Context, cmd CreateBookingCommand) (*domain.Booking, error) {
	if cmd.IdempotencyKey == "" {
		return nil, domain.NewValidationError("idempotencyKey", "idempotency key is required")
	}
	if cmd.GuestID == "" {
		return nil, domain.NewValidationError("guestId", "guest id is required")
	}

	if existing, err := s.store.FindBookingByIdempotencyKey(ctx, cmd.IdempotencyKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, application.NewStorageError(err)
	}

	now := s.clock.Now()
	if err := domain.ValidateStay(cmd.CheckIn, cmd.CheckOut, cmd.AdultCount, cmd.ChildCount, now); err != nil {
		return nil, err
	}

	hotel, err := s.store.FindHotel(ctx, cmd.HotelID)
	if err != nil {
		return nil, err
	}

	report, err := s.ledger.Check(ctx, hotel.ID, cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, application.NewStorageError(err)
	}
	if !report.Available {
		for _, d := range report.PerDate {
			if d.Remaining <= 0 {
				return nil, domain.NewCapacityExceededError(hotel.ID, d.Date)
			}
		}
		return nil, domain.NewCapacityExceededError(hotel.ID, domain.DateOf(cmd.CheckIn))
	}

	nights := domain.Nights(cmd.CheckIn, cmd.CheckOut)
	intent, err := s.gateway.CreateIntent(ctx, application.IntentRequest{
		AmountCents: hotel.CostFor(nights),
		Currency:    hotel.Currency,
		Metadata: map[string]string{
			"hotel_id": hotel.ID,
			"guest_id": cmd.GuestID,
		},
	}, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Reserve(ctx, hotel.ID, cmd.CheckIn, cmd.CheckOut); err != nil {
		return nil, err
	}

	booking, err := domain.NewBooking(
		uuid.New().String(),
		hotel,
		cmd.GuestID,
		cmd.CheckIn,
		cmd.CheckOut,
		cmd.AdultCount,
		cmd.ChildCount,
		intent.IntentID,
		cmd.IdempotencyKey,
		now,
	)
	if err != nil {
		s.releaseQuietly(ctx, hotel.ID, cmd.CheckIn, cmd.CheckOut)
		return nil, err
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		s.releaseQuietly(ctx, hotel.ID, cmd.CheckIn, cmd.CheckOut)

		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			// Lost a race with a concurrent submission of the same key.
			return s.store.FindBookingByIdempotencyKey(ctx, cmd.IdempotencyKey)
		}
		return nil, application.NewStorageError(err)
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"hotel_id", booking.HotelID,
		"check_in", domain.DateKey(booking.CheckIn),
		"check_out", domain.DateKey(booking.CheckOut),
		"total_cost_cents", booking.TotalCostCents,
	)
	s.publish(booking, "")

	return booking, nil
}

// releaseQuietly undoes a reservation on a failed creation. A failed release
// only over-counts commitment; it never oversells, so log and move on.
func (s *BookingService) releaseQuietly(ctx context.Context, hotelID string, checkIn, checkOut time.Time) {
	if err := s.ledger.Release(ctx, hotelID, checkIn, checkOut); err != nil {
		s.logger.Error("failed to release room-nights after aborted creation",
			"hotel_id", hotelID,
			"check_in", domain.DateKey(checkIn),
			"check_out", domain.DateKey(checkOut),
			"error", err,
		)
	}
}
