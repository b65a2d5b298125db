package services

import (
	"context"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// CheckAvailability reports whether the full range can be committed and the
// remaining rooms per date. A single fully-booked date makes the whole range
// unavailable.
func (s *BookingService) CheckAvailability(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (*domain.AvailabilityReport, error) {
	if !domain.DateOf(checkOut).After(domain.DateOf(checkIn)) {
		return nil, domain.NewValidationError("checkOut", "check-out must be after check-in")
	}

	if _, err := s.store.FindHotel(ctx, hotelID); err != nil {
		return nil, err
	}

	report, err := s.ledger.Check(ctx, hotelID, checkIn, checkOut)
	if err != nil {
		return nil, application.NewStorageError(err)
	}
	return report, nil
}
