package memory

import (
	"context"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// Reserve commits every night of the stay or none of them. The capacity check
// and the increments happen under one lock, so concurrent reservations can
// never push a night past the hotel's room count.
func (s *Store) Reserve(_ context.Context, hotelID string, checkIn, checkOut time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[hotelID]
	if !ok {
		return domain.ErrHotelNotFound
	}

	nights := s.ledger[hotelID]
	if nights == nil {
		nights = make(map[string]int)
		s.ledger[hotelID] = nights
	}

	dates := domain.StayDates(checkIn, checkOut)
	for _, night := range dates {
		if nights[domain.DateKey(night)] >= hotel.TotalRooms {
			return domain.NewCapacityExceededError(hotelID, night)
		}
	}
	for _, night := range dates {
		nights[domain.DateKey(night)]++
	}
	return nil
}

// Release decrements every night of the stay, flooring at zero.
func (s *Store) Release(_ context.Context, hotelID string, checkIn, checkOut time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nights := s.ledger[hotelID]
	if nights == nil {
		return nil
	}

	for _, night := range domain.StayDates(checkIn, checkOut) {
		key := domain.DateKey(night)
		if nights[key] > 0 {
			nights[key]--
		}
	}
	return nil
}

func (s *Store) Check(_ context.Context, hotelID string, checkIn, checkOut time.Time) (*domain.AvailabilityReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hotel, ok := s.hotels[hotelID]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}

	nights := s.ledger[hotelID]

	report := &domain.AvailabilityReport{
		HotelID:   hotelID,
		Available: true,
	}
	for _, night := range domain.StayDates(checkIn, checkOut) {
		remaining := hotel.TotalRooms - nights[domain.DateKey(night)]
		if remaining <= 0 {
			remaining = 0
			report.Available = false
		}
		report.PerDate = append(report.PerDate, domain.DateRemaining{
			Date:      night,
			Remaining: remaining,
		})
	}
	return report, nil
}

// Committed reports the committed count for a single hotel-night. Test helper.
func (s *Store) Committed(hotelID string, date time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger[hotelID][domain.DateKey(date)]
}
