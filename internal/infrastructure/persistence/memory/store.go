// Package memory holds an in-process implementation of the booking store and
// availability ledger. It backs unit tests and local development runs where
// postgres is not available; semantics mirror the postgres implementation,
// including compare-and-swap status updates and all-or-nothing reservation.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

type Store struct {
	mu sync.Mutex

	hotels   map[string]domain.Hotel
	bookings map[string]domain.Booking
	byIdem   map[string]string

	// committed room-nights keyed by hotel ID, then date key.
	ledger map[string]map[string]int
}

func NewStore() *Store {
	return &Store{
		hotels:   make(map[string]domain.Hotel),
		bookings: make(map[string]domain.Booking),
		byIdem:   make(map[string]string),
		ledger:   make(map[string]map[string]int),
	}
}

func (s *Store) CreateHotel(_ context.Context, hotel *domain.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hotels[hotel.ID] = *hotel
	return nil
}

func (s *Store) FindHotel(_ context.Context, id string) (*domain.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hotels[id]
	if !ok {
		return nil, domain.ErrHotelNotFound
	}
	return &h, nil
}

func (s *Store) CreateBooking(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdem[booking.IdempotencyKey]; exists {
		return domain.ErrDuplicateIdempotencyKey
	}

	s.bookings[booking.ID] = *booking
	s.byIdem[booking.IdempotencyKey] = booking.ID
	return nil
}

func (s *Store) FindBooking(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (s *Store) FindBookingByIdempotencyKey(_ context.Context, key string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byIdem[key]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b := s.bookings[id]
	return &b, nil
}

func (s *Store) FindBookingsByGuest(_ context.Context, guestID string) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*domain.Booking
	for _, b := range s.bookings {
		if b.GuestID == guestID {
			copied := b
			results = append(results, &copied)
		}
	}
	sortNewestFirst(results)
	return results, nil
}

func (s *Store) ListBookings(_ context.Context, limit, offset int) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*domain.Booking
	for _, b := range s.bookings {
		copied := b
		results = append(results, &copied)
	}
	sortNewestFirst(results)

	if offset >= len(results) {
		return nil, nil
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// UpdateBookingStatus applies the new state only when the stored status still
// matches expected, mirroring the conditional UPDATE the postgres store runs.
func (s *Store) UpdateBookingStatus(_ context.Context, booking *domain.Booking, expected domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if stored.Status != expected {
		return domain.ErrStatusConflict
	}

	s.bookings[booking.ID] = *booking
	return nil
}

func (s *Store) MarkRoomsReleased(_ context.Context, bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.RoomsReleased = true
	s.bookings[bookingID] = b
	return nil
}

func (s *Store) FindConfirmedCheckedOutBefore(_ context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*domain.Booking
	for _, b := range s.bookings {
		if b.Status == domain.StatusConfirmed && b.CheckOut.Before(cutoff) {
			copied := b
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CheckOut.Before(results[j].CheckOut)
	})
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func (s *Store) FindRefundPendingOlderThan(_ context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []*domain.Booking
	for _, b := range s.bookings {
		if b.Status != domain.StatusRefundPending || b.CancelledAt == nil {
			continue
		}
		if b.CancelledAt.Before(cutoff) {
			copied := b
			results = append(results, &copied)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CancelledAt.Before(*results[j].CancelledAt)
	})
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

func sortNewestFirst(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
