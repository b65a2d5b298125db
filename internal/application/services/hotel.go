package services

import (
	"context"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/google/uuid"
)

// CreateHotel registers a property with its capacity ceiling. The ledger
// creates per-date entries lazily, so nothing else is provisioned here.
func (s *BookingService) CreateHotel(ctx context.Context, cmd CreateHotelCommand) (*domain.Hotel, error) {
	hotel, err := domain.NewHotel(
		uuid.New().String(),
		cmd.OwnerID,
		cmd.Name,
		cmd.City,
		cmd.PricePerNightCents,
		cmd.Currency,
		cmd.TotalRooms,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateHotel(ctx, hotel); err != nil {
		return nil, application.NewStorageError(err)
	}

	s.logger.Info("hotel created",
		"hotel_id", hotel.ID,
		"total_rooms", hotel.TotalRooms,
	)
	return hotel, nil
}

func (s *BookingService) GetHotel(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	return s.store.FindHotel(ctx, hotelID)
}
