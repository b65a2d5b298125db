package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateHotel persists a hotel with sensible defaults.
func CreateHotel(t *testing.T, ctx context.Context, store application.BookingStore, totalRooms int, now time.Time) *domain.Hotel {
	t.Helper()

	hotel, err := domain.NewHotel(
		uuid.New().String(),
		"owner-"+uuid.New().String(),
		"Test Hotel",
		"Kathmandu",
		12000, "USD",
		totalRooms,
		now,
	)
	require.NoError(t, err)
	require.NoError(t, store.CreateHotel(ctx, hotel))

	return hotel
}

// CreateConfirmedBooking persists a CONFIRMED booking for the given stay,
// bypassing the service so repository tests control the row exactly.
func CreateConfirmedBooking(
	t *testing.T,
	ctx context.Context,
	store application.BookingStore,
	hotel *domain.Hotel,
	guestID, idempotencyKey string,
	checkIn, checkOut, now time.Time,
) *domain.Booking {
	t.Helper()

	booking, err := domain.NewBooking(
		uuid.New().String(),
		hotel,
		guestID,
		checkIn, checkOut,
		2, 0,
		"pi-"+uuid.New().String(),
		idempotencyKey,
		now,
	)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, booking.Status)
	require.NoError(t, store.CreateBooking(ctx, booking))

	return booking
}

// DefaultCreateCommand returns a valid booking creation command with fresh
// guest and idempotency key.
func DefaultCreateCommand(hotelID string, checkIn, checkOut time.Time) services.CreateBookingCommand {
	return services.CreateBookingCommand{
		HotelID:        hotelID,
		GuestID:        "guest-" + uuid.New().String(),
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		AdultCount:     2,
		ChildCount:     0,
		IdempotencyKey: "idem-" + uuid.New().String(),
	}
}
