package application

import (
	"context"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

// PaymentGateway is the port for the external payment processor. Calls carry
// an idempotency key so retries after ambiguous failures are safe.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest, idempotencyKey string) (*IntentResponse, error)
	Refund(ctx context.Context, paymentIntentID string, idempotencyKey string) (*RefundResponse, error)
}

type IntentRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type IntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

type RefundResponse struct {
	RefundID   string    `json:"refund_id"`
	Status     string    `json:"status"`
	RefundedAt time.Time `json:"refunded_at"`
}

// BookingStore is the port for booking and hotel persistence. Status updates
// are compare-and-swap on the stored status: UpdateBookingStatus returns
// domain.ErrStatusConflict when the stored status differs from expected.
type BookingStore interface {
	CreateHotel(ctx context.Context, hotel *domain.Hotel) error
	FindHotel(ctx context.Context, id string) (*domain.Hotel, error)

	CreateBooking(ctx context.Context, booking *domain.Booking) error
	FindBooking(ctx context.Context, id string) (*domain.Booking, error)
	FindBookingByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	FindBookingsByGuest(ctx context.Context, guestID string) ([]*domain.Booking, error)
	ListBookings(ctx context.Context, limit, offset int) ([]*domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error
	MarkRoomsReleased(ctx context.Context, bookingID string) error

	// Sweep queries for the background workers.
	FindConfirmedCheckedOutBefore(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error)
	FindRefundPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error)
}

// AvailabilityLedger is the port for per-hotel, per-date room-night counters.
// Reserve is all-or-nothing across the range; Release floors counters at zero.
type AvailabilityLedger interface {
	Check(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (*domain.AvailabilityReport, error)
	Reserve(ctx context.Context, hotelID string, checkIn, checkOut time.Time) error
	Release(ctx context.Context, hotelID string, checkIn, checkOut time.Time) error
}

// Publisher receives booking state-change events for external subscribers.
type Publisher interface {
	Publish(event domain.BookingEvent)
}
