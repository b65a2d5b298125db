// Package services orchestrates the booking lifecycle against the store,
// the availability ledger and the payment gateway.
package services

import (
	"log/slog"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/clock"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

const DefaultCancellationWindow = 24 * time.Hour

type BookingService struct {
	store     application.BookingStore
	ledger    application.AvailabilityLedger
	gateway   application.PaymentGateway
	publisher application.Publisher
	clock     clock.Clock
	logger    *slog.Logger

	// cancellationWindow is the minimum lead time before check-in for a
	// guest-initiated cancellation. Admins bypass it.
	cancellationWindow time.Duration
}

func NewBookingService(
	store application.BookingStore,
	ledger application.AvailabilityLedger,
	gateway application.PaymentGateway,
	publisher application.Publisher,
	clk clock.Clock,
	cancellationWindow time.Duration,
	logger *slog.Logger,
) *BookingService {
	if cancellationWindow <= 0 {
		cancellationWindow = DefaultCancellationWindow
	}
	return &BookingService{
		store:              store,
		ledger:             ledger,
		gateway:            gateway,
		publisher:          publisher,
		clock:              clk,
		cancellationWindow: cancellationWindow,
		logger:             logger,
	}
}

func (s *BookingService) publish(b *domain.Booking, from domain.BookingStatus) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.BookingEvent{
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		GuestID:    b.GuestID,
		From:       from,
		To:         b.Status,
		OccurredAt: s.clock.Now(),
	})
}

// refundKey derives the gateway idempotency key for a booking's refund. It is
// stable per cancellation event so a retried call can never produce a second
// refund at the processor.
func refundKey(bookingID string) string {
	return "refund-" + bookingID
}
