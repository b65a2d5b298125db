package postgres

import (
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

type bookingModel struct {
	ID      string
	HotelID string
	GuestID string

	CheckIn  time.Time
	CheckOut time.Time

	AdultCount int
	ChildCount int

	TotalCostCents int64
	Currency       string

	PaymentIntentID string
	Status          string

	CancellationReason *string
	RefundID           *string
	Reviewed           bool
	RoomsReleased      bool

	IdempotencyKey string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time

	RefundAttempts    int
	LastErrorCategory *string
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                 b.ID,
		HotelID:            b.HotelID,
		GuestID:            b.GuestID,
		CheckIn:            b.CheckIn,
		CheckOut:           b.CheckOut,
		AdultCount:         b.AdultCount,
		ChildCount:         b.ChildCount,
		TotalCostCents:     b.TotalCostCents,
		Currency:           b.Currency,
		PaymentIntentID:    b.PaymentIntentID,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		RefundID:           b.RefundID,
		Reviewed:           b.Reviewed,
		RoomsReleased:      b.RoomsReleased,
		IdempotencyKey:     b.IdempotencyKey,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
		RefundAttempts:     b.RefundAttempts,
		LastErrorCategory:  b.LastErrorCategory,
	}
}

func (m bookingModel) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:                 m.ID,
		HotelID:            m.HotelID,
		GuestID:            m.GuestID,
		CheckIn:            domain.DateOf(m.CheckIn),
		CheckOut:           domain.DateOf(m.CheckOut),
		AdultCount:         m.AdultCount,
		ChildCount:         m.ChildCount,
		TotalCostCents:     m.TotalCostCents,
		Currency:           m.Currency,
		PaymentIntentID:    m.PaymentIntentID,
		Status:             domain.BookingStatus(m.Status),
		CancellationReason: m.CancellationReason,
		RefundID:           m.RefundID,
		Reviewed:           m.Reviewed,
		RoomsReleased:      m.RoomsReleased,
		IdempotencyKey:     m.IdempotencyKey,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
		RefundAttempts:     m.RefundAttempts,
		LastErrorCategory:  m.LastErrorCategory,
	}
}

type hotelModel struct {
	ID                 string
	OwnerID            string
	Name               string
	City               string
	PricePerNightCents int64
	Currency           string
	TotalRooms         int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (m hotelModel) toDomain() *domain.Hotel {
	return &domain.Hotel{
		ID:                 m.ID,
		OwnerID:            m.OwnerID,
		Name:               m.Name,
		City:               m.City,
		PricePerNightCents: m.PricePerNightCents,
		Currency:           m.Currency,
		TotalRooms:         m.TotalRooms,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
