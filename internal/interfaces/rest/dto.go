package rest

import (
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

type CreateHotelRequest struct {
	Name               string `json:"name" binding:"required"`
	City               string `json:"city" binding:"required"`
	PricePerNightCents int64  `json:"price_per_night_cents" binding:"required"`
	Currency           string `json:"currency" binding:"required"`
	TotalRooms         int    `json:"total_rooms" binding:"required"`
}

type CreateBookingRequest struct {
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	AdultCount int    `json:"adult_count" binding:"required"`
	ChildCount int    `json:"child_count"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type HotelResponse struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	Currency           string    `json:"currency"`
	TotalRooms         int       `json:"total_rooms"`
	CreatedAt          time.Time `json:"created_at"`
}

type BookingResponse struct {
	ID              string  `json:"id"`
	HotelID         string  `json:"hotel_id"`
	GuestID         string  `json:"guest_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	AdultCount      int     `json:"adult_count"`
	ChildCount      int     `json:"child_count"`
	TotalCostCents  int64   `json:"total_cost_cents"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	CancelReason    *string `json:"cancellation_reason,omitempty"`
	RefundID        *string `json:"refund_id,omitempty"`
	RefundAttempts  int     `json:"refund_attempts,omitempty"`
	PaymentIntentID string  `json:"payment_intent_id"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type AvailabilityResponse struct {
	HotelID   string          `json:"hotel_id"`
	Available bool            `json:"available"`
	PerDate   []DateRemaining `json:"per_date"`
}

type DateRemaining struct {
	Date      string `json:"date"`
	Remaining int    `json:"remaining"`
}

func toHotelResponse(h *domain.Hotel) HotelResponse {
	return HotelResponse{
		ID:                 h.ID,
		OwnerID:            h.OwnerID,
		Name:               h.Name,
		City:               h.City,
		PricePerNightCents: h.PricePerNightCents,
		Currency:           h.Currency,
		TotalRooms:         h.TotalRooms,
		CreatedAt:          h.CreatedAt,
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		HotelID:         b.HotelID,
		GuestID:         b.GuestID,
		CheckIn:         domain.DateKey(b.CheckIn),
		CheckOut:        domain.DateKey(b.CheckOut),
		AdultCount:      b.AdultCount,
		ChildCount:      b.ChildCount,
		TotalCostCents:  b.TotalCostCents,
		Currency:        b.Currency,
		Status:          string(b.Status),
		CancelReason:    b.CancellationReason,
		RefundID:        b.RefundID,
		RefundAttempts:  b.RefundAttempts,
		PaymentIntentID: b.PaymentIntentID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CancelledAt:     b.CancelledAt,
	}
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toAvailabilityResponse(r *domain.AvailabilityReport) AvailabilityResponse {
	resp := AvailabilityResponse{
		HotelID:   r.HotelID,
		Available: r.Available,
		PerDate:   make([]DateRemaining, 0, len(r.PerDate)),
	}
	for _, d := range r.PerDate {
		resp.PerDate = append(resp.PerDate, DateRemaining{
			Date:      domain.DateKey(d.Date),
			Remaining: d.Remaining,
		})
	}
	return resp
}
