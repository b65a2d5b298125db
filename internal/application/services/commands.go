package services

import "time"

type CreateBookingCommand struct {
	HotelID    string
	GuestID    string
	CheckIn    time.Time
	CheckOut   time.Time
	AdultCount int
	ChildCount int

	// IdempotencyKey makes a re-submitted creation attempt return the
	// original booking instead of double-reserving.
	IdempotencyKey string
}

type CancelBookingCommand struct {
	BookingID   string
	RequesterID string
	IsAdmin     bool
	Reason      string
}

type CreateHotelCommand struct {
	OwnerID            string
	Name               string
	City               string
	PricePerNightCents int64
	Currency           string
	TotalRooms         int
}
