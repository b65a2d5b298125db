package domain

import "time"

// BookingEvent is emitted after every persisted status transition so an
// external notifier can subscribe. The core never sends notifications itself.
type BookingEvent struct {
	BookingID  string
	HotelID    string
	GuestID    string
	From       BookingStatus
	To         BookingStatus
	OccurredAt time.Time
}

// AvailabilityReport answers a capacity query for a date range.
type AvailabilityReport struct {
	HotelID   string
	Available bool
	PerDate   []DateRemaining
}

// DateRemaining is the number of uncommitted rooms for one calendar date.
type DateRemaining struct {
	Date      time.Time
	Remaining int
}
