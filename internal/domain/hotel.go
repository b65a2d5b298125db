package domain

import "time"

// Hotel is the aggregate that owns bookings and the room-night ledger for one
// property. Only the fields the booking core needs are modeled here; profile
// data (facilities, images, reviews) lives elsewhere.
type Hotel struct {
	ID      string
	OwnerID string
	Name    string
	City    string

	PricePerNightCents int64
	Currency           string
	TotalRooms         int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewHotel(
	id, ownerID, name, city string,
	pricePerNightCents int64,
	currency string,
	totalRooms int,
	now time.Time,
) (*Hotel, error) {
	if id == "" {
		return nil, NewValidationError("id", "hotel id is required")
	}
	if name == "" {
		return nil, NewValidationError("name", "hotel name is required")
	}
	if pricePerNightCents <= 0 {
		return nil, NewValidationError("pricePerNight", "price per night must be positive")
	}
	if currency == "" {
		return nil, NewValidationError("currency", "currency is required")
	}
	if totalRooms < 1 {
		return nil, NewValidationError("totalRooms", "hotel must have at least one room")
	}

	return &Hotel{
		ID:                 id,
		OwnerID:            ownerID,
		Name:               name,
		City:               city,
		PricePerNightCents: pricePerNightCents,
		Currency:           currency,
		TotalRooms:         totalRooms,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// CostFor returns the frozen total cost for a stay of the given length.
func (h *Hotel) CostFor(nights int) int64 {
	return h.PricePerNightCents * int64(nights)
}
