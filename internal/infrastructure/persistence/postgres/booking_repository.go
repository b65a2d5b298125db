package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `
	id, hotel_id, guest_id, check_in, check_out,
	adult_count, child_count, total_cost_cents, currency,
	payment_intent_id, status, cancellation_reason, refund_id, reviewed,
	rooms_released, idempotency_key, created_at, updated_at, cancelled_at,
	refund_attempts, last_error_category`

type BookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) CreateHotel(ctx context.Context, hotel *domain.Hotel) error {
	query := `
		INSERT INTO hotels (
			id, owner_id, name, city, price_per_night_cents, currency,
			total_rooms, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		hotel.ID,
		hotel.OwnerID,
		hotel.Name,
		hotel.City,
		hotel.PricePerNightCents,
		hotel.Currency,
		hotel.TotalRooms,
		hotel.CreatedAt,
		hotel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindHotel(ctx context.Context, id string) (*domain.Hotel, error) {
	query := `
		SELECT id, owner_id, name, city, price_per_night_cents, currency,
		       total_rooms, created_at, updated_at
		FROM hotels WHERE id = $1
	`

	var m hotelModel
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.OwnerID, &m.Name, &m.City, &m.PricePerNightCents, &m.Currency,
		&m.TotalRooms, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to scan hotel: %w", err)
	}
	return m.toDomain(), nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		          $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		          $21)
	`

	m := toBookingModel(booking)
	_, err := r.db.Pool.Exec(ctx, query,
		m.ID, m.HotelID, m.GuestID, m.CheckIn, m.CheckOut,
		m.AdultCount, m.ChildCount, m.TotalCostCents, m.Currency,
		m.PaymentIntentID, m.Status, m.CancellationReason, m.RefundID, m.Reviewed,
		m.RoomsReleased, m.IdempotencyKey, m.CreatedAt, m.UpdatedAt, m.CancelledAt,
		m.RefundAttempts, m.LastErrorCategory,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindBooking(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *BookingRepository) FindBookingByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE idempotency_key = $1`
	return scanBooking(r.db.Pool.QueryRow(ctx, query, key))
}

func (r *BookingRepository) FindBookingsByGuest(ctx context.Context, guestID string) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings WHERE guest_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, guestID)
	if err != nil {
		return nil, fmt.Errorf("query bookings by guest: %w", err)
	}
	return collectBookings(rows)
}

func (r *BookingRepository) ListBookings(ctx context.Context, limit, offset int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	return collectBookings(rows)
}

// UpdateBookingStatus persists a computed transition with compare-and-swap on
// the stored status. Zero rows affected means another writer got there first.
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1,
		    cancellation_reason = $2, refund_id = $3,
		    cancelled_at = $4, updated_at = $5,
		    refund_attempts = $6, last_error_category = $7
		WHERE id = $8 AND status = $9
	`

	m := toBookingModel(booking)
	tag, err := r.db.Pool.Exec(ctx, query,
		m.Status,
		m.CancellationReason, m.RefundID,
		m.CancelledAt, m.UpdatedAt,
		m.RefundAttempts, m.LastErrorCategory,
		m.ID, string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, ferr := r.FindBooking(ctx, booking.ID); errors.Is(ferr, domain.ErrBookingNotFound) {
			return domain.ErrBookingNotFound
		}
		return domain.ErrStatusConflict
	}
	return nil
}

// MarkRoomsReleased records that the booking's room-nights went back to the
// ledger. Set only after a successful release; recovery paths consult it
// before decrementing again.
func (r *BookingRepository) MarkRoomsReleased(ctx context.Context, bookingID string) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE bookings SET rooms_released = TRUE WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to mark rooms released: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// FindConfirmedCheckedOutBefore feeds the completion sweep.
func (r *BookingRepository) FindConfirmedCheckedOutBefore(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'CONFIRMED' AND check_out < $1
		ORDER BY check_out ASC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query confirmed checked-out bookings: %w", err)
	}
	return collectBookings(rows)
}

// FindRefundPendingOlderThan feeds the stuck-refund sweep.
func (r *BookingRepository) FindRefundPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'REFUND_PENDING' AND cancelled_at < $1
		ORDER BY cancelled_at ASC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query stuck refunds: %w", err)
	}
	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var m bookingModel
	err := row.Scan(
		&m.ID, &m.HotelID, &m.GuestID, &m.CheckIn, &m.CheckOut,
		&m.AdultCount, &m.ChildCount, &m.TotalCostCents, &m.Currency,
		&m.PaymentIntentID, &m.Status, &m.CancellationReason, &m.RefundID, &m.Reviewed,
		&m.RoomsReleased, &m.IdempotencyKey, &m.CreatedAt, &m.UpdatedAt, &m.CancelledAt,
		&m.RefundAttempts, &m.LastErrorCategory,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}
	return m.toDomain(), nil
}

func collectBookings(rows pgx.Rows) ([]*domain.Booking, error) {
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Booking, error) {
		var m bookingModel
		err := row.Scan(
			&m.ID, &m.HotelID, &m.GuestID, &m.CheckIn, &m.CheckOut,
			&m.AdultCount, &m.ChildCount, &m.TotalCostCents, &m.Currency,
			&m.PaymentIntentID, &m.Status, &m.CancellationReason, &m.RefundID, &m.Reviewed,
			&m.RoomsReleased, &m.IdempotencyKey, &m.CreatedAt, &m.UpdatedAt, &m.CancelledAt,
			&m.RefundAttempts, &m.LastErrorCategory,
		)
		return m.toDomain(), err
	})
	if err != nil {
		return nil, fmt.Errorf("scan bookings: %w", err)
	}
	return results, nil
}
