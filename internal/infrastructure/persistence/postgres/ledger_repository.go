package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerRepository tracks committed room counts per hotel-night.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Reserve increments the committed count for every night of the stay inside a
// single transaction. If any night is at capacity the whole transaction rolls
// back and no night is charged.
func (r *LedgerRepository) Reserve(ctx context.Context, hotelID string, checkIn, checkOut time.Time) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	totalRooms, err := hotelCapacity(ctx, tx, hotelID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO room_nights (hotel_id, night, committed)
		VALUES ($1, $2, 1)
		ON CONFLICT (hotel_id, night) DO UPDATE
		SET committed = room_nights.committed + 1
		WHERE room_nights.committed < $3
		RETURNING committed
	`

	for _, night := range domain.StayDates(checkIn, checkOut) {
		var committed int
		err := tx.QueryRow(ctx, query, hotelID, night, totalRooms).Scan(&committed)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NewCapacityExceededError(hotelID, night)
			}
			return fmt.Errorf("reserve night %s: %w", domain.DateKey(night), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve transaction: %w", err)
	}
	return nil
}

// Release decrements the committed count for every night of the stay,
// flooring at zero. Releasing nights that were never reserved is a no-op.
func (r *LedgerRepository) Release(ctx context.Context, hotelID string, checkIn, checkOut time.Time) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE room_nights
		SET committed = GREATEST(committed - 1, 0)
		WHERE hotel_id = $1 AND night = $2
	`

	for _, night := range domain.StayDates(checkIn, checkOut) {
		if _, err := tx.Exec(ctx, query, hotelID, night); err != nil {
			return fmt.Errorf("release night %s: %w", domain.DateKey(night), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit release transaction: %w", err)
	}
	return nil
}

// Check reports remaining rooms per night without taking locks. The answer is
// advisory; Reserve is the authority on whether the stay fits.
func (r *LedgerRepository) Check(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (*domain.AvailabilityReport, error) {
	totalRooms, err := hotelCapacity(ctx, r.db.Pool, hotelID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT night, committed
		FROM room_nights
		WHERE hotel_id = $1 AND night >= $2 AND night < $3
	`

	rows, err := r.db.Pool.Query(ctx, query, hotelID, domain.DateOf(checkIn), domain.DateOf(checkOut))
	if err != nil {
		return nil, fmt.Errorf("query room nights: %w", err)
	}
	defer rows.Close()

	committed := make(map[string]int)
	for rows.Next() {
		var night time.Time
		var count int
		if err := rows.Scan(&night, &count); err != nil {
			return nil, fmt.Errorf("scan room night: %w", err)
		}
		committed[domain.DateKey(night)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room nights: %w", err)
	}

	report := &domain.AvailabilityReport{
		HotelID:   hotelID,
		Available: true,
	}
	for _, night := range domain.StayDates(checkIn, checkOut) {
		remaining := totalRooms - committed[domain.DateKey(night)]
		if remaining <= 0 {
			remaining = 0
			report.Available = false
		}
		report.PerDate = append(report.PerDate, domain.DateRemaining{
			Date:      night,
			Remaining: remaining,
		})
	}
	return report, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func hotelCapacity(ctx context.Context, q querier, hotelID string) (int, error) {
	var totalRooms int
	err := q.QueryRow(ctx, `SELECT total_rooms FROM hotels WHERE id = $1`, hotelID).Scan(&totalRooms)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrHotelNotFound
		}
		return 0, fmt.Errorf("load hotel capacity: %w", err)
	}
	return totalRooms, nil
}
