package domain

import "time"

// DateOf truncates a timestamp to its UTC calendar date. All ledger math is
// in whole calendar days.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts the room-nights in [checkIn, checkOut). A stay from 01-01 to
// 01-03 is two nights; the guest vacates on the checkout date.
func Nights(checkIn, checkOut time.Time) int {
	return int(DateOf(checkOut).Sub(DateOf(checkIn)).Hours() / 24)
}

// StayDates returns every calendar date the stay occupies, checkOut exclusive.
func StayDates(checkIn, checkOut time.Time) []time.Time {
	start := DateOf(checkIn)
	end := DateOf(checkOut)

	var dates []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DateKey formats a date the way ledger entries are keyed.
func DateKey(t time.Time) string {
	return DateOf(t).Format(time.DateOnly)
}
