package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, 3, 2, 1, 30, 0, 0, loc) // 2026-03-01T20:30Z

	got := DateOf(ts)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestNights(t *testing.T) {
	checkIn := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 3, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, Nights(checkIn, checkOut))
	assert.Equal(t, 0, Nights(checkIn, checkIn))
}

func TestStayDates_CheckOutExclusive(t *testing.T) {
	checkIn := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)

	dates := StayDates(checkIn, checkOut)
	require.Len(t, dates, 3)
	assert.Equal(t, "2026-01-01", DateKey(dates[0]))
	assert.Equal(t, "2026-01-02", DateKey(dates[1]))
	assert.Equal(t, "2026-01-03", DateKey(dates[2]))
}

func TestStayDates_EmptyForInvertedRange(t *testing.T) {
	checkIn := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, StayDates(checkIn, checkIn.AddDate(0, 0, -1)))
	assert.Empty(t, StayDates(checkIn, checkIn))
}
