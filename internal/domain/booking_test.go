package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testHotel() *Hotel {
	h, err := NewHotel("hotel-1", "owner-1", "Harborview", "Lisbon", 15000, "USD", 10, testNow)
	if err != nil {
		panic(err)
	}
	return h
}

func confirmedBooking(t *testing.T) *Booking {
	t.Helper()
	b, err := NewBooking(
		"bk-1",
		testHotel(),
		"guest-1",
		testNow.AddDate(0, 0, 5),
		testNow.AddDate(0, 0, 8),
		2, 1,
		"pi-1",
		"idem-1",
		testNow,
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking_ComputesCostFromNights(t *testing.T) {
	b := confirmedBooking(t)

	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, 3, b.Nights())
	assert.Equal(t, int64(45000), b.TotalCostCents)
	assert.Equal(t, "USD", b.Currency)
}

func TestValidateStay_Rejections(t *testing.T) {
	checkIn := testNow.AddDate(0, 0, 5)
	checkOut := testNow.AddDate(0, 0, 8)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		adults   int
		children int
		field    string
	}{
		{"checkout equals checkin", checkIn, checkIn, 2, 0, "checkOut"},
		{"checkout before checkin", checkOut, checkIn, 2, 0, "checkOut"},
		{"checkin in the past", testNow.AddDate(0, 0, -1), checkOut, 2, 0, "checkIn"},
		{"no adults", checkIn, checkOut, 0, 0, "adultCount"},
		{"negative children", checkIn, checkOut, 2, -1, "childCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStay(tt.checkIn, tt.checkOut, tt.adults, tt.children, testNow)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateStay_SameDayCheckInAllowed(t *testing.T) {
	err := ValidateStay(testNow, testNow.AddDate(0, 0, 1), 1, 0, testNow)
	assert.NoError(t, err)
}

func TestTransitions_LegalEdges(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusRefundPending, true},
		{StatusConfirmed, StatusRefunded, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusRefundPending, StatusRefunded, true},
		{StatusRefundPending, StatusRefundFailed, true},
		{StatusRefundPending, StatusCompleted, false},
		{StatusRefundFailed, StatusRefundPending, true},
		{StatusRefundFailed, StatusRefunded, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusRefundPending, false},
		{StatusRefunded, StatusRefundPending, false},
		{StatusCancelled, StatusRefundPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.canTransitionTo(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, IsConflictError(err))
			}
		})
	}
}

func TestComplete_IdempotentOnCompleted(t *testing.T) {
	b := confirmedBooking(t)

	later := b.CheckOut.Add(2 * time.Hour)
	require.True(t, b.ShouldComplete(later))
	require.NoError(t, b.Complete(later))
	assert.Equal(t, StatusCompleted, b.Status)

	// Second promotion is a no-op, not an error.
	require.NoError(t, b.Complete(later))
	assert.Equal(t, StatusCompleted, b.Status)
}

func TestShouldComplete_OnlyAfterCheckout(t *testing.T) {
	b := confirmedBooking(t)

	assert.False(t, b.ShouldComplete(b.CheckOut.Add(-time.Minute)))
	assert.False(t, b.ShouldComplete(b.CheckOut))
	assert.True(t, b.ShouldComplete(b.CheckOut.Add(time.Minute)))

	b.Status = StatusRefundPending
	assert.False(t, b.ShouldComplete(b.CheckOut.Add(time.Hour)))
}

func TestBeginCancellation_RecordsReasonAndTime(t *testing.T) {
	b := confirmedBooking(t)

	cancelAt := testNow.Add(time.Hour)
	require.NoError(t, b.BeginCancellation("change of plans", cancelAt))

	assert.Equal(t, StatusRefundPending, b.Status)
	require.NotNil(t, b.CancellationReason)
	assert.Equal(t, "change of plans", *b.CancellationReason)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, cancelAt, *b.CancelledAt)
}

func TestBeginCancellation_RequiresReason(t *testing.T) {
	b := confirmedBooking(t)

	err := b.BeginCancellation("", testNow)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, StatusConfirmed, b.Status)
}

func TestRefundLifecycle(t *testing.T) {
	b := confirmedBooking(t)
	require.NoError(t, b.BeginCancellation("flight cancelled", testNow))

	// Fail, reopen, then confirm.
	require.NoError(t, b.FailRefund("TRANSIENT", testNow))
	assert.Equal(t, StatusRefundFailed, b.Status)
	assert.Equal(t, 1, b.RefundAttempts)
	require.NotNil(t, b.LastErrorCategory)
	assert.Equal(t, "TRANSIENT", *b.LastErrorCategory)

	require.NoError(t, b.ReopenRefund(testNow))
	assert.Equal(t, StatusRefundPending, b.Status)

	require.NoError(t, b.ConfirmRefund("re-999", testNow))
	assert.Equal(t, StatusRefunded, b.Status)
	require.NotNil(t, b.RefundID)
	assert.Equal(t, "re-999", *b.RefundID)
	assert.True(t, b.IsTerminal())
}

func TestIsTerminal(t *testing.T) {
	terminal := []BookingStatus{StatusCompleted, StatusCancelled, StatusRefunded}
	for _, s := range terminal {
		assert.True(t, (&Booking{Status: s}).IsTerminal(), string(s))
	}

	open := []BookingStatus{StatusConfirmed, StatusRefundPending, StatusRefundFailed}
	for _, s := range open {
		assert.False(t, (&Booking{Status: s}).IsTerminal(), string(s))
	}
}
