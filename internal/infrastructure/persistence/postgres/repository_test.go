package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application/services/testhelpers"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/FuriSherpa/hotel-booking-core/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PostgresRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	store  *postgres.BookingRepository
	ledger *postgres.LedgerRepository
}

func TestPostgresRepositorySuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("set RUN_INTEGRATION_TESTS=1 to run container-backed tests")
	}
	suite.Run(t, new(PostgresRepositoryTestSuite))
}

func (suite *PostgresRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.store = postgres.NewBookingRepository(suite.testDB.DB)
	suite.ledger = postgres.NewLedgerRepository(suite.testDB.DB)
}

func (suite *PostgresRepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *PostgresRepositoryTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

var refTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func (suite *PostgresRepositoryTestSuite) seedHotel(totalRooms int) *domain.Hotel {
	return testhelpers.CreateHotel(suite.T(), context.Background(), suite.store, totalRooms, refTime)
}

func (suite *PostgresRepositoryTestSuite) seedBooking(hotel *domain.Hotel, idemKey string) *domain.Booking {
	checkIn := refTime.AddDate(0, 0, 5)
	return testhelpers.CreateConfirmedBooking(
		suite.T(), context.Background(), suite.store,
		hotel, "guest-1", idemKey,
		checkIn, checkIn.AddDate(0, 0, 2), refTime,
	)
}

func (suite *PostgresRepositoryTestSuite) Test_Booking_RoundTrip() {
	ctx := context.Background()
	hotel := suite.seedHotel(5)
	booking := suite.seedBooking(hotel, "idem-1")

	found, err := suite.store.FindBooking(ctx, booking.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), booking.ID, found.ID)
	assert.Equal(suite.T(), domain.StatusConfirmed, found.Status)
	assert.Equal(suite.T(), booking.CheckIn, found.CheckIn)
	assert.Equal(suite.T(), booking.CheckOut, found.CheckOut)
	assert.Equal(suite.T(), booking.TotalCostCents, found.TotalCostCents)

	byKey, err := suite.store.FindBookingByIdempotencyKey(ctx, "idem-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), booking.ID, byKey.ID)
}

func (suite *PostgresRepositoryTestSuite) Test_Booking_DuplicateIdempotencyKey() {
	ctx := context.Background()
	hotel := suite.seedHotel(5)
	suite.seedBooking(hotel, "idem-1")

	checkIn := refTime.AddDate(0, 0, 5)
	dup, err := domain.NewBooking(
		uuid.New().String(), hotel, "guest-2",
		checkIn, checkIn.AddDate(0, 0, 2),
		1, 0, "pi-2", "idem-1", refTime,
	)
	require.NoError(suite.T(), err)

	err = suite.store.CreateBooking(ctx, dup)
	assert.ErrorIs(suite.T(), err, domain.ErrDuplicateIdempotencyKey)
}

func (suite *PostgresRepositoryTestSuite) Test_UpdateBookingStatus_CompareAndSwap() {
	ctx := context.Background()
	hotel := suite.seedHotel(5)
	booking := suite.seedBooking(hotel, "idem-1")

	require.NoError(suite.T(), booking.BeginCancellation("change of plans", refTime))
	require.NoError(suite.T(), suite.store.UpdateBookingStatus(ctx, booking, domain.StatusConfirmed))

	stale := *booking
	stale.Status = domain.StatusCompleted
	err := suite.store.UpdateBookingStatus(ctx, &stale, domain.StatusConfirmed)
	assert.ErrorIs(suite.T(), err, domain.ErrStatusConflict)

	stored, err := suite.store.FindBooking(ctx, booking.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefundPending, stored.Status)
	require.NotNil(suite.T(), stored.CancellationReason)
	assert.Equal(suite.T(), "change of plans", *stored.CancellationReason)
}

func (suite *PostgresRepositoryTestSuite) Test_MarkRoomsReleased() {
	ctx := context.Background()
	hotel := suite.seedHotel(5)
	booking := suite.seedBooking(hotel, "idem-1")

	stored, err := suite.store.FindBooking(ctx, booking.ID)
	require.NoError(suite.T(), err)
	require.False(suite.T(), stored.RoomsReleased)

	require.NoError(suite.T(), suite.store.MarkRoomsReleased(ctx, booking.ID))

	stored, err = suite.store.FindBooking(ctx, booking.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), stored.RoomsReleased)

	err = suite.store.MarkRoomsReleased(ctx, uuid.New().String())
	assert.ErrorIs(suite.T(), err, domain.ErrBookingNotFound)
}

func (suite *PostgresRepositoryTestSuite) Test_Ledger_ReserveAndRelease() {
	ctx := context.Background()
	hotel := suite.seedHotel(1)

	checkIn := refTime.AddDate(0, 0, 5)
	checkOut := checkIn.AddDate(0, 0, 2)

	require.NoError(suite.T(), suite.ledger.Reserve(ctx, hotel.ID, checkIn, checkOut))

	// Second reservation overflows the single room; nothing may be charged.
	err := suite.ledger.Reserve(ctx, hotel.ID, checkIn.AddDate(0, 0, 1), checkOut.AddDate(0, 0, 1))
	require.Error(suite.T(), err)
	assert.True(suite.T(), domain.IsCapacityExceededError(err))

	report, err := suite.ledger.Check(ctx, hotel.ID, checkIn, checkOut.AddDate(0, 0, 1))
	require.NoError(suite.T(), err)
	assert.False(suite.T(), report.Available)
	require.Len(suite.T(), report.PerDate, 3)
	assert.Equal(suite.T(), 0, report.PerDate[0].Remaining)
	assert.Equal(suite.T(), 0, report.PerDate[1].Remaining)
	assert.Equal(suite.T(), 1, report.PerDate[2].Remaining)

	require.NoError(suite.T(), suite.ledger.Release(ctx, hotel.ID, checkIn, checkOut))
	// Releasing again floors at zero instead of going negative.
	require.NoError(suite.T(), suite.ledger.Release(ctx, hotel.ID, checkIn, checkOut))

	report, err = suite.ledger.Check(ctx, hotel.ID, checkIn, checkOut)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), report.Available)
	for _, d := range report.PerDate {
		assert.Equal(suite.T(), 1, d.Remaining)
	}
}

func (suite *PostgresRepositoryTestSuite) Test_SweepQueries() {
	ctx := context.Background()
	hotel := suite.seedHotel(5)

	finished := suite.seedBooking(hotel, "idem-1")
	pending := suite.seedBooking(hotel, "idem-2")

	require.NoError(suite.T(), pending.BeginCancellation("stuck", refTime))
	require.NoError(suite.T(), suite.store.UpdateBookingStatus(ctx, pending, domain.StatusConfirmed))

	afterStay := finished.CheckOut.AddDate(0, 0, 1)

	due, err := suite.store.FindConfirmedCheckedOutBefore(ctx, afterStay, 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), due, 1)
	assert.Equal(suite.T(), finished.ID, due[0].ID)

	stuck, err := suite.store.FindRefundPendingOlderThan(ctx, refTime.Add(time.Hour), 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), stuck, 1)
	assert.Equal(suite.T(), pending.ID, stuck[0].ID)
}
