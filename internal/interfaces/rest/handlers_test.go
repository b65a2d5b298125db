package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
	"github.com/FuriSherpa/hotel-booking-core/internal/clock"
	"github.com/FuriSherpa/hotel-booking-core/internal/config"
	"github.com/FuriSherpa/hotel-booking-core/internal/infrastructure/persistence/memory"
	"github.com/FuriSherpa/hotel-booking-core/internal/interfaces/rest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testStart = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine
	clk    *clock.Fake
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	store := memory.NewStore()
	suite.clk = clock.NewFake(testStart)
	logger := slog.New(slog.DiscardHandler)

	service := services.NewBookingService(
		store,
		store,
		services.NewMockGateway(),
		nil,
		suite.clk,
		24*time.Hour,
		logger,
	)

	suite.router = rest.NewRouter(rest.NewHandlers(service, logger), config.ServerConfig{
		Port:         "8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}, logger)
}

func (suite *HandlersTestSuite) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func guestHeaders(userID string) map[string]string {
	return map[string]string{"X-User-ID": userID}
}

func adminHeaders(userID string) map[string]string {
	return map[string]string{"X-User-ID": userID, "X-Admin": "true"}
}

func (suite *HandlersTestSuite) createHotel() string {
	rec := suite.do(http.MethodPost, "/api/hotels", rest.CreateHotelRequest{
		Name:               "Harborview",
		City:               "Lisbon",
		PricePerNightCents: 15000,
		Currency:           "USD",
		TotalRooms:         3,
	}, guestHeaders("owner-1"))
	require.Equal(suite.T(), http.StatusCreated, rec.Code)

	var resp rest.HotelResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func (suite *HandlersTestSuite) createBooking(hotelID, guestID, idemKey string) rest.BookingResponse {
	headers := guestHeaders(guestID)
	headers["Idempotency-Key"] = idemKey

	rec := suite.do(http.MethodPost, "/api/hotels/"+hotelID+"/bookings", rest.CreateBookingRequest{
		CheckIn:    "2026-03-06",
		CheckOut:   "2026-03-08",
		AdultCount: 2,
	}, headers)
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())

	var resp rest.BookingResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (suite *HandlersTestSuite) Test_CreateBooking_FullFlow() {
	hotelID := suite.createHotel()
	booking := suite.createBooking(hotelID, "guest-1", "idem-1")

	assert.Equal(suite.T(), "CONFIRMED", booking.Status)
	assert.Equal(suite.T(), "2026-03-06", booking.CheckIn)
	assert.Equal(suite.T(), int64(30000), booking.TotalCostCents)
}

func (suite *HandlersTestSuite) Test_CreateBooking_RequiresIdentity() {
	hotelID := suite.createHotel()

	rec := suite.do(http.MethodPost, "/api/hotels/"+hotelID+"/bookings", rest.CreateBookingRequest{
		CheckIn:    "2026-03-06",
		CheckOut:   "2026-03-08",
		AdultCount: 2,
	}, map[string]string{"Idempotency-Key": "idem-1"})

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *HandlersTestSuite) Test_CreateBooking_RequiresIdempotencyKey() {
	hotelID := suite.createHotel()

	rec := suite.do(http.MethodPost, "/api/hotels/"+hotelID+"/bookings", rest.CreateBookingRequest{
		CheckIn:    "2026-03-06",
		CheckOut:   "2026-03-08",
		AdultCount: 2,
	}, guestHeaders("guest-1"))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "VALIDATION_FAILED")
}

func (suite *HandlersTestSuite) Test_CancelBooking_MapsConflictTo409() {
	hotelID := suite.createHotel()
	booking := suite.createBooking(hotelID, "guest-1", "idem-1")

	cancel := func() *httptest.ResponseRecorder {
		return suite.do(http.MethodPost, "/api/bookings/"+booking.ID+"/cancel",
			rest.CancelBookingRequest{Reason: "change of plans"}, guestHeaders("guest-1"))
	}

	rec := cancel()
	require.Equal(suite.T(), http.StatusOK, rec.Code, rec.Body.String())

	var cancelled rest.BookingResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &cancelled))
	assert.Equal(suite.T(), "REFUNDED", cancelled.Status)

	rec = cancel()
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "CONFLICT")
}

func (suite *HandlersTestSuite) Test_CancelBooking_ForbiddenForOtherGuest() {
	hotelID := suite.createHotel()
	booking := suite.createBooking(hotelID, "guest-1", "idem-1")

	rec := suite.do(http.MethodPost, "/api/bookings/"+booking.ID+"/cancel",
		rest.CancelBookingRequest{Reason: "not mine"}, guestHeaders("guest-2"))

	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "FORBIDDEN")
}

func (suite *HandlersTestSuite) Test_RetryRefund_OperatorOnly() {
	hotelID := suite.createHotel()
	booking := suite.createBooking(hotelID, "guest-1", "idem-1")

	rec := suite.do(http.MethodPost, "/api/bookings/"+booking.ID+"/refund-retries", nil, guestHeaders("guest-1"))
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

	// Admin hits the real transition check instead.
	rec = suite.do(http.MethodPost, "/api/bookings/"+booking.ID+"/refund-retries", nil, adminHeaders("admin-1"))
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
}

func (suite *HandlersTestSuite) Test_GetBooking_HiddenFromStrangers() {
	hotelID := suite.createHotel()
	booking := suite.createBooking(hotelID, "guest-1", "idem-1")

	rec := suite.do(http.MethodGet, "/api/bookings/"+booking.ID, nil, guestHeaders("guest-1"))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/api/bookings/"+booking.ID, nil, guestHeaders("guest-2"))
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	rec = suite.do(http.MethodGet, "/api/bookings/"+booking.ID, nil, adminHeaders("admin-1"))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *HandlersTestSuite) Test_CheckAvailability() {
	hotelID := suite.createHotel()
	suite.createBooking(hotelID, "guest-1", "idem-1")

	url := fmt.Sprintf("/api/hotels/%s/availability?check_in=2026-03-06&check_out=2026-03-08", hotelID)
	rec := suite.do(http.MethodGet, url, nil, nil)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp rest.AvailabilityResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(suite.T(), resp.Available)
	require.Len(suite.T(), resp.PerDate, 2)
	assert.Equal(suite.T(), 2, resp.PerDate[0].Remaining)
}

func (suite *HandlersTestSuite) Test_CheckAvailability_BadDates() {
	hotelID := suite.createHotel()

	rec := suite.do(http.MethodGet, "/api/hotels/"+hotelID+"/availability?check_in=tomorrow&check_out=2026-03-08", nil, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) Test_ListMyBookings() {
	hotelID := suite.createHotel()
	suite.createBooking(hotelID, "guest-1", "idem-1")
	suite.createBooking(hotelID, "guest-2", "idem-2")

	rec := suite.do(http.MethodGet, "/api/my-bookings", nil, guestHeaders("guest-1"))
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Bookings []rest.BookingResponse `json:"bookings"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(suite.T(), resp.Bookings, 1)
	assert.Equal(suite.T(), "guest-1", resp.Bookings[0].GuestID)
}

func (suite *HandlersTestSuite) Test_ListAllBookings_AdminOnly() {
	hotelID := suite.createHotel()
	suite.createBooking(hotelID, "guest-1", "idem-1")
	suite.createBooking(hotelID, "guest-2", "idem-2")

	rec := suite.do(http.MethodGet, "/api/bookings", nil, guestHeaders("guest-1"))
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

	rec = suite.do(http.MethodGet, "/api/bookings", nil, adminHeaders("admin-1"))
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp struct {
		Bookings []rest.BookingResponse `json:"bookings"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(suite.T(), resp.Bookings, 2)
}

func (suite *HandlersTestSuite) Test_UnknownHotel_Maps404() {
	rec := suite.do(http.MethodGet, "/api/hotels/nope", nil, nil)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "HOTEL_NOT_FOUND")
}
