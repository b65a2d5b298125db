// Package rest exposes the booking service over HTTP. Identity arrives via
// the X-User-ID and X-Admin headers, set by the authenticating proxy in front
// of this service.
package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	headerUserID         = "X-User-ID"
	headerAdmin          = "X-Admin"
	headerIdempotencyKey = "Idempotency-Key"
)

type Handlers struct {
	service *services.BookingService
	logger  *slog.Logger
}

func NewHandlers(service *services.BookingService, logger *slog.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

func (h *Handlers) CreateHotel(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, domain.NewValidationError("body", err.Error()), h.logger)
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), services.CreateHotelCommand{
		OwnerID:            userID,
		Name:               req.Name,
		City:               req.City,
		PricePerNightCents: req.PricePerNightCents,
		Currency:           req.Currency,
		TotalRooms:         req.TotalRooms,
	})
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, toHotelResponse(hotel))
}

func (h *Handlers) GetHotel(c *gin.Context) {
	hotel, err := h.service.GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(hotel))
}

func (h *Handlers) CheckAvailability(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"), "check_in")
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}
	checkOut, err := parseDate(c.Query("check_out"), "check_out")
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	report, err := h.service.CheckAvailability(c.Request.Context(), c.Param("id"), checkIn, checkOut)
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}
	c.JSON(http.StatusOK, toAvailabilityResponse(report))
}

func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	idempotencyKey := c.GetHeader(headerIdempotencyKey)
	if idempotencyKey == "" {
		WriteError(c, domain.NewValidationError("Idempotency-Key", "idempotency key header is required"), h.logger)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, domain.NewValidationError("body", err.Error()), h.logger)
		return
	}

	checkIn, err := parseDate(req.CheckIn, "check_in")
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}
	checkOut, err := parseDate(req.CheckOut, "check_out")
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), services.CreateBookingCommand{
		HotelID:        c.Param("id"),
		GuestID:        userID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		AdultCount:     req.AdultCount,
		ChildCount:     req.ChildCount,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	if booking.GuestID != userID && !isAdmin(c) {
		WriteError(c, domain.ErrBookingNotFound, h.logger)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *Handlers) CancelBooking(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteError(c, domain.NewValidationError("body", err.Error()), h.logger)
		return
	}

	booking, err := h.service.CancelBooking(c.Request.Context(), services.CancelBookingCommand{
		BookingID:   c.Param("id"),
		RequesterID: userID,
		IsAdmin:     isAdmin(c),
		Reason:      req.Reason,
	})
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *Handlers) RetryRefund(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	if !isAdmin(c) {
		WriteError(c, application.NewForbiddenError("refund retry is operator-only"), h.logger)
		return
	}

	booking, err := h.service.RetryRefund(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *Handlers) ListMyBookings(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListBookingsByGuest(c.Request.Context(), userID)
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handlers) ListBookings(c *gin.Context) {
	if _, ok := h.requireUser(c); !ok {
		return
	}
	if !isAdmin(c) {
		WriteError(c, application.NewForbiddenError("listing all bookings is operator-only"), h.logger)
		return
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	bookings, err := h.service.ListAllBookings(c.Request.Context(), limit, offset)
	if err != nil {
		WriteError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (h *Handlers) requireUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Success: false,
			Error: ErrorDetail{
				Code:    "UNAUTHENTICATED",
				Message: "missing " + headerUserID + " header",
			},
		})
		return "", false
	}
	return userID, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetHeader(headerAdmin) == "true"
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError(field, "date is required")
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "date must be formatted YYYY-MM-DD")
	}
	return t, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
