package rest

import (
	"log/slog"
	"net/http"

	"github.com/FuriSherpa/hotel-booking-core/internal/config"
	"github.com/FuriSherpa/hotel-booking-core/internal/interfaces/rest/middleware"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the route table. Write operations require identity headers;
// availability and hotel lookups are public.
func NewRouter(h *Handlers, cfg config.ServerConfig, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.Timeout(cfg.ReadTimeout),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/hotels", h.CreateHotel)
		api.GET("/hotels/:id", h.GetHotel)
		api.GET("/hotels/:id/availability", h.CheckAvailability)
		api.POST("/hotels/:id/bookings", h.CreateBooking)

		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/refund-retries", h.RetryRefund)

		api.GET("/my-bookings", h.ListMyBookings)
	}

	return router
}
