// Package worker runs the background sweeps: promoting finished stays to
// COMPLETED and re-driving refunds that never reconciled.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
)

// CompletionWorker periodically promotes CONFIRMED bookings whose checkout
// has passed. The read path already does this lazily; the sweep bounds how
// stale an unread booking can be.
type CompletionWorker struct {
	service   *services.BookingService
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewCompletionWorker(
	service *services.BookingService,
	interval time.Duration,
	batchSize int,
	logger *slog.Logger,
) *CompletionWorker {
	return &CompletionWorker{
		service:   service,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (w *CompletionWorker) Start(ctx context.Context) {
	w.logger.Info("completion worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("completion worker stopping")
			return
		case <-ticker.C:
			promoted, err := w.service.SweepCompleted(ctx, w.batchSize)
			if err != nil {
				w.logger.Error("completion sweep failed", "error", err)
				continue
			}
			if promoted > 0 {
				w.logger.Info("promoted completed bookings", "count", promoted)
			}
		}
	}
}
