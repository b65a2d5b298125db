package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application/services"
)

// RefundWorker re-drives the gateway call for bookings stuck in
// REFUND_PENDING, which happens when the process dies between the durable
// transition and the gateway response. The stable per-booking idempotency key
// makes the re-drive safe.
type RefundWorker struct {
	service     *services.BookingService
	interval    time.Duration
	olderThan   time.Duration
	maxAttempts int
	batchSize   int
	logger      *slog.Logger
}

func NewRefundWorker(
	service *services.BookingService,
	interval time.Duration,
	maxAttempts int,
	batchSize int,
	logger *slog.Logger,
) *RefundWorker {
	// A refund younger than one interval may still be in flight on the
	// request path; only older ones are considered stuck.
	return &RefundWorker{
		service:     service,
		interval:    interval,
		olderThan:   interval,
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		logger:      logger,
	}
}

func (w *RefundWorker) Start(ctx context.Context) {
	w.logger.Info("refund worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("refund worker stopping")
			return
		case <-ticker.C:
			driven, err := w.service.SweepStuckRefunds(ctx, w.olderThan, w.maxAttempts, w.batchSize)
			if err != nil {
				w.logger.Error("refund sweep failed", "error", err)
				continue
			}
			if driven > 0 {
				w.logger.Info("re-drove stuck refunds", "count", driven)
			}
		}
	}
}
