package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/config"
)

// RetryClient decorates a PaymentGateway with bounded retries. Every call
// carries an idempotency key, so retrying after an ambiguous failure cannot
// double-charge or double-refund.
type RetryClient struct {
	inner      application.PaymentGateway
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.PaymentGateway, cfg config.RetryConfig) application.PaymentGateway {
	return &RetryClient{
		inner:      inner,
		baseDelay:  time.Duration(cfg.BaseDelay) * time.Second,
		maxRetries: int(cfg.MaxRetries),
	}
}

func (r *RetryClient) CreateIntent(ctx context.Context, req application.IntentRequest, idempotencyKey string) (*application.IntentResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.IntentResponse, error) {
			return r.inner.CreateIntent(ctx, req, idempotencyKey)
		},
	)
}

func (r *RetryClient) Refund(ctx context.Context, paymentIntentID string, idempotencyKey string) (*application.RefundResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*application.RefundResponse, error) {
			return r.inner.Refund(ctx, paymentIntentID, idempotencyKey)
		},
	)
}

func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			time.Sleep(r.backoff(attempt))
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryable(err error) bool {
	if gwErr, ok := application.IsGatewayError(err); ok {
		if gwErr.StatusCode >= 500 {
			return true
		}
		return gwErr.Code == "rate_limited"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Transport-level failures default to retryable.
	return true
}

// Exponential delay with jitter.
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)

	jitter := time.Duration(rand.Intn(1000)) * time.Millisecond

	return base + jitter
}
