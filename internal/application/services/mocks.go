package services

import (
	"context"
	"sync"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
	"github.com/google/uuid"
)

// MockGateway is a hand-rolled payment gateway test double. Defaults succeed;
// set the Fn fields to script failures.
type MockGateway struct {
	mu    sync.Mutex
	calls map[string]int
	Delay time.Duration

	CreateIntentFn func(ctx context.Context, req application.IntentRequest, idempotencyKey string) (*application.IntentResponse, error)
	RefundFn       func(ctx context.Context, paymentIntentID string, idempotencyKey string) (*application.RefundResponse, error)
}

func NewMockGateway() *MockGateway {
	return &MockGateway{calls: make(map[string]int)}
}

func (m *MockGateway) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

func (m *MockGateway) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockGateway) CreateIntent(ctx context.Context, req application.IntentRequest, idempotencyKey string) (*application.IntentResponse, error) {
	m.inc("CreateIntent")
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if m.CreateIntentFn != nil {
		return m.CreateIntentFn(ctx, req, idempotencyKey)
	}
	return &application.IntentResponse{
		IntentID:     "pi-" + uuid.New().String(),
		ClientSecret: "secret-123",
	}, nil
}

func (m *MockGateway) Refund(ctx context.Context, paymentIntentID string, idempotencyKey string) (*application.RefundResponse, error) {
	m.inc("Refund")
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if m.RefundFn != nil {
		return m.RefundFn(ctx, paymentIntentID, idempotencyKey)
	}
	return &application.RefundResponse{
		RefundID:   "re-" + uuid.New().String(),
		Status:     "succeeded",
		RefundedAt: time.Now(),
	}, nil
}

// CapturingPublisher records every published event for assertions.
type CapturingPublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func NewCapturingPublisher() *CapturingPublisher {
	return &CapturingPublisher{}
}

func (p *CapturingPublisher) Publish(event domain.BookingEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *CapturingPublisher) Events() []domain.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.BookingEvent, len(p.events))
	copy(out, p.events)
	return out
}
