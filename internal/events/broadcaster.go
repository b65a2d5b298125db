// Package events delivers booking state-change events to in-process
// subscribers. Notification delivery lives outside the core; this is the seam
// a notifier plugs into.
package events

import (
	"log/slog"
	"sync"

	"github.com/FuriSherpa/hotel-booking-core/internal/domain"
)

type Broadcaster struct {
	mu     sync.RWMutex
	subs   []chan domain.BookingEvent
	closed bool
	logger *slog.Logger
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{logger: logger}
}

// Subscribe returns a channel that receives every event published after the
// call. The channel is buffered; a subscriber that stops draining loses
// events rather than blocking publishers.
func (b *Broadcaster) Subscribe() <-chan domain.BookingEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan domain.BookingEvent, 64)
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Broadcaster) Publish(event domain.BookingEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("dropping booking event for slow subscriber",
				"booking_id", event.BookingID,
				"to", event.To,
			)
		}
	}
}

// Close stops delivery and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
