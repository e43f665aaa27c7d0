package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-trip-booking/internal/domain"
)

// Handler consumes a dispatched domain event. Handlers must not block for
// long: dispatch is synchronous and runs on the caller's goroutine.
type Handler func(ctx context.Context, ev domain.Event)

// Bus is a caller-owned synchronous dispatcher for domain events. Services
// publish aggregate events after a successful save; subscribers are wired
// once at startup.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for events with the given name.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// SubscribeAll registers a handler for every event regardless of name.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish dispatches the event to all matching handlers in subscription
// order. A nil event is ignored so callers can pass through the event slot
// of mutations that emitted nothing.
func (b *Bus) Publish(ctx context.Context, ev domain.Event) {
	if ev == nil {
		return
	}
	b.mu.RLock()
	matched := append([]Handler(nil), b.all...)
	matched = append(matched, b.handlers[ev.Name()]...)
	b.mu.RUnlock()
	for _, h := range matched {
		h(ctx, ev)
	}
}

// LogHandler returns a subscriber that records every event through slog.
func LogHandler(logger *slog.Logger) Handler {
	return func(_ context.Context, ev domain.Event) {
		logger.Info("domain event", "event", ev.Name(), "occurred_at", ev.OccurredAt())
	}
}
