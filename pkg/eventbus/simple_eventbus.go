package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNilEvent is returned when Publish is called without an event.
var ErrNilEvent = errors.New("eventbus: nil event")

// SimpleEventBus delivers events synchronously, in subscription order, on
// the publisher's goroutine.
type SimpleEventBus struct {
	handlers map[string][]func(context.Context, Event)
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewSimpleEventBus(logger *slog.Logger) *SimpleEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimpleEventBus{
		handlers: make(map[string][]func(context.Context, Event)),
		logger:   logger,
	}
}

func (b *SimpleEventBus) Publish(ctx context.Context, event Event) error {
	if event == nil {
		return ErrNilEvent
	}
	b.logger.Debug("EventBus.Publish", "event_type", event.Type(), "concrete_type", fmt.Sprintf("%T", event))

	// Handlers may subscribe while being dispatched, so iterate over a copy.
	b.mu.RLock()
	handlers := append([]func(context.Context, Event){}, b.handlers[event.Type()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

func (b *SimpleEventBus) Subscribe(eventType string, handler func(context.Context, Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
