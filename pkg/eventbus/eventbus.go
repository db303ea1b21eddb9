package eventbus

import "context"

// Event is anything published on the bus. Type routes it to subscribers.
type Event interface {
	Type() string
}

// EventBus defines the contract for publishing and subscribing to events.
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler func(context.Context, Event))
}
