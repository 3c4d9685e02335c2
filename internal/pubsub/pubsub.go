package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "session.login").
	Topic string
	// Subject is the email of the user the event is about, if any.
	Subject string
	// Payload contains the JSON encoded event.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages with the handler
	// on a background goroutine until ctx is cancelled or the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Discard is a Publisher that drops every message.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, Message) error { return nil }
func (discard) Close() error                           { return nil }
