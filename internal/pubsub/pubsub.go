// Package pubsub carries wire messages between publishers and consumers over
// watermill, with optional OpenTelemetry tracing.
package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
// It is intentionally simple to act as a wrapper for raw data.
type Message struct {
	// ID uniquely identifies the message. Publish assigns one when empty.
	ID string
	// Topic identifies the event type (e.g., "calendar.meeting.new").
	Topic string
	// Payload contains the JSON-encoded message body.
	Payload []byte
	// Headers carry message attributes such as severity and schema id.
	Headers map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the Pub/Sub system.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the Pub/Sub system.
type Subscriber interface {
	// Subscribe starts delivering messages whose topic matches pattern to
	// handler. It returns once the subscription is active; delivery stops
	// when ctx is canceled or the subscriber is closed.
	Subscribe(ctx context.Context, pattern string, handler Handler) error
	Close() error
}

// MatchTopic reports whether topic matches pattern. "*" matches every
// topic and a trailing "*" matches by prefix; anything else must be equal.
func MatchTopic(topic, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(topic) >= len(prefix) && topic[:len(prefix)] == prefix
	}
	return topic == pattern
}
