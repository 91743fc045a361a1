package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

// PublishMessage encodes m and publishes it through p with its wire headers.
func PublishMessage(ctx context.Context, p Publisher, m *messages.Message) error {
	payload, err := json.Marshal(m.Body)
	if err != nil {
		return fmt.Errorf("failed to encode body of %s: %w", m.Topic, err)
	}

	return p.Publish(ctx, Message{
		ID:      m.ID,
		Topic:   m.Topic,
		Payload: payload,
		Headers: m.Headers(),
	})
}

// PublishWire publishes a decoded wire message through p.
func PublishWire(ctx context.Context, p Publisher, w *messages.Wire) error {
	return p.Publish(ctx, Message{
		ID:      w.ID,
		Topic:   w.Topic,
		Payload: []byte(w.Body),
		Headers: w.Headers,
	})
}
