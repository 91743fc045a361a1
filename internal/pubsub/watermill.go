package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.opentelemetry.io/otel/trace"
)

// Exchange is the watermill topic every message is published to. The event
// topic travels in metadata so subscribers can match on patterns.
const Exchange = "fedora.messages"

// Metadata keys used to transfer our Message structure fields through watermill's message.
const metaKeyTopic = "topic"

// WatermillBridge implements the Publisher and Subscriber interfaces using watermill's GoChannel.
type WatermillBridge struct {
	pub message.Publisher
	sub message.Subscriber
	// Logger for watermill to use
	logger watermill.LoggerAdapter
	tracer trace.Tracer
}

// Option configures a WatermillBridge.
type Option func(*WatermillBridge)

// WithLogger sets the logger handed to watermill.
func WithLogger(logger watermill.LoggerAdapter) Option {
	return func(wb *WatermillBridge) {
		wb.logger = logger
	}
}

// WithTracer traces every publish and every handled message with tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(wb *WatermillBridge) {
		wb.tracer = tracer
	}
}

// NewWatermillBridge initializes an in-memory Pub/Sub system.
func NewWatermillBridge(opts ...Option) *WatermillBridge {
	wb := &WatermillBridge{
		logger: watermill.NewStdLogger(false, false),
	}
	for _, opt := range opts {
		opt(wb)
	}

	// GoChannel is a simple in-memory pub/sub implementation.
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{},
		wb.logger,
	)
	wb.pub = goChannel
	wb.sub = goChannel
	if wb.tracer != nil {
		wb.pub = NewTracingPublisher(goChannel, wb.tracer)
	}
	return wb
}

// NewWatermillBridgeWithTracer is shorthand for NewWatermillBridge(WithTracer(tracer)).
func NewWatermillBridgeWithTracer(tracer trace.Tracer) *WatermillBridge {
	return NewWatermillBridge(WithTracer(tracer))
}

// mapToWatermillMessage converts our pubsub.Message to a watermill message.
func mapToWatermillMessage(msg Message) *message.Message {
	id := msg.ID
	if id == "" {
		id = watermill.NewUUID()
	}
	wmMsg := message.NewMessage(id, msg.Payload)

	for k, v := range msg.Headers {
		wmMsg.Metadata.Set(k, v)
	}
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)

	return wmMsg
}

// mapToPubSubMessage converts a watermill message back to our internal pubsub.Message.
func mapToPubSubMessage(wmMsg *message.Message) Message {
	headers := make(map[string]string, len(wmMsg.Metadata))
	for k, v := range wmMsg.Metadata {
		if k != metaKeyTopic {
			headers[k] = v
		}
	}

	return Message{
		ID:      wmMsg.UUID,
		Topic:   wmMsg.Metadata.Get(metaKeyTopic),
		Payload: wmMsg.Payload,
		Headers: headers,
	}
}

// Publish implements the Publisher interface.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wmMsg := mapToWatermillMessage(msg)
	wmMsg.SetContext(ctx)
	return wb.pub.Publish(Exchange, wmMsg)
}

// Subscribe implements the Subscriber interface.
func (wb *WatermillBridge) Subscribe(ctx context.Context, pattern string, handler Handler) error {
	// The Subscribe method returns a channel of messages.
	messages, err := wb.sub.Subscribe(ctx, Exchange)
	if err != nil {
		return err
	}

	process := func(wmMsg *message.Message) ([]*message.Message, error) {
		return nil, handler(wmMsg.Context(), mapToPubSubMessage(wmMsg))
	}
	if wb.tracer != nil {
		process = TracingMiddleware(wb.tracer)(process)
	}

	// Run the message processing in a separate goroutine so that Subscribe is non-blocking.
	go func() {
		for wmMsg := range messages {
			topic := wmMsg.Metadata.Get(metaKeyTopic)
			if !MatchTopic(topic, pattern) {
				wmMsg.Ack()
				continue
			}

			wmMsg.SetContext(ctx)
			if _, err := process(wmMsg); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "pattern", pattern, "msg_id", wmMsg.UUID, "error", err)
				// GoChannel redelivers a nacked message straight away.
				wmMsg.Nack()
			} else {
				// Acknowledge the message to signal successful processing.
				wmMsg.Ack()
			}
		}
		slog.Debug("Subscription message loop ended", "pattern", pattern)
	}()

	// Return immediately, as the subscription is now active and running in the background.
	return nil
}

// Close implements the Publisher and Subscriber interface to shut down the bridge.
func (wb *WatermillBridge) Close() error {
	// Closing the subscriber will close the gochannel and stop message consumption.
	return wb.sub.Close()
}
