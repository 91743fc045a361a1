package pubsub

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

const previewLen = 100

// spanAttributes describes msg for a span of the given operation. The
// destination is always the exchange; the fedora topic travels in metadata.
func spanAttributes(operation string, msg *message.Message) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("messaging.system", "watermill"),
		attribute.String("messaging.operation", operation),
		attribute.String("messaging.destination", Exchange),
		attribute.String("messaging.fedora.topic", msg.Metadata.Get(metaKeyTopic)),
		attribute.String("messaging.fedora.severity", msg.Metadata.Get(messages.HeaderSeverity)),
		attribute.String("messaging.message_id", msg.UUID),
		attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
		attribute.String("messaging.message_payload_preview", preview(msg.Payload)),
	}
}

func preview(payload []byte) string {
	if len(payload) <= previewLen {
		return string(payload)
	}
	return string(payload[:previewLen]) + "..."
}

// startSpan opens a span named pubsub.<operation>.<topic> as a child of the
// message context and moves the message onto the new context.
func startSpan(tracer trace.Tracer, operation string, msg *message.Message) trace.Span {
	ctx := msg.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, "pubsub."+operation+"."+msg.Metadata.Get(metaKeyTopic),
		trace.WithAttributes(spanAttributes(operation, msg)...))
	msg.SetContext(ctx)
	return span
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TracingMiddleware traces every message a handler processes.
func TracingMiddleware(tracer trace.Tracer) func(message.HandlerFunc) message.HandlerFunc {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			span := startSpan(tracer, "process", msg)
			defer span.End()

			produced, err := h(msg)
			if err != nil {
				fail(span, err)
				return nil, err
			}
			span.SetAttributes(attribute.Int("messaging.messages_produced", len(produced)))
			return produced, nil
		}
	}
}

// TracingPublisher opens a publish span per message before handing the
// batch to the wrapped publisher.
type TracingPublisher struct {
	publisher message.Publisher
	tracer    trace.Tracer
}

// NewTracingPublisher wraps publisher.
func NewTracingPublisher(publisher message.Publisher, tracer trace.Tracer) *TracingPublisher {
	return &TracingPublisher{publisher: publisher, tracer: tracer}
}

// Publish implements message.Publisher.
func (p *TracingPublisher) Publish(topic string, msgs ...*message.Message) error {
	spans := make([]trace.Span, 0, len(msgs))
	for _, msg := range msgs {
		spans = append(spans, startSpan(p.tracer, "publish", msg))
	}

	err := p.publisher.Publish(topic, msgs...)
	for _, span := range spans {
		if err != nil {
			fail(span, err)
		}
		span.End()
	}
	return err
}

// Close closes the wrapped publisher.
func (p *TracingPublisher) Close() error {
	return p.publisher.Close()
}
