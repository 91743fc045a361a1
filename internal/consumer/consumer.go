// Package consumer turns bus messages into notifications: it resolves each
// message's kind, decodes and validates the body, and hands the rendered
// result to a Sink.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fedora-infra/fedocal-messages/internal/avatar"
	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/pubsub"
	"github.com/fedora-infra/fedocal-messages/internal/schema"
)

// Resolver maps a topic to its kind.
type Resolver interface {
	Resolve(topic string) (messages.Kind, error)
}

// Notification is a message rendered for display.
type Notification struct {
	ID        string   `json:"id"`
	Topic     string   `json:"topic"`
	App       string   `json:"app,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Text      string   `json:"text"`
	Agent     string   `json:"agent,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Usernames []string `json:"usernames"`
	URL       string   `json:"url,omitempty"`
	// Known is false when no registered kind matched the topic.
	Known bool `json:"known"`
}

// Sink receives notifications.
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, n Notification) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Dependencies contains everything a Consumer needs
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Resolver   Resolver
	Sink       Sink
	// Avatars builds agent avatar URLs. The zero value uses avatar.Default.
	Avatars avatar.Resolver
	// OnInvalid, if set, is called for every message whose body fails its schema.
	OnInvalid func(ctx context.Context, msg pubsub.Message, err error)
	Logger    *slog.Logger
}

// Consumer delivers bus messages to a Sink.
type Consumer struct {
	sub       pubsub.Subscriber
	resolver  Resolver
	sink      Sink
	avatars   avatar.Resolver
	onInvalid func(ctx context.Context, msg pubsub.Message, err error)
	logger    *slog.Logger
}

// New creates a consumer with its dependencies
func New(deps Dependencies) (*Consumer, error) {
	if deps.Resolver == nil {
		return nil, errors.New("consumer requires a resolver")
	}
	if deps.Sink == nil {
		return nil, errors.New("consumer requires a sink")
	}
	avatars := deps.Avatars
	if avatars == (avatar.Resolver{}) {
		avatars = avatar.Default
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		sub:       deps.Subscriber,
		resolver:  deps.Resolver,
		sink:      deps.Sink,
		avatars:   avatars,
		onInvalid: deps.OnInvalid,
		logger:    logger.With("component", "consumer"),
	}, nil
}

// Handle processes one message. Validation failures are returned as
// *schema.ValidationError and provider failures as *topics.ProviderError.
func (c *Consumer) Handle(ctx context.Context, msg pubsub.Message) error {
	kind, err := c.resolver.Resolve(msg.Topic)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", msg.Topic, err)
	}

	m, err := messages.Decode(msg.Topic, kind, msg.Payload)
	if err != nil {
		return err
	}
	if msg.ID != "" {
		m.ID = msg.ID
	}
	if sev, err := messages.ParseSeverity(msg.Headers[messages.HeaderSeverity]); err == nil {
		m.Severity = sev
	}

	if err := m.Validate(); err != nil {
		if c.onInvalid != nil {
			c.onInvalid(ctx, msg, err)
		}
		return err
	}

	return c.sink.Deliver(ctx, NotificationFrom(m, c.avatars))
}

// Start subscribes to each pattern, or to every topic when none are given.
// Messages that cannot be handled are logged and acknowledged; nothing is
// redelivered.
func (c *Consumer) Start(ctx context.Context, patterns ...string) error {
	if c.sub == nil {
		return errors.New("consumer has no subscriber")
	}
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}

	for _, pattern := range patterns {
		if err := c.sub.Subscribe(ctx, pattern, c.handleAndLog); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", pattern, err)
		}
		c.logger.Debug("Subscribed", "pattern", pattern)
	}
	return nil
}

func (c *Consumer) handleAndLog(ctx context.Context, msg pubsub.Message) error {
	err := c.Handle(ctx, msg)
	switch {
	case err == nil:
		c.logger.Info("Delivered notification", "topic", msg.Topic, "msg_id", msg.ID)
	case errors.Is(err, schema.ErrInvalid):
		c.logger.Warn("Dropping invalid message", "topic", msg.Topic, "msg_id", msg.ID, "error", err)
	default:
		c.logger.Error("Failed to process message", "topic", msg.Topic, "msg_id", msg.ID, "error", err)
	}
	return nil
}

// NotificationFrom renders m for display. Messages of unrecognised topics
// carry their raw body as text and no application details.
func NotificationFrom(m *messages.Message, avatars avatar.Resolver) Notification {
	n := Notification{
		ID:        m.ID,
		Topic:     m.Topic,
		Text:      m.String(),
		Summary:   m.Summary(),
		Usernames: m.Usernames(),
		Known:     !messages.IsGeneric(m.Kind),
	}

	app, ok := m.AppName()
	if !ok {
		return n
	}
	n.App = app
	n.Icon, _ = m.AppIcon()
	n.Agent, _ = m.Agent()
	n.Avatar, _ = m.AgentAvatar(avatars)
	n.URL, _ = m.URL()
	return n
}
