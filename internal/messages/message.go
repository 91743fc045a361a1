package messages

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fedora-infra/fedocal-messages/internal/avatar"
)

// Header keys carried alongside every message on the wire.
const (
	HeaderSchema   = "fedora_messaging_schema"
	HeaderSeverity = "fedora_messaging_severity"
	HeaderSentAt   = "sent-at"
)

// Severity grades how much attention a message deserves.
type Severity int

// Severity levels, numbered like the standard logging levels.
const (
	SeverityDebug   Severity = 10
	SeverityInfo    Severity = 20
	SeverityWarning Severity = 30
	SeverityError   Severity = 40
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ParseSeverity accepts a severity name or its number. An empty string
// yields SeverityInfo.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO", "20":
		return SeverityInfo, nil
	case "DEBUG", "10":
		return SeverityDebug, nil
	case "WARNING", "WARN", "30":
		return SeverityWarning, nil
	case "ERROR", "40":
		return SeverityError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Message is a body tagged with the kind it was published as.
type Message struct {
	ID       string
	Topic    string
	Kind     Kind
	Body     Body
	Severity Severity
	SentAt   time.Time
}

// New returns a message of kind k with a fresh id. The topic is taken from
// the kind.
func New(k Kind, body Body) *Message {
	if body == nil {
		body = Body{}
	}
	return &Message{
		ID:       uuid.NewString(),
		Topic:    k.Topic(),
		Kind:     k,
		Body:     body,
		Severity: SeverityInfo,
		SentAt:   time.Now().UTC(),
	}
}

// Decode builds a message of kind k from a JSON body received on topic.
// The body is not validated.
func Decode(topic string, k Kind, payload []byte) (*Message, error) {
	if k == nil {
		return nil, errors.New("kind cannot be nil")
	}
	body, err := DecodeBody(payload)
	if err != nil {
		return nil, err
	}
	m := New(k, body)
	m.Topic = topic
	return m, nil
}

// Validate checks the body against the kind's schema.
func (m *Message) Validate() error {
	return m.Kind.Validate(m.Body)
}

// String renders the message as a full sentence.
func (m *Message) String() string {
	return m.Kind.Render(m.Body)
}

// Summary renders the message as a short phrase.
func (m *Message) Summary() string {
	return m.Kind.Summary(m.Body)
}

// AppName returns the owning application, absent for unrecognised topics.
func (m *Message) AppName() (string, bool) {
	app, ok := m.Kind.(AppKind)
	if !ok {
		return "", false
	}
	return app.AppName(), true
}

// AppIcon returns the owning application's icon URL.
func (m *Message) AppIcon() (string, bool) {
	app, ok := m.Kind.(AppKind)
	if !ok {
		return "", false
	}
	return app.AppIcon(), true
}

// Agent returns the user who caused the event.
func (m *Message) Agent() (string, bool) {
	app, ok := m.Kind.(AppKind)
	if !ok {
		return "", false
	}
	return app.Agent(m.Body)
}

// AgentAvatar returns the avatar URL of the agent using r.
func (m *Message) AgentAvatar(r avatar.Resolver) (string, bool) {
	agent, ok := m.Agent()
	if !ok {
		return "", false
	}
	return r.URL(agent), true
}

// Usernames lists the users the message relates to.
func (m *Message) Usernames() []string {
	if agent, ok := m.Agent(); ok {
		return []string{agent}
	}
	return []string{}
}

// URL returns the deep link carried in the body's thing.url, if any.
func (m *Message) URL() (string, bool) {
	return m.Body.StringOK("thing", "url")
}

// Headers returns the wire headers of the message.
func (m *Message) Headers() map[string]string {
	h := map[string]string{
		HeaderSeverity: m.Severity.String(),
		HeaderSentAt:   m.SentAt.UTC().Format(time.RFC3339),
	}
	if s := m.Kind.Schema(); s != nil && s.ID != "" {
		h[HeaderSchema] = s.ID
	}
	return h
}

// MarshalJSON encodes the message in its wire form.
func (m *Message) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(m.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode body of %s: %w", m.Topic, err)
	}
	return json.Marshal(Wire{
		ID:      m.ID,
		Topic:   m.Topic,
		Headers: m.Headers(),
		Body:    body,
	})
}

// Wire is the serialized form of a message.
type Wire struct {
	ID      string            `json:"id,omitempty"`
	Topic   string            `json:"topic"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body"`
}

// ErrMalformedWire is returned when data is not a usable wire message.
var ErrMalformedWire = errors.New("malformed wire message")

// ParseWire decodes a wire message, requiring a topic and an object body.
func ParseWire(data []byte) (*Wire, error) {
	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWire, err)
	}
	if w.Topic == "" {
		return nil, fmt.Errorf("%w: missing topic", ErrMalformedWire)
	}
	trimmed := strings.TrimSpace(string(w.Body))
	if !strings.HasPrefix(trimmed, "{") {
		return nil, fmt.Errorf("%w: body must be an object", ErrMalformedWire)
	}
	return &w, nil
}
