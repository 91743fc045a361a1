package messages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fedora-infra/fedocal-messages/internal/schema"
)

// Kind describes one message type: the topic it is published on, the
// contract its body must satisfy and how it renders for people.
type Kind interface {
	// Topic returns the topic string this kind is published on.
	Topic() string

	// Description returns a human-readable description of the kind.
	Description() string

	// Schema returns the body schema, or nil when the kind has none.
	Schema() *jsonschema.Schema

	// Validate checks body against the schema.
	Validate(body Body) error

	// Render returns a full sentence describing body.
	Render(body Body) string

	// Summary returns a short phrase describing body.
	Summary(body Body) string
}

// AppKind is a Kind owned by a known application. The generic fallback does
// not implement it, which is how callers tell recognised topics apart.
type AppKind interface {
	Kind

	// AppName identifies the owning application.
	AppName() string

	// AppIcon returns the URL of the application's icon.
	AppIcon() string

	// Agent returns the user who caused the event, if the kind has one.
	Agent(body Body) (string, bool)
}

// BaseKind provides the topic, description and schema half of a Kind.
// Concrete kinds embed it and add their own Render and Summary.
type BaseKind struct {
	topic       string
	description string
	schema      *jsonschema.Schema
	validator   *schema.Validator
}

// NewBaseKind compiles s and returns a BaseKind for topic.
func NewBaseKind(topic, description string, s *jsonschema.Schema) (BaseKind, error) {
	if topic == "" {
		return BaseKind{}, errors.New("topic cannot be empty")
	}
	v, err := schema.Compile(s)
	if err != nil {
		return BaseKind{}, fmt.Errorf("kind %s: %w", topic, err)
	}
	return BaseKind{
		topic:       topic,
		description: description,
		schema:      s,
		validator:   v,
	}, nil
}

// Topic returns the kind's topic
func (k BaseKind) Topic() string {
	return k.topic
}

// Description returns the kind's description
func (k BaseKind) Description() string {
	return k.description
}

// Schema returns the kind's body schema
func (k BaseKind) Schema() *jsonschema.Schema {
	return k.schema
}

// Validate checks body against the kind's schema.
func (k BaseKind) Validate(body Body) error {
	if k.validator == nil {
		return fmt.Errorf("kind %s was not built with NewBaseKind", k.topic)
	}
	return k.validator.Validate(map[string]any(body))
}

// String returns the kind's topic
func (k BaseKind) String() string {
	return k.topic
}

// Generic is the fallback kind returned for topics nobody registered. It has
// no schema, accepts every body and renders the body as compact JSON.
type Generic struct{}

// NewGeneric returns the fallback kind.
func NewGeneric() Generic {
	return Generic{}
}

// IsGeneric reports whether k is the fallback kind.
func IsGeneric(k Kind) bool {
	switch k.(type) {
	case Generic, *Generic:
		return true
	}
	return false
}

func (Generic) Topic() string              { return "" }
func (Generic) Description() string        { return "Unrecognized message" }
func (Generic) Schema() *jsonschema.Schema { return nil }
func (Generic) Validate(Body) error        { return nil }
func (Generic) Summary(Body) string        { return "" }

// Render returns the body as compact JSON.
func (Generic) Render(body Body) string {
	if body == nil {
		return "{}"
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(body))
	}
	return string(data)
}
