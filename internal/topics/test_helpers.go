package topics

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

// testKind is a minimal implementation of messages.Kind for testing
type testKind struct {
	topic string
}

func (k testKind) Topic() string                  { return k.topic }
func (k testKind) Description() string            { return "test kind " + k.topic }
func (k testKind) Schema() *jsonschema.Schema     { return nil }
func (k testKind) Validate(messages.Body) error   { return nil }
func (k testKind) Render(b messages.Body) string  { return k.topic }
func (k testKind) Summary(b messages.Body) string { return k.topic }

// NewTestProvider creates a provider named name whose kind has the given topic
func NewTestProvider(name, topic string) Provider {
	return Provider{
		Name:    name,
		Package: "topics-test",
		New: func() (messages.Kind, error) {
			return testKind{topic: topic}, nil
		},
	}
}

// NewFailingProvider creates a provider whose constructor always returns err
func NewFailingProvider(name string, err error) Provider {
	return Provider{
		Name:    name,
		Package: "topics-test",
		New: func() (messages.Kind, error) {
			return nil, err
		},
	}
}
