package topics

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

// entry is a registered provider and its lazily built kind.
type entry struct {
	provider Provider
	once     sync.Once
	kind     messages.Kind
	err      error
}

func (e *entry) load() (messages.Kind, error) {
	e.once.Do(func() {
		kind, err := e.provider.New()
		switch {
		case err != nil:
			e.err = &ProviderError{Provider: e.provider.Name, Package: e.provider.Package, Cause: err}
		case kind == nil:
			e.err = &ProviderError{Provider: e.provider.Name, Package: e.provider.Package, Cause: ErrNilKind}
		default:
			e.kind = kind
		}
	})
	return e.kind, e.err
}

// Registered is a provider together with the kind it built.
type Registered struct {
	Provider Provider
	Kind     messages.Kind
}

// Registry holds message providers in registration order.
type Registry struct {
	entries []*entry
	mu      sync.RWMutex
}

// NewRegistry creates a new, empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a provider to the registry
func (r *Registry) Register(p Provider) error {
	if p.Name == "" {
		return errors.New("provider name cannot be empty")
	}
	if p.New == nil {
		return fmt.Errorf("provider %s has no constructor", p.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.provider.Name == p.Name {
			return fmt.Errorf("provider already registered: %s", p.Name)
		}
	}
	r.entries = append(r.entries, &entry{provider: p})
	return nil
}

// MustRegister registers a provider and panics if registration fails
func (r *Registry) MustRegister(p Provider) {
	if err := r.Register(p); err != nil {
		panic(fmt.Sprintf("failed to register provider: %v", err))
	}
}

// Providers returns the registered providers in registration order
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.provider
	}
	return out
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Reset removes all registered providers
// Primarily for testing purposes
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}

func (r *Registry) snapshot() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*entry(nil), r.entries...)
}

// Get returns the kind registered for topic. It reports false when no
// provider matches. A provider that fails to load stops the search and its
// *ProviderError is returned.
func (r *Registry) Get(topic string) (messages.Kind, bool, error) {
	for _, e := range r.snapshot() {
		kind, err := e.load()
		if err != nil {
			return nil, false, err
		}
		if kind.Topic() == topic {
			return kind, true, nil
		}
	}
	return nil, false, nil
}

// Resolve returns the kind registered for topic, or the generic fallback
// kind when no provider matches. The only error is a *ProviderError.
func (r *Registry) Resolve(topic string) (messages.Kind, error) {
	kind, ok, err := r.Get(topic)
	if err != nil {
		return nil, err
	}
	if !ok {
		return messages.NewGeneric(), nil
	}
	return kind, nil
}

// List builds every provider's kind. Providers that fail to load are left
// out of the result and reported in the joined error.
func (r *Registry) List() ([]Registered, error) {
	var (
		out  []Registered
		errs []error
	)
	for _, e := range r.snapshot() {
		kind, err := e.load()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, Registered{Provider: e.provider, Kind: kind})
	}
	return out, errors.Join(errs...)
}

// Topics returns the topics of every loadable provider in registration order.
func (r *Registry) Topics() []string {
	registered, _ := r.List()
	out := make([]string, len(registered))
	for i, reg := range registered {
		out[i] = reg.Kind.Topic()
	}
	return out
}

// Check reports provider load failures, malformed topic names and topics
// claimed by more than one provider. Each contested topic yields a single
// *DuplicateTopicError naming all of its owners.
func (r *Registry) Check() []error {
	var problems []error
	owners := make(map[string]string)
	duplicates := make(map[string]*DuplicateTopicError)

	for _, e := range r.snapshot() {
		kind, err := e.load()
		if err != nil {
			problems = append(problems, err)
			continue
		}
		topic := kind.Topic()
		if err := ValidateName(topic); err != nil {
			problems = append(problems, fmt.Errorf("provider %s: %w", e.provider.Name, err))
		}
		if dup, seen := duplicates[topic]; seen {
			dup.Owners = append(dup.Owners, e.provider.Name)
			continue
		}
		if owner, seen := owners[topic]; seen {
			dup := &DuplicateTopicError{Topic: topic, Owners: []string{owner, e.provider.Name}}
			duplicates[topic] = dup
			problems = append(problems, dup)
			continue
		}
		owners[topic] = e.provider.Name
	}
	return problems
}

// Default registry, corresponding to the fedora.messages extension point
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the default global registry
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register registers a provider with the default registry
func Register(p Provider) error {
	return Default().Register(p)
}

// MustRegister registers a provider with the default registry and panics on error
func MustRegister(p Provider) {
	Default().MustRegister(p)
}

// Resolve resolves topic against the default registry
func Resolve(topic string) (messages.Kind, error) {
	return Default().Resolve(topic)
}

// List returns all kinds from the default registry
func List() ([]Registered, error) {
	return Default().List()
}
