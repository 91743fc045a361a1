package topics

import (
	"errors"
	"fmt"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

// ExtensionPoint names the group every message provider registers under.
const ExtensionPoint = "fedora.messages"

// Constructor builds the kind a provider contributes.
type Constructor func() (messages.Kind, error)

// Provider is one registered source of a message kind.
type Provider struct {
	// Name identifies the provider within the extension point, e.g.
	// "fedocal.reminder.v1".
	Name string

	// Package names the distribution the provider ships in.
	Package string

	// New builds the kind. It is called at most once per registry.
	New Constructor
}

var (
	// ErrProviderLoad matches every *ProviderError via errors.Is.
	ErrProviderLoad = errors.New("message provider failed to load")

	// ErrNilKind is the cause reported when a constructor returns no kind.
	ErrNilKind = errors.New("constructor returned a nil kind")
)

// ProviderError reports a provider whose kind could not be built.
type ProviderError struct {
	Provider string
	Package  string
	Cause    error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%v: %s (%s): %v", ErrProviderLoad, e.Provider, e.Package, e.Cause)
	}
	return fmt.Sprintf("%v: %s: %v", ErrProviderLoad, e.Provider, e.Cause)
}

// Unwrap returns the underlying cause
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrProviderLoad.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderLoad
}
