package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrInvalid matches every *ValidationError via errors.Is.
var ErrInvalid = errors.New("message body does not match schema")

// ValidationError reports a body that failed its schema.
type ValidationError struct {
	// Schema is the id of the schema that rejected the body.
	Schema string
	// Err is the engine's description of the failing path and reason.
	Err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Schema == "" {
		return fmt.Sprintf("%v: %v", ErrInvalid, e.Err)
	}
	return fmt.Sprintf("%v (%s): %v", ErrInvalid, e.Schema, e.Err)
}

// Unwrap returns the underlying engine error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Validator checks values against a compiled schema. It is safe for
// concurrent use.
type Validator struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// Compile resolves s once so it can be used for repeated validation.
func Compile(s *jsonschema.Schema) (*Validator, error) {
	if s == nil {
		return nil, errors.New("schema cannot be nil")
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema %q: %w", s.ID, err)
	}
	return &Validator{schema: s, resolved: resolved}, nil
}

// Schema returns the schema the validator was compiled from.
func (v *Validator) Schema() *jsonschema.Schema {
	return v.schema
}

// Validate checks value against the schema. The value is first normalized to
// its JSON form so Go-native bodies and decoded wire bodies validate alike.
func (v *Validator) Validate(value any) error {
	instance, err := normalize(value)
	if err != nil {
		return &ValidationError{Schema: v.schema.ID, Err: err}
	}
	if err := v.resolved.Validate(instance); err != nil {
		return &ValidationError{Schema: v.schema.ID, Err: err}
	}
	return nil
}

// normalize round-trips value through encoding/json, turning structs, typed
// slices and integer kinds into the map[string]any / []any / float64 shapes
// that the wire format produces.
func normalize(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("body is not JSON-encodable: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}
	return out, nil
}
