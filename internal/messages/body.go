package messages

import (
	"encoding/json"
	"fmt"
)

// Body is a decoded message body.
type Body map[string]any

// Lookup walks nested objects along path and returns the value found there.
func (b Body) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(b)
	for _, key := range path {
		var obj map[string]any
		switch v := cur.(type) {
		case map[string]any:
			obj = v
		case Body:
			obj = v
		default:
			return nil, false
		}
		next, ok := obj[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// String returns the value at path formatted as text. Missing values and
// nulls yield the empty string.
func (b Body) String(path ...string) string {
	v, ok := b.Lookup(path...)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// StringOK returns the value at path when it is a non-empty string.
func (b Body) StringOK(path ...string) (string, bool) {
	v, ok := b.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// DecodeBody parses a JSON object into a Body. A JSON null yields an empty
// body.
func DecodeBody(data []byte) (Body, error) {
	var body Body
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to decode message body: %w", err)
	}
	if body == nil {
		body = Body{}
	}
	return body, nil
}
