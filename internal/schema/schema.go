// Package schema provides the JSON Schema building blocks shared by message
// kinds and the validation entry point used when a message body is checked.
//
// Schemas are plain *jsonschema.Schema trees. Every constructor returns a fresh
// tree so the same sub-schema can be embedded in several message schemas
// without sharing nodes.
package schema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// BaseURL prefixes the id of every message body schema.
const BaseURL = "http://fedoraproject.org/message-schema/"

// JSON Schema primitive type names.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeObject = "object"
	TypeArray  = "array"
	TypeNull   = "null"
)

// String returns a schema accepting any string.
func String() *jsonschema.Schema {
	return &jsonschema.Schema{Type: TypeString}
}

// Number returns a schema accepting any number.
func Number() *jsonschema.Schema {
	return &jsonschema.Schema{Type: TypeNumber}
}

// Nullable returns a schema accepting values of type t or null.
// Combined with membership in Required it describes a field that must be
// present but may hold null.
func Nullable(t string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{t, TypeNull}}
}

// ArrayOf returns a schema for an array whose items match items.
func ArrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: TypeArray, Items: items}
}

// Object returns an object schema with the given properties and required keys.
func Object(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       TypeObject,
		Properties: properties,
		Required:   required,
	}
}

// Body returns the top-level schema of a message body published on topic.
func Body(topic, description string, properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	s := Object(properties, required...)
	s.ID = BaseURL + topic
	s.Description = description
	return s
}

// Calendar describes a calendar as it appears in message bodies.
func Calendar() *jsonschema.Schema {
	return Object(
		map[string]*jsonschema.Schema{
			"calendar_name":         String(),
			"calendar_contact":      String(),
			"calendar_description":  Nullable(TypeString),
			"calendar_editor_group": Nullable(TypeString),
			"calendar_admin_group":  Nullable(TypeString),
			"calendar_status":       String(),
		},
		"calendar_name",
		"calendar_contact",
		"calendar_description",
		"calendar_editor_group",
		"calendar_admin_group",
		"calendar_status",
	)
}

// Meeting describes a meeting as it appears in message bodies. Its
// calendar_name is the owning calendar's name, not a nested calendar.
func Meeting() *jsonschema.Schema {
	return Object(
		map[string]*jsonschema.Schema{
			"meeting_id":          Number(),
			"meeting_name":        String(),
			"meeting_manager":     ArrayOf(Nullable(TypeString)),
			"meeting_date":        String(),
			"meeting_date_end":    String(),
			"meeting_time_start":  String(),
			"meeting_time_stop":   String(),
			"meeting_timezone":    String(),
			"meeting_information": Nullable(TypeString),
			"meeting_location":    Nullable(TypeString),
			"calendar_name":       String(),
		},
		"meeting_id",
		"meeting_name",
		"meeting_manager",
		"meeting_date",
		"meeting_date_end",
		"meeting_time_start",
		"meeting_time_stop",
		"meeting_timezone",
		"meeting_information",
		"meeting_location",
		"calendar_name",
	)
}
