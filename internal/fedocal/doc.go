// Package fedocal defines the messages published by the fedocal calendaring
// application: reminders and the lifecycle events of calendars and meetings.
//
// Each message type is a messages.AppKind backed by a JSON Schema built from
// the shared calendar and meeting sub-schemas. Register adds all of them to a
// topics.Registry.
package fedocal
