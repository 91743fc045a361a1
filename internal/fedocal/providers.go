package fedocal

import (
	"fmt"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

// Package is the distribution name reported by fedocal providers.
const Package = "fedocal-messages"

// Providers returns a provider for every fedocal kind. opts apply to the
// reminder kind.
func Providers(opts ...Option) []topics.Provider {
	provider := func(name string, build func() (messages.Kind, error)) topics.Provider {
		return topics.Provider{Name: name, Package: Package, New: build}
	}

	return []topics.Provider{
		provider("fedocal.reminder.v1", func() (messages.Kind, error) { return NewReminderV1(opts...) }),
		provider("fedocal.calendar.new.v1", func() (messages.Kind, error) { return NewCalendarNewV1() }),
		provider("fedocal.calendar.update.v1", func() (messages.Kind, error) { return NewCalendarUpdateV1() }),
		provider("fedocal.calendar.upload.v1", func() (messages.Kind, error) { return NewCalendarUploadV1() }),
		provider("fedocal.calendar.delete.v1", func() (messages.Kind, error) { return NewCalendarDeleteV1() }),
		provider("fedocal.calendar.clear.v1", func() (messages.Kind, error) { return NewCalendarClearV1() }),
		provider("fedocal.meeting.new.v1", func() (messages.Kind, error) { return NewMeetingNewV1() }),
		provider("fedocal.meeting.update.v1", func() (messages.Kind, error) { return NewMeetingUpdateV1() }),
		provider("fedocal.meeting.delete.v1", func() (messages.Kind, error) { return NewMeetingDeleteV1() }),
	}
}

// Register adds every fedocal provider to r.
func Register(r *topics.Registry, opts ...Option) error {
	for _, p := range Providers(opts...) {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("failed to register %s: %w", p.Name, err)
		}
	}
	return nil
}

// MustRegister registers every fedocal provider with r and panics on error
func MustRegister(r *topics.Registry, opts ...Option) {
	if err := Register(r, opts...); err != nil {
		panic(fmt.Sprintf("failed to register fedocal providers: %v", err))
	}
}
