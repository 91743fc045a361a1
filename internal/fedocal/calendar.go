package fedocal

import (
	"fmt"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

// Ensure all calendar kinds implement messages.AppKind
var (
	_ messages.AppKind = (*CalendarNewV1)(nil)
	_ messages.AppKind = (*CalendarUpdateV1)(nil)
	_ messages.AppKind = (*CalendarUploadV1)(nil)
	_ messages.AppKind = (*CalendarDeleteV1)(nil)
	_ messages.AppKind = (*CalendarClearV1)(nil)
)

// CalendarNewV1 is published when a calendar is created.
type CalendarNewV1 struct{ base }

// NewCalendarNewV1 builds the calendar.calendar.new kind.
func NewCalendarNewV1() (*CalendarNewV1, error) {
	b, err := newBase(TopicCalendarNew, "Schema for messages sent when a calendar is created", withAgent)
	if err != nil {
		return nil, err
	}
	return &CalendarNewV1{b}, nil
}

func (k *CalendarNewV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has created a new calendar %s", body.String("agent"), calendarName(body))
}

func (k *CalendarNewV1) Summary(body messages.Body) string { return k.Render(body) }

// CalendarUpdateV1 is published when a calendar is updated.
type CalendarUpdateV1 struct{ base }

// NewCalendarUpdateV1 builds the calendar.calendar.update kind.
func NewCalendarUpdateV1() (*CalendarUpdateV1, error) {
	b, err := newBase(TopicCalendarUpdate, "Schema for messages sent when a calendar is updated", withAgent)
	if err != nil {
		return nil, err
	}
	return &CalendarUpdateV1{b}, nil
}

func (k *CalendarUpdateV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has updated a calendar %s", body.String("agent"), calendarName(body))
}

func (k *CalendarUpdateV1) Summary(body messages.Body) string { return k.Render(body) }

// CalendarUploadV1 is published when meetings are uploaded into a calendar.
type CalendarUploadV1 struct{ base }

// NewCalendarUploadV1 builds the calendar.calendar.upload kind.
func NewCalendarUploadV1() (*CalendarUploadV1, error) {
	b, err := newBase(TopicCalendarUpload,
		"Schema for messages sent when meetings have been uploaded into the calendar", withAgent)
	if err != nil {
		return nil, err
	}
	return &CalendarUploadV1{b}, nil
}

func (k *CalendarUploadV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has uploaded meetings in the calendar %s", body.String("agent"), calendarName(body))
}

func (k *CalendarUploadV1) Summary(body messages.Body) string { return k.Render(body) }

// CalendarDeleteV1 is published when a calendar is deleted.
type CalendarDeleteV1 struct{ base }

// NewCalendarDeleteV1 builds the calendar.calendar.delete kind.
func NewCalendarDeleteV1() (*CalendarDeleteV1, error) {
	b, err := newBase(TopicCalendarDelete, "Schema for messages sent when a calendar is deleted", withAgent)
	if err != nil {
		return nil, err
	}
	return &CalendarDeleteV1{b}, nil
}

func (k *CalendarDeleteV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has deleted the calendar %s", body.String("agent"), calendarName(body))
}

func (k *CalendarDeleteV1) Summary(body messages.Body) string { return k.Render(body) }

// CalendarClearV1 is published when all meetings of a calendar are removed.
type CalendarClearV1 struct{ base }

// NewCalendarClearV1 builds the calendar.calendar.clear kind.
func NewCalendarClearV1() (*CalendarClearV1, error) {
	b, err := newBase(TopicCalendarClear, "Schema for messages sent when a calendar is cleared", withAgent)
	if err != nil {
		return nil, err
	}
	return &CalendarClearV1{b}, nil
}

func (k *CalendarClearV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has cleared the calendar %s", body.String("agent"), calendarName(body))
}

func (k *CalendarClearV1) Summary(body messages.Body) string { return k.Render(body) }
