package fedocal

import (
	"fmt"
	"time"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/reltime"
)

var _ messages.AppKind = (*ReminderV1)(nil)

// meetingLayout is how meeting_date and meeting_time_start combine.
const meetingLayout = "2006-01-02 15:04:05"

// Option configures a ReminderV1.
type Option func(*ReminderV1)

// WithClock replaces the clock used to compute how far away a meeting is.
func WithClock(now func() time.Time) Option {
	return func(k *ReminderV1) {
		if now != nil {
			k.now = now
		}
	}
}

// ReminderV1 is published ahead of a meeting. It has no agent.
type ReminderV1 struct {
	base
	now func() time.Time
}

// NewReminderV1 builds the calendar.reminder kind.
func NewReminderV1(opts ...Option) (*ReminderV1, error) {
	b, err := newBase(TopicReminder, "Schema for messages sent when a reminder is sent", withMeeting)
	if err != nil {
		return nil, err
	}
	k := &ReminderV1{base: b, now: time.Now}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

func (k *ReminderV1) Render(body messages.Body) string {
	return fmt.Sprintf("Friendly reminder!  The '%s' meeting from the '%s' calendar starts %s",
		meetingName(body), calendarName(body), k.startsIn(body))
}

func (k *ReminderV1) Summary(body messages.Body) string {
	return fmt.Sprintf("Remember about the meeting '%s' from the '%s' calendar",
		meetingName(body), calendarName(body))
}

// startsIn phrases the distance from now to the meeting start. The meeting
// time is read as UTC; meeting_timezone is not applied.
func (k *ReminderV1) startsIn(body messages.Body) string {
	date := body.String("meeting", "meeting_date")
	start := body.String("meeting", "meeting_time_start")

	at, err := time.ParseInLocation(meetingLayout, date+" "+start, time.UTC)
	if err != nil {
		return fmt.Sprintf("at %s %s", date, start)
	}
	return reltime.Until(at, k.now())
}
