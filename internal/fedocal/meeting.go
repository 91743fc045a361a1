package fedocal

import (
	"fmt"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

var (
	_ messages.AppKind = (*MeetingNewV1)(nil)
	_ messages.AppKind = (*MeetingUpdateV1)(nil)
	_ messages.AppKind = (*MeetingDeleteV1)(nil)
)

// MeetingNewV1 is published when a meeting is created.
type MeetingNewV1 struct{ base }

// NewMeetingNewV1 builds the calendar.meeting.new kind.
func NewMeetingNewV1() (*MeetingNewV1, error) {
	b, err := newBase(TopicMeetingNew, "Schema for messages sent when a meeting is created", withAgent|withMeeting)
	if err != nil {
		return nil, err
	}
	return &MeetingNewV1{b}, nil
}

func (k *MeetingNewV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has created a new meeting %s in calendar %s",
		body.String("agent"), meetingName(body), calendarName(body))
}

func (k *MeetingNewV1) Summary(body messages.Body) string { return k.Render(body) }

// MeetingUpdateV1 is published when a meeting is updated.
type MeetingUpdateV1 struct{ base }

// NewMeetingUpdateV1 builds the calendar.meeting.update kind.
func NewMeetingUpdateV1() (*MeetingUpdateV1, error) {
	b, err := newBase(TopicMeetingUpdate, "Schema for messages sent when a meeting is updated", withAgent|withMeeting)
	if err != nil {
		return nil, err
	}
	return &MeetingUpdateV1{b}, nil
}

func (k *MeetingUpdateV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has updated meeting %s in calendar %s",
		body.String("agent"), meetingName(body), calendarName(body))
}

func (k *MeetingUpdateV1) Summary(body messages.Body) string { return k.Render(body) }

// MeetingDeleteV1 is published when a meeting is deleted.
type MeetingDeleteV1 struct{ base }

// NewMeetingDeleteV1 builds the calendar.meeting.deleted kind.
func NewMeetingDeleteV1() (*MeetingDeleteV1, error) {
	b, err := newBase(TopicMeetingDelete, "Schema for messages sent when a meeting is deleted", withAgent|withMeeting)
	if err != nil {
		return nil, err
	}
	return &MeetingDeleteV1{b}, nil
}

func (k *MeetingDeleteV1) Render(body messages.Body) string {
	return fmt.Sprintf("%s has deleted the meeting %s from the calendar %s",
		body.String("agent"), meetingName(body), calendarName(body))
}

func (k *MeetingDeleteV1) Summary(body messages.Body) string { return k.Render(body) }
