package fedocal

// Topics published by fedocal.
const (
	TopicReminder       = "calendar.reminder"
	TopicCalendarNew    = "calendar.calendar.new"
	TopicCalendarUpdate = "calendar.calendar.update"
	TopicCalendarUpload = "calendar.calendar.upload"
	TopicCalendarDelete = "calendar.calendar.delete"
	TopicCalendarClear  = "calendar.calendar.clear"
	TopicMeetingNew     = "calendar.meeting.new"
	TopicMeetingUpdate  = "calendar.meeting.update"
	TopicMeetingDelete  = "calendar.meeting.deleted"
)
