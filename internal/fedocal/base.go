package fedocal

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/schema"
)

const (
	// AppName identifies fedocal messages.
	AppName = "fedocal"
	// AppIcon is the fedocal icon shown next to notifications.
	AppIcon = "https://apps.fedoraproject.org/img/icons/fedocal.png"
)

// base carries what every fedocal kind shares.
type base struct {
	messages.BaseKind
	hasAgent bool
}

func (base) AppName() string { return AppName }

func (base) AppIcon() string { return AppIcon }

// Agent returns the body's agent for kinds that declare one.
func (b base) Agent(body messages.Body) (string, bool) {
	if !b.hasAgent {
		return "", false
	}
	return body.StringOK("agent")
}

// Which shared sub-schemas a body carries next to the calendar.
const (
	withMeeting = 1 << iota
	withAgent
)

func newBase(topic, description string, parts int) (base, error) {
	props := map[string]*jsonschema.Schema{
		"calendar": schema.Calendar(),
	}
	var required []string
	if parts&withAgent != 0 {
		props["agent"] = schema.String()
		required = append(required, "agent")
	}
	required = append(required, "calendar")
	if parts&withMeeting != 0 {
		props["meeting"] = schema.Meeting()
		required = append(required, "meeting")
	}

	k, err := messages.NewBaseKind(topic, description, schema.Body(topic, description, props, required...))
	if err != nil {
		return base{}, err
	}
	return base{BaseKind: k, hasAgent: parts&withAgent != 0}, nil
}

func calendarName(b messages.Body) string {
	return b.String("calendar", "calendar_name")
}

func meetingName(b messages.Body) string {
	return b.String("meeting", "meeting_name")
}
