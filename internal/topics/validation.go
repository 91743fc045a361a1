package topics

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidTopicName is returned when a topic is not a dot-delimited
	// sequence of lowercase identifiers
	ErrInvalidTopicName = errors.New("topic must be dot-delimited lowercase identifiers, e.g. 'calendar.meeting.new'")

	// ErrDuplicateTopic matches every *DuplicateTopicError via errors.Is.
	ErrDuplicateTopic = errors.New("topic provided more than once")
)

var topicNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)

// ValidateName checks that topic is well formed.
func ValidateName(topic string) error {
	if topic == "" {
		return fmt.Errorf("%w: empty topic", ErrInvalidTopicName)
	}
	if !topicNameRegex.MatchString(topic) {
		return fmt.Errorf("%w: %q", ErrInvalidTopicName, topic)
	}
	return nil
}

// DuplicateTopicError reports a topic claimed by more than one provider.
// Owners lists the providers in registration order; the first one wins
// at resolve time.
type DuplicateTopicError struct {
	Topic  string
	Owners []string
}

func (e *DuplicateTopicError) Error() string {
	owners := strings.Join(e.Owners[:len(e.Owners)-1], ", ") + " and " + e.Owners[len(e.Owners)-1]
	return fmt.Sprintf("%v: %s is provided by %s", ErrDuplicateTopic, e.Topic, owners)
}

// Is reports whether target is ErrDuplicateTopic
func (e *DuplicateTopicError) Is(target error) bool {
	return target == ErrDuplicateTopic
}
