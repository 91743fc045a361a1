package topics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		wantErr bool
	}{
		{name: "single segment", topic: "calendar"},
		{name: "dotted", topic: "calendar.meeting.new"},
		{name: "digits and underscores", topic: "app2.meeting_v1.new"},
		{name: "empty", topic: "", wantErr: true},
		{name: "uppercase", topic: "Calendar.New", wantErr: true},
		{name: "spaces", topic: "calendar new", wantErr: true},
		{name: "empty segment", topic: "calendar..new", wantErr: true},
		{name: "trailing dot", topic: "calendar.", wantErr: true},
		{name: "leading digit", topic: "1calendar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := topics.ValidateName(tt.topic)
			if tt.wantErr {
				assert.ErrorIs(t, err, topics.ErrInvalidTopicName)
				return
			}
			assert.NoError(t, err)
		})
	}
}
