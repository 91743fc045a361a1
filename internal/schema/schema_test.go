package schema_test

import (
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedora-infra/fedocal-messages/internal/schema"
)

func calendar() map[string]any {
	return map[string]any{
		"calendar_name":         "test_calendar",
		"calendar_contact":      "foo@example.com",
		"calendar_description":  "A test calendar",
		"calendar_editor_group": nil,
		"calendar_admin_group":  "syadmin",
		"calendar_status":       "active",
	}
}

func meeting() map[string]any {
	return map[string]any{
		"meeting_time_start":  "12:00:00",
		"meeting_name":        "wat",
		"meeting_id":          42,
		"meeting_time_stop":   "12:00:00",
		"calendar_name":       "awesome",
		"meeting_location":    nil,
		"meeting_date_end":    "2013-09-21",
		"meeting_timezone":    "UTC",
		"meeting_manager":     []string{"ralph"},
		"meeting_date":        "2013-09-20",
		"meeting_information": "awesome",
		"meeting_region":      nil,
	}
}

func TestCalendarSchema(t *testing.T) {
	v, err := schema.Compile(schema.Calendar())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(b map[string]any)
		wantErr string
	}{
		{
			name:   "valid calendar",
			mutate: func(b map[string]any) {},
		},
		{
			name:   "nullable field holding null",
			mutate: func(b map[string]any) { b["calendar_description"] = nil },
		},
		{
			name:    "nullable field omitted",
			mutate:  func(b map[string]any) { delete(b, "calendar_description") },
			wantErr: "calendar_description",
		},
		{
			name:    "required string omitted",
			mutate:  func(b map[string]any) { delete(b, "calendar_contact") },
			wantErr: "calendar_contact",
		},
		{
			name:    "number where string expected",
			mutate:  func(b map[string]any) { b["calendar_name"] = 42 },
			wantErr: "calendar_name",
		},
		{
			name:    "null where string expected",
			mutate:  func(b map[string]any) { b["calendar_status"] = nil },
			wantErr: "calendar_status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := calendar()
			tt.mutate(body)

			err := v.Validate(body)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMeetingSchema(t *testing.T) {
	v, err := schema.Compile(schema.Meeting())
	require.NoError(t, err)

	t.Run("valid meeting with extra fields", func(t *testing.T) {
		assert.NoError(t, v.Validate(meeting()))
	})

	t.Run("manager list may contain null", func(t *testing.T) {
		body := meeting()
		body["meeting_manager"] = []any{"ralph", nil}
		assert.NoError(t, v.Validate(body))
	})

	t.Run("manager must be a list", func(t *testing.T) {
		body := meeting()
		body["meeting_manager"] = "ralph"
		err := v.Validate(body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "meeting_manager")
	})

	t.Run("meeting id must be a number", func(t *testing.T) {
		body := meeting()
		body["meeting_id"] = "42"
		err := v.Validate(body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "meeting_id")
	})

	t.Run("end date before start date is not rejected", func(t *testing.T) {
		body := meeting()
		body["meeting_date_end"] = "2000-01-01"
		assert.NoError(t, v.Validate(body))
	})
}

func TestBodySchema(t *testing.T) {
	s := schema.Body("calendar.calendar.new", "Schema for messages sent when a calendar is created",
		map[string]*jsonschema.Schema{
			"agent":    schema.String(),
			"calendar": schema.Calendar(),
		},
		"agent", "calendar",
	)
	assert.Equal(t, schema.BaseURL+"calendar.calendar.new", s.ID)
	assert.Equal(t, schema.TypeObject, s.Type)

	v, err := schema.Compile(s)
	require.NoError(t, err)
	assert.Same(t, s, v.Schema())

	t.Run("valid body", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]any{"agent": "dummy_user", "calendar": calendar()}))
	})

	t.Run("missing agent", func(t *testing.T) {
		err := v.Validate(map[string]any{"calendar": calendar()})
		require.Error(t, err)

		var vErr *schema.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, s.ID, vErr.Schema)
		assert.Contains(t, err.Error(), "agent")
	})

	t.Run("nested failure", func(t *testing.T) {
		cal := calendar()
		delete(cal, "calendar_status")
		err := v.Validate(map[string]any{"agent": "dummy_user", "calendar": cal})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calendar_status")
	})

	t.Run("body that cannot be encoded", func(t *testing.T) {
		err := v.Validate(map[string]any{"agent": make(chan int)})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrInvalid)
	})
}

func TestCompileNil(t *testing.T) {
	_, err := schema.Compile(nil)
	assert.Error(t, err)
}
