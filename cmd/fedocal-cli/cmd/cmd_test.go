package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedora-infra/fedocal-messages/internal/fedocal"
	"github.com/fedora-infra/fedocal-messages/internal/schema"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Flag values live in package variables and survive between runs.
	listOutputFormat, listTopicFilter = "table", ""
	getOutputFormat, renderOutputFormat = "table", "text"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = prev })
	return appFs
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fedocal-cli v"+version+"\n", out)
}

func TestTopicsList(t *testing.T) {
	t.Run("json lists every fedocal topic", func(t *testing.T) {
		out, err := run(t, "", "topics", "list", "--format", "json")
		require.NoError(t, err)

		var listed struct {
			Topics []struct {
				Topic string `json:"topic"`
			} `json:"topics"`
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &listed))
		assert.Equal(t, 9, listed.Count)
		var names []string
		for _, l := range listed.Topics {
			names = append(names, l.Topic)
		}
		assert.Equal(t, []string{
			"calendar.reminder",
			"calendar.calendar.new",
			"calendar.calendar.update",
			"calendar.calendar.upload",
			"calendar.calendar.delete",
			"calendar.calendar.clear",
			"calendar.meeting.new",
			"calendar.meeting.update",
			"calendar.meeting.deleted",
		}, names)
	})

	t.Run("filter by prefix", func(t *testing.T) {
		out, err := run(t, "", "topics", "list", "--topic", "calendar.meeting.*")
		require.NoError(t, err)
		assert.Contains(t, out, "calendar.meeting.new")
		assert.NotContains(t, out, "calendar.reminder")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := run(t, "", "topics", "list", "--topic", "bodhi.*")
		require.NoError(t, err)
		assert.Contains(t, out, "No topics found matching: bodhi.*")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := run(t, "", "topics", "list", "--format", "yaml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}

func TestTopicsGet(t *testing.T) {
	out, err := run(t, "", "topics", "get", "calendar.meeting.update", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"topic": "calendar.meeting.update"`)
	assert.Contains(t, out, `"provider": "fedocal.meeting.update.v1"`)

	_, err = run(t, "", "topics", "get", "calendar.unknown")
	assert.ErrorContains(t, err, "not found")
}

func TestTopicsValidate(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    string
		wantErr bool
	}{
		{name: "registered topic", topic: "calendar.reminder", want: "✅ Topic 'calendar.reminder' is valid"},
		{name: "bad name", topic: "Calendar.New", want: "❌ Topic name validation failed", wantErr: true},
		{name: "unknown topic", topic: "calendar.unknown", want: "❌ Topic validation failed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", "topics", "validate", tt.topic)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

const calendarJSON = `{
	"calendar_name": "infra",
	"calendar_contact": "infra@lists.fedoraproject.org",
	"calendar_description": "Infrastructure meetings",
	"calendar_editor_group": null,
	"calendar_admin_group": "sysadmin-main",
	"calendar_status": "Enabled"
}`

func TestValidateTopicReportsSharedTopic(t *testing.T) {
	registry := topics.NewRegistry()
	require.NoError(t, fedocal.Register(registry))
	registry.MustRegister(topics.NewTestProvider("rogue.reminder", fedocal.TopicReminder))

	var out bytes.Buffer
	err := validateTopic(&out, registry, fedocal.TopicReminder)
	require.ErrorIs(t, err, topics.ErrDuplicateTopic)
	assert.Contains(t, out.String(), "❌ Topic validation failed")
	assert.Contains(t, out.String(), "fedocal.reminder.v1 and rogue.reminder")

	out.Reset()
	require.NoError(t, validateTopic(&out, registry, fedocal.TopicMeetingNew))
	assert.Contains(t, out.String(), "✅ Topic 'calendar.meeting.new' is valid")
}

func TestRender(t *testing.T) {
	const body = `{
		"agent": "dummy_user",
		"calendar": ` + calendarJSON + `,
		"meeting": {
			"meeting_id": 42,
			"meeting_name": "standup",
			"meeting_manager": ["dummy_user", null],
			"meeting_date": "2026-10-20",
			"meeting_date_end": "2026-10-20",
			"meeting_time_start": "13:00:00",
			"meeting_time_stop": "14:00:00",
			"meeting_timezone": "UTC",
			"meeting_information": null,
			"meeting_location": "#fedora-meeting",
			"calendar_name": "infra"
		}
	}`

	t.Run("from file", func(t *testing.T) {
		fs := useMemFs(t)
		require.NoError(t, afero.WriteFile(fs, "/tmp/body.json", []byte(body), 0o644))

		out, err := run(t, "", "render", "calendar.meeting.new", "/tmp/body.json")
		require.NoError(t, err)
		assert.Contains(t, out, "Topic:   calendar.meeting.new")
		assert.Contains(t, out, "Agent:   dummy_user")
		assert.Contains(t, out, "https://seccdn.libravatar.org/avatar/")
	})

	t.Run("from stdin as json", func(t *testing.T) {
		out, err := run(t, body, "render", "calendar.meeting.new", "-", "--format", "json")
		require.NoError(t, err)

		var n map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &n))
		assert.Equal(t, "fedocal", n["app"])
		assert.Equal(t, true, n["known"])
	})

	t.Run("unknown topic falls back", func(t *testing.T) {
		out, err := run(t, `{"x": 1}`, "render", "bodhi.update.comment", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "(unrecognized)")
		assert.Contains(t, out, `{"x":1}`)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := run(t, `{"calendar": `+calendarJSON+`}`, "render", "calendar.calendar.new", "-")
		assert.ErrorIs(t, err, schema.ErrInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		useMemFs(t)
		_, err := run(t, "", "render", "calendar.reminder", "/nope.json")
		assert.ErrorContains(t, err, "failed to read /nope.json")
	})
}

func TestConsumeRequiresSpool(t *testing.T) {
	t.Setenv("SPOOL_DIR", "")
	consumeSpoolDir = ""
	_, err := run(t, "", "consume")
	assert.ErrorContains(t, err, "no spool directory given")
}
