package messages_test

import (
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedora-infra/fedocal-messages/internal/avatar"
	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/schema"
)

// pingKind is a small application kind used to exercise the envelope.
type pingKind struct {
	messages.BaseKind
}

func (pingKind) AppName() string { return "pinger" }
func (pingKind) AppIcon() string { return "https://example.com/ping.png" }
func (pingKind) Agent(b messages.Body) (string, bool) {
	return b.StringOK("agent")
}
func (pingKind) Render(b messages.Body) string  { return b.String("agent") + " pinged" }
func (pingKind) Summary(b messages.Body) string { return "ping" }

func newPingKind(t *testing.T) pingKind {
	t.Helper()
	base, err := messages.NewBaseKind("test.ping", "A ping",
		schema.Body("test.ping", "A ping", map[string]*jsonschema.Schema{
			"agent": schema.String(),
		}, "agent"))
	require.NoError(t, err)
	return pingKind{BaseKind: base}
}

func TestNewBaseKind(t *testing.T) {
	t.Run("empty topic", func(t *testing.T) {
		_, err := messages.NewBaseKind("", "x", schema.Object(nil))
		assert.Error(t, err)
	})

	t.Run("nil schema", func(t *testing.T) {
		_, err := messages.NewBaseKind("test.ping", "x", nil)
		assert.Error(t, err)
	})

	t.Run("accessors", func(t *testing.T) {
		k := newPingKind(t)
		assert.Equal(t, "test.ping", k.Topic())
		assert.Equal(t, "A ping", k.Description())
		assert.Equal(t, schema.BaseURL+"test.ping", k.Schema().ID)
		assert.Equal(t, "test.ping", k.String())
	})

	t.Run("zero value refuses to validate", func(t *testing.T) {
		var k messages.BaseKind
		assert.Error(t, k.Validate(messages.Body{}))
	})
}

func TestMessageCapabilities(t *testing.T) {
	k := newPingKind(t)
	msg := messages.New(k, messages.Body{"agent": "dummy_user"})

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "test.ping", msg.Topic)
	assert.Equal(t, messages.SeverityInfo, msg.Severity)
	assert.NoError(t, msg.Validate())
	assert.Equal(t, "dummy_user pinged", msg.String())
	assert.Equal(t, "ping", msg.Summary())

	app, ok := msg.AppName()
	assert.True(t, ok)
	assert.Equal(t, "pinger", app)

	agent, ok := msg.Agent()
	assert.True(t, ok)
	assert.Equal(t, "dummy_user", agent)

	url, ok := msg.AgentAvatar(avatar.Default)
	assert.True(t, ok)
	assert.Equal(t, avatar.URL("dummy_user"), url)

	assert.Equal(t, []string{"dummy_user"}, msg.Usernames())

	_, ok = msg.URL()
	assert.False(t, ok, "no thing.url in body")
}

func TestMessageURL(t *testing.T) {
	msg := messages.New(newPingKind(t), messages.Body{
		"agent": "dummy_user",
		"thing": map[string]any{"url": "https://calendar.example.com/m/42"},
	})

	url, ok := msg.URL()
	assert.True(t, ok)
	assert.Equal(t, "https://calendar.example.com/m/42", url)
}

func TestMessageWithoutAgent(t *testing.T) {
	msg := messages.New(newPingKind(t), messages.Body{})

	_, ok := msg.Agent()
	assert.False(t, ok)
	_, ok = msg.AgentAvatar(avatar.Default)
	assert.False(t, ok)
	assert.Equal(t, []string{}, msg.Usernames())

	err := msg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrInvalid)
}

func TestGeneric(t *testing.T) {
	g := messages.NewGeneric()
	assert.True(t, messages.IsGeneric(g))
	assert.True(t, messages.IsGeneric(&g))
	assert.False(t, messages.IsGeneric(newPingKind(t)))

	_, isApp := messages.Kind(g).(messages.AppKind)
	assert.False(t, isApp, "fallback kind must not carry an application identity")

	msg, err := messages.Decode("unknown.topic.xyz", g, []byte(`{"b": 2, "a": [1, null]}`))
	require.NoError(t, err)
	assert.Equal(t, "unknown.topic.xyz", msg.Topic)
	assert.NoError(t, msg.Validate())
	assert.Equal(t, `{"a":[1,null],"b":2}`, msg.String())
	assert.Empty(t, msg.Summary())

	_, ok := msg.AppName()
	assert.False(t, ok)
	_, ok = msg.AppIcon()
	assert.False(t, ok)
	assert.Empty(t, msg.Usernames())
	assert.Nil(t, g.Schema())
}

func TestDecode(t *testing.T) {
	k := newPingKind(t)

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{name: "object", payload: `{"agent": "ralph"}`},
		{name: "null body", payload: `null`},
		{name: "array body", payload: `[1, 2]`, wantErr: true},
		{name: "garbage", payload: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := messages.Decode(k.Topic(), k, []byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, msg.Body)
		})
	}

	_, err := messages.Decode("x", nil, []byte(`{}`))
	assert.Error(t, err)
}

func TestMarshalJSON(t *testing.T) {
	k := newPingKind(t)
	msg := messages.New(k, messages.Body{"agent": "ralph"})
	msg.Severity = messages.SeverityWarning

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	w, err := messages.ParseWire(data)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, w.ID)
	assert.Equal(t, "test.ping", w.Topic)
	assert.Equal(t, "WARNING", w.Headers[messages.HeaderSeverity])
	assert.Equal(t, schema.BaseURL+"test.ping", w.Headers[messages.HeaderSchema])
	assert.JSONEq(t, `{"agent": "ralph"}`, string(w.Body))
}

func TestParseWire(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "valid", data: `{"topic": "calendar.reminder", "body": {}}`},
		{name: "missing topic", data: `{"body": {}}`, wantErr: true},
		{name: "missing body", data: `{"topic": "a.b"}`, wantErr: true},
		{name: "scalar body", data: `{"topic": "a.b", "body": 3}`, wantErr: true},
		{name: "not json", data: `topic: a.b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := messages.ParseWire([]byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, messages.ErrMalformedWire)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    messages.Severity
		wantErr bool
	}{
		{in: "", want: messages.SeverityInfo},
		{in: "debug", want: messages.SeverityDebug},
		{in: "WARNING", want: messages.SeverityWarning},
		{in: "40", want: messages.SeverityError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := messages.ParseSeverity(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.String(), got.String())
		})
	}
}

func TestBodyLookup(t *testing.T) {
	body := messages.Body{
		"meeting": messages.Body{"meeting_name": "wat", "meeting_id": 42.0},
		"calendar": map[string]any{
			"calendar_name":        "test_calendar",
			"calendar_description": nil,
		},
	}

	assert.Equal(t, "wat", body.String("meeting", "meeting_name"))
	assert.Equal(t, "42", body.String("meeting", "meeting_id"))
	assert.Equal(t, "test_calendar", body.String("calendar", "calendar_name"))
	assert.Equal(t, "", body.String("calendar", "calendar_description"))
	assert.Equal(t, "", body.String("calendar", "missing"))
	assert.Equal(t, "", body.String("meeting", "meeting_name", "deeper"))

	_, ok := body.StringOK("calendar", "calendar_description")
	assert.False(t, ok)
}
