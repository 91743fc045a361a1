package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fedora-infra/fedocal-messages/internal/consumer"
	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

// KindDisplay represents a registered kind for display purposes
type KindDisplay struct {
	Topic       string          `json:"topic"`
	Provider    string          `json:"provider"`
	Package     string          `json:"package,omitempty"`
	App         string          `json:"app,omitempty"`
	Description string          `json:"description"`
	SchemaID    string          `json:"schema_id,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
}

func newKindDisplay(reg topics.Registered, withSchema bool) (KindDisplay, error) {
	d := KindDisplay{
		Topic:       reg.Kind.Topic(),
		Provider:    reg.Provider.Name,
		Package:     reg.Provider.Package,
		Description: reg.Kind.Description(),
	}
	if app, ok := reg.Kind.(messages.AppKind); ok {
		d.App = app.AppName()
	}
	if s := reg.Kind.Schema(); s != nil {
		d.SchemaID = s.ID
		if withSchema {
			data, err := json.Marshal(s)
			if err != nil {
				return KindDisplay{}, fmt.Errorf("failed to encode schema of %s: %w", d.Topic, err)
			}
			d.Schema = data
		}
	}
	return d, nil
}

// DisplayKindsTable displays kinds in a formatted table
func DisplayKindsTable(out io.Writer, kinds []topics.Registered) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TOPIC\tAPP\tPROVIDER\tDESCRIPTION")
	fmt.Fprintln(w, "-----\t---\t--------\t-----------")

	if len(kinds) == 0 {
		fmt.Fprintln(w, "No topics found")
		return
	}
	for _, reg := range kinds {
		d, _ := newKindDisplay(reg, false)
		app := d.App
		if app == "" {
			app = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			d.Topic,
			app,
			d.Provider,
			truncateString(d.Description, 60))
	}
}

// DisplayKindsJSON displays kinds in JSON format
func DisplayKindsJSON(out io.Writer, kinds []topics.Registered) error {
	displays := make([]KindDisplay, 0, len(kinds))
	for _, reg := range kinds {
		d, err := newKindDisplay(reg, false)
		if err != nil {
			return err
		}
		displays = append(displays, d)
	}

	output := struct {
		Topics []KindDisplay `json:"topics"`
		Count  int           `json:"count"`
	}{
		Topics: displays,
		Count:  len(displays),
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// DisplayKindDetails displays detailed information, schema included, for one kind
func DisplayKindDetails(out io.Writer, reg topics.Registered, format string) error {
	d, err := newKindDisplay(reg, true)
	if err != nil {
		return err
	}

	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(d)
	}

	fmt.Fprintf(out, "Topic:       %s\n", d.Topic)
	fmt.Fprintf(out, "App:         %s\n", d.App)
	fmt.Fprintf(out, "Provider:    %s\n", d.Provider)
	fmt.Fprintf(out, "Package:     %s\n", d.Package)
	fmt.Fprintf(out, "Description: %s\n", d.Description)
	if d.SchemaID != "" {
		fmt.Fprintf(out, "Schema:      %s\n", d.SchemaID)
		indented, err := json.MarshalIndent(json.RawMessage(d.Schema), "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s\n", indented)
	}
	return nil
}

// DisplayNotification prints a rendered message
func DisplayNotification(out io.Writer, n consumer.Notification, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(n)
	}

	if !n.Known {
		fmt.Fprintf(out, "Topic:   %s (unrecognized)\n", n.Topic)
		fmt.Fprintf(out, "Body:    %s\n", n.Text)
		return nil
	}
	fmt.Fprintf(out, "Topic:   %s\n", n.Topic)
	if n.App != "" {
		fmt.Fprintf(out, "App:     %s\n", n.App)
	}
	fmt.Fprintf(out, "Summary: %s\n", n.Summary)
	fmt.Fprintf(out, "Text:    %s\n", n.Text)
	if n.Agent != "" {
		fmt.Fprintf(out, "Agent:   %s\n", n.Agent)
		fmt.Fprintf(out, "Avatar:  %s\n", n.Avatar)
	}
	if n.URL != "" {
		fmt.Fprintf(out, "URL:     %s\n", n.URL)
	}
	return nil
}

// FormatNotificationLine renders n as a single log-style line.
func FormatNotificationLine(n consumer.Notification) string {
	if !n.Known {
		return fmt.Sprintf("[%s] %s", n.Topic, n.Text)
	}
	app := n.App
	if app == "" {
		app = n.Topic
	}
	return fmt.Sprintf("[%s] %s", cases.Title(language.English).String(app), n.Text)
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
