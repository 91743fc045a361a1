package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/internal/catalog"
	"github.com/fedora-infra/fedocal-messages/internal/avatar"
	"github.com/fedora-infra/fedocal-messages/internal/consumer"
	"github.com/fedora-infra/fedocal-messages/internal/messages"
)

var renderOutputFormat string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <topic> <file|->",
	Short: "Validate a message body and print how it renders",
	Long: `Read a JSON message body from a file, or from stdin when the file is "-",
validate it against the topic's schema and print the resulting notification.

Unregistered topics are rendered by the generic fallback and never fail
validation.

Examples:
  fedocal-cli render calendar.meeting.new body.json
  echo '{"agent": "ralph", "calendar": {"calendar_name": "infra"}}' | fedocal-cli render calendar.calendar.new -
  fedocal-cli render calendar.reminder body.json --format json`,
	Args: cobra.ExactArgs(2),
	RunE: renderHandler,
}

func renderHandler(cmd *cobra.Command, args []string) error {
	topic, source := args[0], args[1]

	payload, err := readSource(cmd, source)
	if err != nil {
		return err
	}

	kind, err := catalog.Initialize().Resolve(topic)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", topic, err)
	}

	m, err := messages.Decode(topic, kind, payload)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return err
	}

	avatars := avatar.Default
	if cfg != nil {
		avatars = avatar.New(cfg.Avatar.Size, cfg.Avatar.Default)
	}
	n := consumer.NotificationFrom(m, avatars)
	if err := catalog.DisplayNotification(cmd.OutOrStdout(), n, renderOutputFormat); err != nil {
		return fmt.Errorf("failed to display notification: %w", err)
	}
	return nil
}

func readSource(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(appFs, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutputFormat, "format", "f", "text", "Output format (text, json)")
}
