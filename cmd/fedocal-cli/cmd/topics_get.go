package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/internal/catalog"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

var getOutputFormat string

// topicsGetCmd represents the topics get command
var topicsGetCmd = &cobra.Command{
	Use:   "get <topic>",
	Short: "Get detailed information about a specific topic",
	Long: `Show the provider, description and JSON body schema of a registered topic.

Examples:
  fedocal-cli topics get calendar.reminder
  fedocal-cli topics get calendar.meeting.new --format json

Output formats:
  table - Human-readable detailed format (default)
  json  - Machine-readable JSON format, schema included`,
	Args: cobra.ExactArgs(1),
	RunE: topicsGetHandler,
}

func topicsGetHandler(cmd *cobra.Command, args []string) error {
	topic := args[0]
	registry := catalog.Initialize()

	reg, found, err := lookup(registry, topic)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("topic '%s' not found; use 'fedocal-cli topics list' to see all available topics", topic)
	}

	if err := catalog.DisplayKindDetails(cmd.OutOrStdout(), reg, getOutputFormat); err != nil {
		return fmt.Errorf("failed to display topic details: %w", err)
	}
	return nil
}

// lookup finds the first registered provider for topic.
func lookup(registry *topics.Registry, topic string) (topics.Registered, bool, error) {
	all, err := registry.List()
	for _, reg := range all {
		if reg.Kind.Topic() == topic {
			return reg, true, nil
		}
	}
	if err != nil {
		return topics.Registered{}, false, err
	}
	return topics.Registered{}, false, nil
}

func init() {
	topicsCmd.AddCommand(topicsGetCmd)

	topicsGetCmd.Flags().StringVarP(&getOutputFormat, "format", "f", "table", "Output format (table, json)")
}
