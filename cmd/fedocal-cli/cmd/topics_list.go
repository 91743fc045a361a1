package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/internal/catalog"
	"github.com/fedora-infra/fedocal-messages/internal/pubsub"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

var (
	listOutputFormat string
	listTopicFilter  string
)

// topicsListCmd represents the topics list command
var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered topics",
	Long: `List every message kind currently registered, in registration order.

Examples:
  fedocal-cli topics list                              # Table format
  fedocal-cli topics list --format json                # JSON format
  fedocal-cli topics list --topic 'calendar.meeting.*' # Only meeting topics

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	RunE: topicsListHandler,
}

func topicsListHandler(cmd *cobra.Command, args []string) error {
	registry := catalog.Initialize()

	all, err := registry.List()
	if err != nil {
		// Broken providers are reported but do not hide the healthy ones.
		slog.Error("Some providers failed to load", "error", err)
	}

	var kinds []topics.Registered
	for _, reg := range all {
		if listTopicFilter == "" || pubsub.MatchTopic(reg.Kind.Topic(), listTopicFilter) {
			kinds = append(kinds, reg)
		}
	}

	out := cmd.OutOrStdout()
	if len(kinds) == 0 && listTopicFilter != "" {
		fmt.Fprintf(out, "No topics found matching: %s\n", listTopicFilter)
		return nil
	}

	switch listOutputFormat {
	case "json":
		if err := catalog.DisplayKindsJSON(out, kinds); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case "table":
		catalog.DisplayKindsTable(out, kinds)
	default:
		return fmt.Errorf("unsupported output format '%s', use 'table' or 'json'", listOutputFormat)
	}
	return nil
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)

	topicsListCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&listTopicFilter, "topic", "t", "", "Only list topics matching this pattern (trailing * matches a prefix)")
}
