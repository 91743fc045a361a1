package cmd

import (
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore registered message topics",
	Long: `The topics command lists, inspects and checks the message kinds registered
under the fedora.messages extension point.

Available subcommands:
  list      List all registered topics
  get       Show a topic's details and body schema
  validate  Check a topic name and its registration

Examples:
  # List all topics
  fedocal-cli topics list

  # Show the schema of a topic as JSON
  fedocal-cli topics get calendar.meeting.new --format json

  # Validate a topic
  fedocal-cli topics validate calendar.reminder

Use "fedocal-cli topics [command] --help" for more information about a specific command.`,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
