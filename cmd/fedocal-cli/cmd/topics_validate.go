package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/internal/catalog"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

// topicsValidateCmd represents the topics validate command
var topicsValidateCmd = &cobra.Command{
	Use:   "validate <topic>",
	Short: "Validate a topic and its registration",
	Long: `Check that a topic name is well formed, that a provider registers it and
that no other provider claims the same topic.

Examples:
  fedocal-cli topics validate calendar.meeting.new   # Valid topic
  fedocal-cli topics validate Calendar.New           # Shows name format error
  fedocal-cli topics validate calendar.unknown       # Shows "topic not found" error

Output:
  ✅ Success - Shows the topic is valid with details
  ❌ Error   - Shows the validation failure`,
	Args: cobra.ExactArgs(1),
	RunE: topicsValidateHandler,
}

func topicsValidateHandler(cmd *cobra.Command, args []string) error {
	return validateTopic(cmd.OutOrStdout(), catalog.Initialize(), args[0])
}

func validateTopic(out io.Writer, registry *topics.Registry, topic string) error {
	if err := topics.ValidateName(topic); err != nil {
		fmt.Fprintf(out, "❌ Topic name validation failed: %v\n", err)
		return err
	}

	reg, found, err := lookup(registry, topic)
	if err != nil {
		fmt.Fprintf(out, "❌ Topic validation failed: %v\n", err)
		return err
	}
	if !found {
		err := fmt.Errorf("topic '%s' not found", topic)
		fmt.Fprintf(out, "❌ Topic validation failed: %v\n", err)
		return err
	}

	for _, problem := range registry.Check() {
		var dup *topics.DuplicateTopicError
		if errors.As(problem, &dup) && dup.Topic == topic {
			fmt.Fprintf(out, "❌ Topic validation failed: %v\n", problem)
			return problem
		}
	}

	fmt.Fprintf(out, "✅ Topic '%s' is valid\n", topic)
	fmt.Fprintf(out, "   Provider: %s\n", reg.Provider.Name)
	fmt.Fprintf(out, "   Description: %s\n", reg.Kind.Description())
	if s := reg.Kind.Schema(); s != nil {
		fmt.Fprintf(out, "   Schema: %s\n", s.ID)
	}
	return nil
}

func init() {
	topicsCmd.AddCommand(topicsValidateCmd)
}
