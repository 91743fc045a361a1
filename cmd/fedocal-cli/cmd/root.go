package cmd

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/internal/config"
	"github.com/fedora-infra/fedocal-messages/internal/logging"
)

var (
	// appFs is the filesystem message files are read from
	appFs afero.Fs = afero.NewOsFs()

	// cfg is loaded before any command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fedocal-cli",
	Short: "Inspect, render and consume fedocal messages",
	Long: `fedocal-cli works with the messages the fedocal calendaring application
publishes when calendars and meetings change or a reminder fires.

Available commands:
  topics    Explore the registered message topics and their schemas
  render    Validate a message body and print its human-readable form
  consume   Print notifications for messages arriving on the bus
  version   Print the version number

Configuration is read from the environment and an optional .env file.

Use "fedocal-cli [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
