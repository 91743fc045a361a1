package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/internal/catalog"
	"github.com/fedora-infra/fedocal-messages/internal/avatar"
	"github.com/fedora-infra/fedocal-messages/internal/consumer"
	"github.com/fedora-infra/fedocal-messages/internal/pubsub"
	"github.com/fedora-infra/fedocal-messages/internal/spool"
)

var (
	consumeSpoolDir string
	consumeTopics   []string
)

// consumeCmd represents the consume command
var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Print notifications for messages arriving on the bus",
	Long: `Start an in-process message bus, feed it from a spool directory and print
one line per delivered notification until interrupted.

Each spool file holds one wire message:
  {"topic": "calendar.meeting.new", "headers": {...}, "body": {...}}

Files are published in name order, then removed, or renamed with a
.processed suffix when SPOOL_REMOVE_PROCESSED is false.

Examples:
  fedocal-cli consume --spool /var/spool/fedocal
  fedocal-cli consume --spool ./spool --topic 'calendar.meeting.*'`,
	RunE: consumeHandler,
}

func consumeHandler(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := consumeSpoolDir
	if dir == "" {
		dir = cfg.Spool.Dir
	}
	if dir == "" {
		return fmt.Errorf("no spool directory given; use --spool or set SPOOL_DIR")
	}

	tracing := pubsub.DefaultTracingConfig()
	tracing.Enabled = cfg.Tracing.Enabled
	tracing.ServiceName = cfg.Tracing.ServiceName
	tracing.ServiceVersion = version
	tracing.ZipkinURL = cfg.Tracing.ZipkinURL
	tracer, cleanup, err := pubsub.SetupOTel(ctx, tracing)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer cleanup()

	bus := pubsub.NewWatermillBridge(pubsub.WithTracer(tracer))
	defer bus.Close()

	out := cmd.OutOrStdout()
	c, err := consumer.New(consumer.Dependencies{
		Subscriber: bus,
		Resolver:   catalog.Initialize(),
		Avatars:    avatar.New(cfg.Avatar.Size, cfg.Avatar.Default),
		Sink: consumer.SinkFunc(func(ctx context.Context, n consumer.Notification) error {
			_, err := fmt.Fprintln(out, catalog.FormatNotificationLine(n))
			return err
		}),
	})
	if err != nil {
		return err
	}
	if err := c.Start(ctx, consumeTopics...); err != nil {
		return err
	}

	watcher, err := spool.New(appFs, bus, spool.Options{
		Dir:             dir,
		RemoveProcessed: cfg.Spool.RemoveProcessed,
	})
	if err != nil {
		return err
	}

	slog.Info("Consuming fedocal messages", "spool", dir, "topics", consumeTopics)
	if err := watcher.Watch(ctx, nil); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Info("Shutting down")
	return nil
}

func init() {
	rootCmd.AddCommand(consumeCmd)

	consumeCmd.Flags().StringVarP(&consumeSpoolDir, "spool", "s", "", "Spool directory to publish from (defaults to SPOOL_DIR)")
	consumeCmd.Flags().StringSliceVarP(&consumeTopics, "topic", "t", nil, "Topic patterns to consume (default all)")
}
