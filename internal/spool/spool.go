// Package spool publishes wire messages dropped as files into a directory.
//
// Every *.json file holds one message, {"topic": ..., "body": {...}}. Once
// published the file is removed, or renamed with a .processed suffix when
// removal is disabled. Malformed files are logged and left in place.
package spool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/fedora-infra/fedocal-messages/internal/messages"
	"github.com/fedora-infra/fedocal-messages/internal/pubsub"
)

const (
	fileExt         = ".json"
	processedSuffix = ".processed"
)

// Options configures a Watcher.
type Options struct {
	// Dir is the spool directory.
	Dir string
	// RemoveProcessed deletes published files instead of renaming them.
	RemoveProcessed bool
	Logger          *slog.Logger
}

// Watcher publishes spool files onto the bus.
type Watcher struct {
	fs     afero.Fs
	pub    pubsub.Publisher
	opts   Options
	logger *slog.Logger
}

// New creates a watcher over dir on fs.
func New(fs afero.Fs, pub pubsub.Publisher, opts Options) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, errors.New("spool directory is not set")
	}
	if pub == nil {
		return nil, errors.New("spool requires a publisher")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		fs:     fs,
		pub:    pub,
		opts:   opts,
		logger: logger.With("component", "spool", "dir", opts.Dir),
	}, nil
}

// IsSpoolFile reports whether path names a file the watcher picks up.
func IsSpoolFile(path string) bool {
	return strings.HasSuffix(path, fileExt) && !strings.HasPrefix(filepath.Base(path), ".")
}

// Process publishes the message in path and then retires the file.
func (w *Watcher) Process(ctx context.Context, path string) error {
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	wire, err := messages.ParseWire(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := pubsub.PublishWire(ctx, w.pub, wire); err != nil {
		return fmt.Errorf("failed to publish %s: %w", path, err)
	}
	w.logger.Debug("Published spool file", "path", path, "topic", wire.Topic)

	if w.opts.RemoveProcessed {
		return w.fs.Remove(path)
	}
	return w.fs.Rename(path, path+processedSuffix)
}

// Drain processes every spool file already in the directory, in name order,
// and returns how many were published. Files that fail are logged and kept.
func (w *Watcher) Drain(ctx context.Context) (int, error) {
	if err := w.fs.MkdirAll(w.opts.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create spool directory: %w", err)
	}
	entries, err := afero.ReadDir(w.fs, w.opts.Dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list spool directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	published := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return published, err
		}
		path := filepath.Join(w.opts.Dir, entry.Name())
		if entry.IsDir() || !IsSpoolFile(path) {
			continue
		}
		if err := w.Process(ctx, path); err != nil {
			w.logger.Warn("Skipping spool file", "path", path, "error", err)
			continue
		}
		published++
	}
	return published, nil
}

// Watch drains the directory and then publishes files as they appear until
// ctx is canceled. The directory must be on the host filesystem.
func (w *Watcher) Watch(ctx context.Context, ready func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.fs.MkdirAll(w.opts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create spool directory: %w", err)
	}
	if err := watcher.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Dir, err)
	}

	if _, err := w.Drain(ctx); err != nil {
		return err
	}
	if ready != nil {
		ready()
	}
	w.logger.Info("Watching spool directory")

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Spool watcher context cancelled")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File system watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !IsSpoolFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	err := w.Process(ctx, event.Name)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		// Already handled by an earlier event for the same file.
	case errors.Is(err, messages.ErrMalformedWire):
		// A writer may still be filling the file; its Write event retries.
		w.logger.Warn("Malformed spool file", "path", event.Name, "error", err)
	default:
		w.logger.Error("Failed to process spool file", "path", event.Name, "error", err)
	}
}
