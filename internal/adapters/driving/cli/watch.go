package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hollowness-inside/rag/internal/core/domain"
	"github.com/hollowness-inside/rag/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and index new or changed files",
	Long: `Indexes the directory, then keeps watching it and indexes files as
they are created or modified. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	indexer, closer, err := newIndexer(ctx)
	if err != nil {
		return err
	}
	defer closer()

	// Catch up on whatever is already there before watching.
	stats, err := indexer.IndexDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("initial index of %s: %w", dir, err)
	}
	logger.Info("Initial pass: %d indexed, %d duplicates, %d skipped, %d failed",
		stats.Indexed, stats.Duplicates, stats.Skipped, stats.Failed)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			handleWatchEvent(ctx, indexer, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleWatchEvent indexes one changed path. Unsupported and duplicate
// files are routine during a watch, so they only log at debug level.
func handleWatchEvent(ctx context.Context, indexer fileIndexer, path string) {
	switch err := indexer.IndexFile(ctx, path); {
	case err == nil:
		logger.Info("Indexed %s", path)
	case errors.Is(err, domain.ErrUnsupportedType):
		logger.Debug("Ignoring %s: unsupported file type", path)
	case errors.Is(err, domain.ErrAlreadyIndexed):
		logger.Debug("Ignoring %s: already indexed", path)
	default:
		logger.Warn("Failed to index %s: %v", path, err)
	}
}

// fileIndexer narrows the indexer to the single-file operation the
// watcher needs.
type fileIndexer interface {
	IndexFile(ctx context.Context, path string) error
}
