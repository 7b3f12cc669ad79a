package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
	"github.com/bindist/bindist-go/internal/history"
)

// defaultVersionPattern extracts "1.2.3" from names like app-v1.2.3.tar.gz.
const defaultVersionPattern = `v?(\d+\.\d+\.\d+)`

const (
	// watchDebounce is how long a file must stay quiet before it is
	// published. Build tools write artifacts in bursts; publishing a file
	// mid-write would upload a truncated artifact.
	watchDebounce = 2 * time.Second

	// watchTick is how often pending files are checked for quietness.
	watchTick = 500 * time.Millisecond
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Publish new artifacts as they appear",
		Long: `Watch a directory and publish each new file whose name carries a version.
The version is taken from the first capture group of --pattern, default
` + defaultVersionPattern + `. Files are published after a short quiet period so
half-written artifacts are not picked up. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().String("app", "", "application ID (required)")
	cmd.Flags().String("pattern", defaultVersionPattern, "filename regexp; capture group 1 is the version")
	cmd.Flags().String("notes", "", "release notes attached to every published version")

	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	appID, err := cmd.Flags().GetString("app")
	if err != nil {
		return err
	}

	patternStr, err := cmd.Flags().GetString("pattern")
	if err != nil {
		return err
	}

	notes, err := cmd.Flags().GetString("notes")
	if err != nil {
		return err
	}

	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("compiling --pattern: %w", err)
	}

	if pattern.NumSubexp() < 1 {
		return fmt.Errorf("--pattern %q needs a capture group for the version", patternStr)
	}

	fi, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stating %q: %w", dir, err)
	}

	if !fi.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	client, logger := newAPIClient()

	store := openHistory(logger)
	if store != nil {
		defer store.Close()
	}

	ctx := shutdownContext(cmd.Context(), logger)

	statusf("Watching %s (pattern %s). Interrupt to stop.\n", dir, patternStr)

	return watchLoop(ctx, watcher, client, store, logger, appID, notes, pattern)
}

// watchLoop drives the watcher: filesystem events mark matching files as
// pending, and a ticker publishes the ones that stayed quiet for the
// debounce window. Publish failures are logged, not fatal; the loop keeps
// watching until the context is canceled.
func watchLoop(
	ctx context.Context, watcher *fsnotify.Watcher, client *bindist.Client,
	store *history.Store, logger *slog.Logger, appID, notes string, pattern *regexp.Regexp,
) error {
	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	// pending maps path to the time of its last write event.
	pending := map[string]time.Time{}

	for {
		select {
		case <-ctx.Done():
			statusf("Stopped.\n")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			name := filepath.Base(event.Name)
			if matchVersion(pattern, name) == "" {
				logger.Debug("watch: ignoring file", slog.String("name", name))
				continue
			}

			pending[event.Name] = time.Now()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("filesystem watcher error", slog.String("error", watchErr.Error()))

		case <-ticker.C:
			for path, last := range pending {
				if time.Since(last) < watchDebounce {
					continue
				}

				delete(pending, path)
				publishFile(ctx, client, store, logger, appID, notes, pattern, path)
			}
		}
	}
}

// matchVersion extracts the version from a filename, or "" when the name
// does not match the pattern.
func matchVersion(pattern *regexp.Regexp, name string) string {
	m := pattern.FindStringSubmatch(name)
	if len(m) < 2 {
		return ""
	}

	return m[1]
}

// publishFile uploads one watched artifact, recording the outcome in the
// transfer history.
func publishFile(
	ctx context.Context, client *bindist.Client, store *history.Store,
	logger *slog.Logger, appID, notes string, pattern *regexp.Regexp, path string,
) {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return
	}

	name := filepath.Base(path)
	versionStr := matchVersion(pattern, name)

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("watch: reading artifact failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return
	}

	statusf("Publishing %s as %s %s (%s)...\n", name, appID, versionStr, formatSize(int64(len(content))))

	up := bindist.Upload{
		ApplicationID: appID,
		Version:       versionStr,
		FileName:      name,
		Content:       content,
		ReleaseNotes:  notes,
	}

	started := time.Now()
	res, err := uploadArtifact(ctx, client, up, false)
	recordTransfer(ctx, store, logger, uploadEntry(up, started, res, err))

	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		logger.Error("watch: upload failed",
			slog.String("file", name), slog.String("error", err.Error()))
	case !res.Success:
		logger.Error("watch: upload rejected",
			slog.String("file", name), slog.String("error", res.ErrorMessage()))
	default:
		statusf("Published %s %s\n", appID, versionStr)
	}
}
