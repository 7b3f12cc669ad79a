package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	bindist "github.com/bindist/bindist-go"
	"github.com/bindist/bindist-go/internal/history"
)

// downloadWorkers bounds the concurrent fetches of `download --all`.
const downloadWorkers = 4

func newDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Fetch a version artifact",
		Long: `Fetch an artifact and verify its SHA-256 checksum against what the API
reports. Verification is skipped with --no-verify, or silently when the
API reports no checksum. --all fetches every file of a multi-file
version into the output directory.`,
		Args: cobra.NoArgs,
		RunE: runDownload,
	}

	cmd.Flags().String("app", "", "application ID (required)")
	cmd.Flags().String("version", "", "version string (required)")
	cmd.Flags().String("file-id", "", "specific file of a multi-file version")
	cmd.Flags().Bool("no-verify", false, "skip checksum verification")
	cmd.Flags().StringP("output", "o", "", "output path (--all: output directory)")
	cmd.Flags().Bool("all", false, "download every file of the version")

	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("version")

	cmd.MarkFlagsMutuallyExclusive("file-id", "all")

	return cmd
}

func runDownload(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	appID, err := cmd.Flags().GetString("app")
	if err != nil {
		return err
	}

	versionStr, err := cmd.Flags().GetString("version")
	if err != nil {
		return err
	}

	fileID, err := cmd.Flags().GetString("file-id")
	if err != nil {
		return err
	}

	noVerify, err := cmd.Flags().GetBool("no-verify")
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	client, logger := newAPIClient()

	store := openHistory(logger)
	if store != nil {
		defer store.Close()
	}

	if all {
		return downloadAll(ctx, client, store, logger, appID, versionStr, output, noVerify)
	}

	if stderrIsTerminal() {
		statusf("Downloading %s %s...\n", appID, versionStr)
	}

	started := time.Now()

	content, meta, err := client.DownloadFile(ctx, appID, versionStr, bindist.DownloadOptions{
		FileID:      fileID,
		TestChannel: resolvedCfg.TestChannel,
		SkipVerify:  noVerify,
	})

	entry := history.Entry{
		Kind:          history.KindDownload,
		Profile:       resolvedCfg.Name,
		ApplicationID: appID,
		Version:       versionStr,
		Status:        history.StatusOK,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}

	if err != nil {
		entry.Status = history.StatusFailed
		entry.ErrorMsg = err.Error()
	} else {
		entry.FileName = meta.FileName
		entry.FileSize = int64(len(content))
		entry.Checksum = meta.Checksum
	}

	recordTransfer(ctx, store, logger, entry)

	if err != nil {
		return fmt.Errorf("downloading %s %s: %w", appID, versionStr, err)
	}

	outPath := output
	if outPath == "" {
		outPath = meta.FileName
	}

	if outPath == "" {
		outPath = fmt.Sprintf("%s-%s.bin", appID, versionStr)
	}

	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", outPath, err)
	}

	statusf("Downloaded %s (%s)\n", outPath, formatSize(int64(len(content))))

	return nil
}

// downloadAll fetches every file of a version through a bounded worker pool.
func downloadAll(
	ctx context.Context, client *bindist.Client, store *history.Store,
	logger *slog.Logger, appID, versionStr, outDir string, noVerify bool,
) error {
	res, err := client.ListVersionFiles(ctx, appID, versionStr)
	if err != nil {
		return fmt.Errorf("listing files of %s %s: %w", appID, versionStr, err)
	}

	if !res.Success {
		return apiFailure(res)
	}

	refs := versionFiles(res.Data)
	if len(refs) == 0 {
		return fmt.Errorf("no downloadable files reported for %s %s", appID, versionStr)
	}

	if outDir == "" {
		outDir = "."
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", outDir, err)
	}

	logger.Debug("download all", "application_id", appID, "version", versionStr,
		"files", len(refs), "workers", downloadWorkers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadWorkers)

	var fetched, totalBytes atomic.Int64

	for _, ref := range refs {
		g.Go(func() error {
			started := time.Now()

			content, meta, dlErr := client.DownloadFile(gctx, appID, versionStr, bindist.DownloadOptions{
				FileID:      ref.ID,
				TestChannel: resolvedCfg.TestChannel,
				SkipVerify:  noVerify,
			})

			entry := history.Entry{
				Kind:          history.KindDownload,
				Profile:       resolvedCfg.Name,
				ApplicationID: appID,
				Version:       versionStr,
				FileName:      ref.Name,
				Status:        history.StatusOK,
				StartedAt:     started,
				FinishedAt:    time.Now(),
			}

			if dlErr != nil {
				entry.Status = history.StatusFailed
				entry.ErrorMsg = dlErr.Error()
			} else {
				if meta.FileName != "" {
					entry.FileName = meta.FileName
				}

				entry.FileSize = int64(len(content))
				entry.Checksum = meta.Checksum
			}

			recordTransfer(gctx, store, logger, entry)

			if dlErr != nil {
				return fmt.Errorf("downloading file %s: %w", ref.ID, dlErr)
			}

			name := meta.FileName
			if name == "" {
				name = ref.Name
			}

			if name == "" {
				name = ref.ID
			}

			// Base strips any path the server put in the name, so files
			// never land outside the output directory.
			outPath := filepath.Join(outDir, filepath.Base(name))
			if err := os.WriteFile(outPath, content, 0o644); err != nil {
				return fmt.Errorf("writing %q: %w", outPath, err)
			}

			fetched.Add(1)
			totalBytes.Add(int64(len(content)))
			statusf("Downloaded %s (%s)\n", outPath, formatSize(int64(len(content))))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	statusf("Downloaded %d files (%s)\n", fetched.Load(), formatSize(totalBytes.Load()))

	return nil
}

// fileRef is one artifact reference pulled from a version's file listing.
type fileRef struct {
	ID   string
	Name string
}

// versionFiles extracts file references from a files-listing envelope.
// Entries lacking an ID are skipped. Accepts "fileId" or "id" for the
// identifier and "fileName" or "name" for the display name, since both
// spellings appear across API surfaces.
func versionFiles(data map[string]any) []fileRef {
	raw, ok := data["files"].([]any)
	if !ok {
		return nil
	}

	refs := make([]fileRef, 0, len(raw))

	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		ref := fileRef{
			ID:   firstString(m, "fileId", "id"),
			Name: firstString(m, "fileName", "name"),
		}
		if ref.ID == "" {
			continue
		}

		refs = append(refs, ref)
	}

	return refs
}

// firstString returns the first non-empty string value among keys.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}

	return ""
}
