package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	bindist "github.com/bindist/bindist-go"
	"github.com/bindist/bindist-go/internal/history"
)

func newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Publish a version artifact",
		Long: `Publish a local file as a version artifact. Files up to 10 MB go through
the inline upload endpoint; anything larger takes the pre-signed storage
flow (request URL, PUT bytes, confirm completion). --large forces the
pre-signed flow regardless of size.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().String("app", "", "application ID (required)")
	cmd.Flags().String("version", "", "version string (required)")
	cmd.Flags().String("notes", "", "release notes")
	cmd.Flags().String("name", "", "file name to publish under (default: base name of <file>)")
	cmd.Flags().String("content-type", "", "MIME type for the stored object")
	cmd.Flags().Bool("large", false, "force the pre-signed storage flow")

	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	localPath := args[0]
	ctx := cmd.Context()

	appID, err := cmd.Flags().GetString("app")
	if err != nil {
		return err
	}

	versionStr, err := cmd.Flags().GetString("version")
	if err != nil {
		return err
	}

	notes, err := cmd.Flags().GetString("notes")
	if err != nil {
		return err
	}

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return err
	}

	contentType, err := cmd.Flags().GetString("content-type")
	if err != nil {
		return err
	}

	forceLarge, err := cmd.Flags().GetBool("large")
	if err != nil {
		return err
	}

	content, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("reading %q: %w", localPath, err)
	}

	if name == "" {
		name = filepath.Base(localPath)
	}

	size := int64(len(content))

	client, logger := newAPIClient()
	logger.Debug("upload", "application_id", appID, "version", versionStr,
		"file_name", name, "size", size, "force_large", forceLarge)

	store := openHistory(logger)
	if store != nil {
		defer store.Close()
	}

	// Progress line only when a human is watching.
	if stderrIsTerminal() {
		statusf("Uploading %s (%s)...\n", name, formatSize(size))
	}

	up := bindist.Upload{
		ApplicationID: appID,
		Version:       versionStr,
		FileName:      name,
		Content:       content,
		ReleaseNotes:  notes,
		ContentType:   contentType,
	}

	started := time.Now()
	res, err := uploadArtifact(ctx, client, up, forceLarge)
	recordTransfer(ctx, store, logger, uploadEntry(up, started, res, err))

	if err != nil {
		return fmt.Errorf("uploading %q: %w", localPath, err)
	}

	if err := renderResult(res); err != nil {
		return err
	}

	statusf("Uploaded %s %s (%s)\n", appID, versionStr, formatSize(size))

	return nil
}

// uploadArtifact routes an upload through the inline endpoint or the
// pre-signed storage flow based on content size.
func uploadArtifact(ctx context.Context, client *bindist.Client, up bindist.Upload, forceLarge bool) (*bindist.Result, error) {
	if forceLarge || int64(len(up.Content)) > bindist.SmallUploadMaxSize {
		return client.UploadLargeFile(ctx, up)
	}

	return client.UploadSmallFile(ctx, up)
}

// uploadEntry builds the history record for a finished upload attempt.
func uploadEntry(up bindist.Upload, started time.Time, res *bindist.Result, err error) history.Entry {
	digest := sha256.Sum256(up.Content)

	entry := history.Entry{
		Kind:          history.KindUpload,
		Profile:       resolvedCfg.Name,
		ApplicationID: up.ApplicationID,
		Version:       up.Version,
		FileName:      up.FileName,
		FileSize:      int64(len(up.Content)),
		Checksum:      hex.EncodeToString(digest[:]),
		Status:        history.StatusOK,
		StartedAt:     started,
		FinishedAt:    time.Now(),
	}

	switch {
	case err != nil:
		entry.Status = history.StatusFailed
		entry.ErrorMsg = err.Error()
	case !res.Success:
		entry.Status = history.StatusFailed
		entry.ErrorMsg = res.ErrorMessage()
	}

	return entry
}
