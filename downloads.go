package bindist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

type shareLinkRequest struct {
	ApplicationID  string `json:"applicationId"`
	Version        string `json:"version"`
	ExpiresMinutes int    `json:"expiresMinutes"`
	FileID         string `json:"fileId,omitempty"`
}

// GetDownloadURL resolves a pre-signed download URL for a version's file.
// On success the response data carries url plus the file's metadata
// (fileName, fileSize, checksum, expiresAt). An empty FileID selects the
// version's main artifact.
func (c *Client) GetDownloadURL(ctx context.Context, applicationID, version string, opts DownloadURLOptions) (*Result, error) {
	q := url.Values{}
	q.Set("applicationId", applicationID)
	q.Set("version", version)
	if opts.FileID != "" {
		q.Set("fileId", opts.FileID)
	}
	return c.get(ctx, "/downloads/url?"+q.Encode(), channelHeader(opts.TestChannel))
}

// DownloadFile resolves a download URL, fetches the bytes from storage,
// and verifies their SHA-256 digest against the checksum the API reported.
// The returned metadata comes from the URL resolution step, never from the
// downloaded bytes.
//
// A failure envelope from the URL step, or success data without a url,
// returns a *DownloadURLError. A storage rejection returns a
// *StorageError. A digest mismatch returns a *ChecksumError carrying both
// values; verification is skipped when opts.SkipVerify is set or the API
// reported no checksum.
func (c *Client) DownloadFile(ctx context.Context, applicationID, version string, opts DownloadOptions) ([]byte, *FileMetadata, error) {
	c.logger.Info("downloading file",
		slog.String("application_id", applicationID),
		slog.String("version", version),
		slog.String("file_id", opts.FileID))

	res, err := c.GetDownloadURL(ctx, applicationID, version, DownloadURLOptions{
		FileID:      opts.FileID,
		TestChannel: opts.TestChannel,
	})
	if err != nil {
		return nil, nil, err
	}
	if !res.Success || res.Data == nil {
		return nil, nil, &DownloadURLError{StatusCode: res.StatusCode, APIError: res.Error}
	}

	downloadURL := stringField(res.Data, "url")
	if downloadURL == "" {
		return nil, nil, &DownloadURLError{StatusCode: res.StatusCode, APIError: res.Error}
	}
	meta := c.fileMetadata(res.Data)

	content, err := c.GetBinary(ctx, downloadURL)
	if err != nil {
		return nil, nil, err
	}

	if !opts.SkipVerify && meta.Checksum != "" {
		digest := sha256.Sum256(content)
		actual := hex.EncodeToString(digest[:])
		if actual != meta.Checksum {
			c.logger.Error("downloaded content failed verification",
				slog.String("application_id", applicationID),
				slog.String("version", version),
				slog.String("file_name", meta.FileName))
			return nil, nil, &ChecksumError{Expected: meta.Checksum, Actual: actual}
		}
		c.logger.Debug("checksum verified", slog.String("checksum", actual))
	}

	return content, meta, nil
}

// fileMetadata extracts the file description from download-URL response
// data. A malformed expiresAt is logged and left as the zero time rather
// than failing the download.
func (c *Client) fileMetadata(data map[string]any) *FileMetadata {
	meta := &FileMetadata{
		FileName: stringField(data, "fileName"),
		FileSize: int64Field(data, "fileSize"),
		Checksum: stringField(data, "checksum"),
	}
	if raw := stringField(data, "expiresAt"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.logger.Warn("unparseable expiresAt in download metadata",
				slog.String("value", raw),
				slog.String("error", err.Error()))
		} else {
			meta.ExpiresAt = t
		}
	}
	return meta
}

// CreateShareLink mints a public, time-limited download link for a file.
// opts.ExpiresMinutes zero means 30 minutes; values outside [5, 1440] are
// rejected before any request is made.
func (c *Client) CreateShareLink(ctx context.Context, applicationID, version string, opts ShareLinkOptions) (*Result, error) {
	expires := opts.ExpiresMinutes
	if expires == 0 {
		expires = defaultShareExpiry
	}
	if expires < minShareExpiry || expires > maxShareExpiry {
		return nil, fmt.Errorf("bindist: share link expiry %dm outside [%dm, %dm]",
			expires, minShareExpiry, maxShareExpiry)
	}

	body := shareLinkRequest{
		ApplicationID:  applicationID,
		Version:        version,
		ExpiresMinutes: expires,
		FileID:         opts.FileID,
	}
	return c.post(ctx, "/downloads/share", body)
}
