package bindist

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
)

// SmallUploadMaxSize is the largest content size the inline upload endpoint
// accepts. Larger artifacts must take the pre-signed three-step flow.
const SmallUploadMaxSize = 10 * 1024 * 1024

// fileTypeMain marks the primary artifact of a version.
const fileTypeMain = "MAIN"

type smallUploadRequest struct {
	ApplicationID string `json:"applicationId"`
	Version       string `json:"version"`
	FileName      string `json:"fileName"`
	FileContent   string `json:"fileContent"`
	FileType      string `json:"fileType"`
	ReleaseNotes  string `json:"releaseNotes,omitempty"`
}

type uploadURLRequest struct {
	ApplicationID string `json:"applicationId"`
	Version       string `json:"version"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	ContentType   string `json:"contentType"`
}

type completeUploadRequest struct {
	UploadID      string `json:"uploadId"`
	ApplicationID string `json:"applicationId"`
	Version       string `json:"version"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	Checksum      string `json:"checksum"`
	ReleaseNotes  string `json:"releaseNotes,omitempty"`
}

// UploadSmallFile publishes an artifact inline through the authenticated
// API, base64-encoded inside the JSON body. Content must stay under
// SmallUploadMaxSize. Management keys only.
func (c *Client) UploadSmallFile(ctx context.Context, up Upload) (*Result, error) {
	c.logger.Info("uploading file inline",
		slog.String("application_id", up.ApplicationID),
		slog.String("version", up.Version),
		slog.String("file_name", up.FileName),
		slog.Int("size", len(up.Content)))

	body := smallUploadRequest{
		ApplicationID: up.ApplicationID,
		Version:       up.Version,
		FileName:      up.FileName,
		FileContent:   base64.StdEncoding.EncodeToString(up.Content),
		FileType:      fileTypeMain,
		ReleaseNotes:  up.ReleaseNotes,
	}
	return c.post(ctx, "/management/upload", body)
}

// RequestUploadURL asks for a pre-signed storage URL — step one of the
// three-step flow. On success the response data carries uploadId and
// uploadUrl. An empty contentType defaults to application/octet-stream.
// Management keys only.
func (c *Client) RequestUploadURL(ctx context.Context, applicationID, version, fileName string, fileSize int64, contentType string) (*Result, error) {
	if contentType == "" {
		contentType = contentTypeBinary
	}
	body := uploadURLRequest{
		ApplicationID: applicationID,
		Version:       version,
		FileName:      fileName,
		FileSize:      fileSize,
		ContentType:   contentType,
	}
	return c.post(ctx, "/management/upload/large-url", body)
}

// CompleteUpload notifies the API that the bytes landed in storage — step
// three of the flow. The session's size and checksum must describe the
// bytes as they were hashed before step one; the server verifies the
// storage object against them. Management keys only.
func (c *Client) CompleteUpload(ctx context.Context, applicationID, version, fileName string, session UploadSession, releaseNotes string) (*Result, error) {
	body := completeUploadRequest{
		UploadID:      session.UploadID,
		ApplicationID: applicationID,
		Version:       version,
		FileName:      fileName,
		FileSize:      session.FileSize,
		Checksum:      session.Checksum,
		ReleaseNotes:  releaseNotes,
	}
	return c.post(ctx, "/management/upload/large-complete", body)
}

// UploadLargeFile runs the full three-step flow: request a pre-signed URL,
// PUT the bytes to storage, complete with the SHA-256 checksum. The
// checksum is computed exactly once, before any network traffic, so the
// digest the server verifies is anchored to the bytes in memory here and
// not to anything echoed back along the way.
//
// The flow aborts cleanly at the first failure. A rejected URL request
// returns that envelope unchanged; a storage rejection returns a
// synthesized failure envelope whose error message is "S3 upload failed: "
// plus the provider's response body. Neither is a Go error — errors are
// reserved for transport failures and a step-one response missing its
// uploadId or uploadUrl.
func (c *Client) UploadLargeFile(ctx context.Context, up Upload) (*Result, error) {
	fileSize := int64(len(up.Content))
	digest := sha256.Sum256(up.Content)
	checksum := hex.EncodeToString(digest[:])

	c.logger.Info("starting large upload",
		slog.String("application_id", up.ApplicationID),
		slog.String("version", up.Version),
		slog.String("file_name", up.FileName),
		slog.Int64("size", fileSize))

	res, err := c.RequestUploadURL(ctx, up.ApplicationID, up.Version, up.FileName, fileSize, up.ContentType)
	if err != nil {
		return nil, err
	}
	if !res.Success || res.Data == nil {
		c.logger.Warn("upload URL request rejected",
			slog.Int("status", res.StatusCode),
			slog.String("error", res.ErrorMessage()))
		return res, nil
	}

	session := UploadSession{
		UploadID:  stringField(res.Data, "uploadId"),
		UploadURL: stringField(res.Data, "uploadUrl"),
		FileSize:  fileSize,
		Checksum:  checksum,
	}
	if session.UploadID == "" || session.UploadURL == "" {
		return nil, fmt.Errorf("bindist: upload URL response missing uploadId or uploadUrl")
	}

	if err := c.PutBinary(ctx, session.UploadURL, up.Content, up.ContentType); err != nil {
		var storageErr *StorageError
		if errors.As(err, &storageErr) {
			// Shape the storage rejection like an API failure envelope, so
			// callers see one result shape for every non-transport outcome.
			return &Result{
				StatusCode: storageErr.StatusCode,
				Error:      map[string]any{"message": "S3 upload failed: " + storageErr.Body},
				Raw:        map[string]any{"error": storageErr.Body},
			}, nil
		}
		return nil, err
	}

	c.logger.Debug("storage transfer complete", slog.String("upload_id", session.UploadID))

	return c.CompleteUpload(ctx, up.ApplicationID, up.Version, up.FileName, session, up.ReleaseNotes)
}
