package bindist

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. The typed errors below wrap
// these, so callers can branch on the category without unpacking the struct.
var (
	// ErrStorageTransfer indicates the storage provider rejected a
	// pre-signed PUT or GET.
	ErrStorageTransfer = errors.New("bindist: storage transfer failed")

	// ErrDownloadURL indicates the API refused to issue a download URL, or
	// issued a response without one.
	ErrDownloadURL = errors.New("bindist: no usable download URL")

	// ErrChecksumMismatch indicates downloaded content did not hash to the
	// checksum the API reported for it.
	ErrChecksumMismatch = errors.New("bindist: checksum mismatch")
)

// StorageError reports a non-success HTTP status from the storage provider
// while transferring bytes over a pre-signed URL. The storage plane does not
// speak the API envelope, so the raw response body is kept for diagnosis.
type StorageError struct {
	StatusCode int
	Body       string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("bindist: storage returned HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *StorageError) Unwrap() error { return ErrStorageTransfer }

// DownloadURLError reports that the download-URL endpoint answered without a
// usable pre-signed URL, either with a failure envelope or with success data
// missing the url field. APIError carries the envelope's error object when
// one was present.
type DownloadURLError struct {
	StatusCode int
	APIError   map[string]any
}

func (e *DownloadURLError) Error() string {
	if msg := errorMessage(e.APIError); msg != "" {
		return fmt.Sprintf("bindist: download URL request failed (HTTP %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("bindist: download URL request failed (HTTP %d)", e.StatusCode)
}

func (e *DownloadURLError) Unwrap() error { return ErrDownloadURL }

// ChecksumError reports a SHA-256 mismatch between downloaded content and
// the checksum the API advertised. Both digests are carried so the caller
// can log or display the discrepancy.
type ChecksumError struct {
	Expected string
	Actual   string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("bindist: checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }
