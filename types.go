package bindist

import "time"

// Pagination defaults applied by list endpoints when the caller leaves
// Page or PageSize at zero. Pages are 1-based.
const (
	defaultPage     = 1
	defaultPageSize = 20
)

// Share link expiry bounds, in minutes.
const (
	minShareExpiry     = 5
	maxShareExpiry     = 1440
	defaultShareExpiry = 30
)

// ListOptions selects a page of a paginated listing.
type ListOptions struct {
	Page     int
	PageSize int
}

// ListApplicationsOptions filters the application listing.
type ListApplicationsOptions struct {
	Search   string
	Tags     []string
	Page     int
	PageSize int
}

// ListVersionsOptions tunes the version listing. Changelog widens the
// response to include release notes since the given installed version.
// TestChannel includes versions published to the test channel.
type ListVersionsOptions struct {
	Changelog   string
	TestChannel bool
}

// DownloadURLOptions selects which file of a version to resolve. An empty
// FileID means the version's main artifact.
type DownloadURLOptions struct {
	FileID      string
	TestChannel bool
}

// DownloadOptions controls DownloadFile. SkipVerify disables SHA-256
// verification of the fetched bytes; verification is on by default and
// silently skipped when the API reports no checksum for the file.
type DownloadOptions struct {
	FileID      string
	TestChannel bool
	SkipVerify  bool
}

// ShareLinkOptions tunes CreateShareLink. ExpiresMinutes zero means the
// server default of 30 minutes.
type ShareLinkOptions struct {
	FileID         string
	ExpiresMinutes int
}

// ActivityOptions filters the activity feed. Type is "upload", "download",
// or empty for both.
type ActivityOptions struct {
	Type          string
	ApplicationID string
	Page          int
	PageSize      int
}

// CreateCustomerOptions carries the optional fields of customer creation.
// An empty ParentCustomerID places the customer under "admin".
type CreateCustomerOptions struct {
	ParentCustomerID string
	Notes            string
}

// CreateApplicationOptions carries the optional fields of application
// registration.
type CreateApplicationOptions struct {
	Description string
	Tags        []string
}

// VersionUpdate carries the mutable fields of a version record. Nil fields
// are omitted from the PATCH payload entirely, keeping "not set" and "set
// to the zero value" distinguishable on the wire. Use Bool and String to
// build values inline.
type VersionUpdate struct {
	IsEnabled            *bool   `json:"isEnabled,omitempty"`
	IsActive             *bool   `json:"isActive,omitempty"`
	ReleaseNotes         *string `json:"releaseNotes,omitempty"`
	MinimumClientVersion *string `json:"minimumClientVersion,omitempty"`
}

// CustomerUpdate carries the mutable fields of a customer record, with the
// same nil-means-unchanged semantics as VersionUpdate.
type CustomerUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Upload describes one artifact to publish. ReleaseNotes and ContentType
// are optional; ContentType defaults to application/octet-stream and only
// applies to the pre-signed flow.
type Upload struct {
	ApplicationID string
	Version       string
	FileName      string
	Content       []byte
	ReleaseNotes  string
	ContentType   string
}

// UploadSession is the state carried across the three steps of a large
// upload. UploadID and UploadURL come from the API; FileSize and Checksum
// are computed from the content before the first network call and travel
// to the completion step untouched.
type UploadSession struct {
	UploadID  string
	UploadURL string
	FileSize  int64
	Checksum  string
}

// FileMetadata is the file description the download-URL endpoint reports
// alongside the pre-signed URL. Values come from the control plane, never
// from the downloaded bytes. ExpiresAt is the zero time when the API omits
// it or sends an unparseable timestamp.
type FileMetadata struct {
	FileName  string
	FileSize  int64
	Checksum  string
	ExpiresAt time.Time
}

// Bool returns a pointer to v, for filling update structs inline.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for filling update structs inline.
func String(v string) *string { return &v }
