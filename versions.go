package bindist

import (
	"context"
	"fmt"
	"net/url"
)

// ListVersions returns the versions of an application, newest first. With
// opts.Changelog set, the response also carries accumulated release notes
// since that installed version. The test channel is only visible when
// opts.TestChannel is set.
func (c *Client) ListVersions(ctx context.Context, applicationID string, opts ListVersionsOptions) (*Result, error) {
	path := fmt.Sprintf("/applications/%s/versions", url.PathEscape(applicationID))
	if opts.Changelog != "" {
		q := url.Values{}
		q.Set("changelog", opts.Changelog)
		path += "?" + q.Encode()
	}
	return c.get(ctx, path, channelHeader(opts.TestChannel))
}

// ListVersionFiles returns the files attached to one version.
func (c *Client) ListVersionFiles(ctx context.Context, applicationID, version string) (*Result, error) {
	path := fmt.Sprintf("/applications/%s/versions/%s/files",
		url.PathEscape(applicationID), url.PathEscape(version))
	return c.get(ctx, path, nil)
}

// UpdateVersion patches a version's mutable metadata. Only the non-nil
// fields of upd reach the wire. Management keys only.
func (c *Client) UpdateVersion(ctx context.Context, applicationID, version string, upd VersionUpdate) (*Result, error) {
	path := fmt.Sprintf("/applications/%s/versions/%s",
		url.PathEscape(applicationID), url.PathEscape(version))
	return c.patch(ctx, path, upd)
}
