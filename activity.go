package bindist

import "context"

// Activity type filter values.
const (
	ActivityUpload   = "upload"
	ActivityDownload = "download"
)

// ListActivity returns a page of the upload/download audit feed, newest
// first. Management keys only.
func (c *Client) ListActivity(ctx context.Context, opts ActivityOptions) (*Result, error) {
	q := pageQuery(opts.Page, opts.PageSize)
	if opts.Type != "" {
		q.Set("type", opts.Type)
	}
	if opts.ApplicationID != "" {
		q.Set("applicationId", opts.ApplicationID)
	}
	return c.get(ctx, "/activity?"+q.Encode(), nil)
}
