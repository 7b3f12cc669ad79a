package bindist

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// pageQuery builds the shared pagination query, substituting defaults for
// unset values.
func pageQuery(page, pageSize int) url.Values {
	if page <= 0 {
		page = defaultPage
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	return q
}

// ListApplications returns the page of applications visible to the API key.
func (c *Client) ListApplications(ctx context.Context, opts ListApplicationsOptions) (*Result, error) {
	q := pageQuery(opts.Page, opts.PageSize)
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if len(opts.Tags) > 0 {
		q.Set("tags", strings.Join(opts.Tags, ","))
	}
	return c.get(ctx, "/applications?"+q.Encode(), nil)
}

// GetApplication returns one application's details.
func (c *Client) GetApplication(ctx context.Context, applicationID string) (*Result, error) {
	return c.get(ctx, "/applications/"+url.PathEscape(applicationID), nil)
}

// GetStats returns aggregate download statistics for an application.
func (c *Client) GetStats(ctx context.Context, applicationID string) (*Result, error) {
	return c.get(ctx, fmt.Sprintf("/applications/%s/stats", url.PathEscape(applicationID)), nil)
}

type createApplicationRequest struct {
	ApplicationID string   `json:"applicationId"`
	Name          string   `json:"name"`
	CustomerIDs   []string `json:"customerIds"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// CreateApplication registers a new application and grants the listed
// customers access to it. Management keys only.
func (c *Client) CreateApplication(ctx context.Context, applicationID, name string, customerIDs []string, opts CreateApplicationOptions) (*Result, error) {
	body := createApplicationRequest{
		ApplicationID: applicationID,
		Name:          name,
		CustomerIDs:   customerIDs,
		Description:   opts.Description,
		Tags:          opts.Tags,
	}
	return c.post(ctx, "/management/applications", body)
}

// DeleteApplication soft-deletes an application. Management keys only.
func (c *Client) DeleteApplication(ctx context.Context, applicationID string) (*Result, error) {
	return c.delete(ctx, "/management/applications/"+url.PathEscape(applicationID))
}
