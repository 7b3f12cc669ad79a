package bindist

import (
	"context"
	"fmt"
	"net/url"
)

// defaultParentCustomer is the root of the customer tree. New customers
// hang under it unless the caller names another parent.
const defaultParentCustomer = "admin"

type createCustomerRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

// CreateCustomer provisions a customer under the given parent and mints its
// API key. The key appears once, in the response data, and cannot be
// retrieved again. Management keys only.
func (c *Client) CreateCustomer(ctx context.Context, name string, opts CreateCustomerOptions) (*Result, error) {
	parent := opts.ParentCustomerID
	if parent == "" {
		parent = defaultParentCustomer
	}
	body := createCustomerRequest{Name: name, Notes: opts.Notes}
	return c.post(ctx, fmt.Sprintf("/management/customers/%s/apikeys", url.PathEscape(parent)), body)
}

// UpdateCustomer patches a customer's mutable metadata. Only the non-nil
// fields of upd reach the wire. Management keys only.
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, upd CustomerUpdate) (*Result, error) {
	return c.patch(ctx, "/management/customers/"+url.PathEscape(customerID), upd)
}

// ListCustomers returns a page of the customer tree. Management keys only.
func (c *Client) ListCustomers(ctx context.Context, opts ListOptions) (*Result, error) {
	return c.get(ctx, "/management/customers?"+pageQuery(opts.Page, opts.PageSize).Encode(), nil)
}
