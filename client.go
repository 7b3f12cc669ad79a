package bindist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Version of the client library, reported in the User-Agent header.
const Version = "1.0.0"

const (
	apiPrefix = "/v1"
	userAgent = "bindist-go/" + Version

	contentTypeJSON   = "application/json"
	contentTypeBinary = "application/octet-stream"

	// HeaderChannel selects a release channel for version listings and
	// download URL resolution. The only defined value is ChannelTest.
	HeaderChannel = "X-Channel"
	ChannelTest   = "Test"
)

// Client talks to one BinDist endpoint with one API key. It is safe for
// concurrent use; all state is set at construction and never mutated.
//
// Requests to the API carry the key as a bearer token. Requests to
// pre-signed storage URLs carry no credentials at all: the grant is
// embedded in the URL, and storage providers reject foreign Authorization
// headers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a Client for the API at baseURL. A nil httpClient
// falls back to http.DefaultClient and a nil logger to slog.Default().
// The client performs no retries; timeout and proxy policy belong to the
// *http.Client the caller passes in.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Do executes one authenticated API request and decodes the response
// envelope. path is relative to the versioned API root ("/applications",
// not "/v1/applications"). A non-nil body is marshaled as JSON. Extra
// headers are added after the standard set, so they can override it.
//
// The returned error covers transport only — request construction, the
// network round trip, reading the body. Every response that arrives
// decodes into a Result, HTTP errors and malformed bodies included.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers http.Header) (*Result, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("bindist: marshaling %s %s request: %w", method, path, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("bindist: creating %s %s request: %w", method, path, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bindist: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bindist: reading %s %s response: %w", method, path, err)
	}

	result := decodeResult(resp.StatusCode, raw)

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", result.StatusCode),
		slog.Bool("success", result.Success))

	return result, nil
}

func (c *Client) get(ctx context.Context, path string, headers http.Header) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil, headers)
}

func (c *Client) post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) patch(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// PutBinary uploads raw bytes to a pre-signed storage URL. No bearer token
// is attached. A non-200 response becomes a *StorageError carrying the
// provider's response body.
//
// The URL embeds an access grant and must never be logged.
func (c *Client) PutBinary(ctx context.Context, uploadURL string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = contentTypeBinary
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("bindist: creating storage PUT request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bindist: storage PUT: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bindist: reading storage PUT response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("storage rejected upload",
			slog.Int("status", resp.StatusCode),
			slog.Int("size", len(data)))
		return &StorageError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("storage upload complete", slog.Int("size", len(data)))
	return nil
}

// GetBinary downloads raw bytes from a pre-signed storage URL, again with
// no credentials attached. Any non-2xx status becomes a *StorageError.
func (c *Client) GetBinary(ctx context.Context, downloadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bindist: creating storage GET request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bindist: storage GET: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bindist: reading storage GET response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("storage rejected download", slog.Int("status", resp.StatusCode))
		return nil, &StorageError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// channelHeader returns the X-Channel header for test-channel requests,
// or nil when the caller wants the default channel.
func channelHeader(testChannel bool) http.Header {
	if !testChannel {
		return nil
	}
	return http.Header{HeaderChannel: []string{ChannelTest}}
}
