package atlassian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/auth"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
)

// Client is a helper around the Atlassian REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client for the specified base URL and credentials.
func NewClient(base string, creds config.ServiceCredentials, logger *slog.Logger) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("atlassian: base URL required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("atlassian: parse base url: %w", err)
	}

	transport := auth.NewTransport(nil, creds)
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured base URL string without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// NewRequest builds an HTTP request with optional query parameters and JSON body.
func (c *Client) NewRequest(ctx context.Context, method, path string, query map[string]string, body any) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path

	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("atlassian: encode body: %w", err)
		}
		bodyReader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Do executes the request and decodes the response JSON into out if provided.
func (c *Client) Do(req *http.Request, out any) error {
	c.logger.Debug("atlassian request", slog.String("method", req.Method), slog.String("url", req.URL.String()))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("atlassian: decode response: %w", err)
	}

	return nil
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// SetTransport overrides the underlying HTTP transport. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.httpClient.Transport = rt
}
