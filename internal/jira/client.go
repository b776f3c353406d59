package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jirav2 "github.com/ctreminiom/go-atlassian/v2/jira/v2"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
)

// ClientOption allows callers to customise construction of the Jira SDK client.
type ClientOption func(*jirav2.Client)

// WithUserAgent sets a custom user agent on the Jira client.
func WithUserAgent(agent string) ClientOption {
	return func(client *jirav2.Client) {
		if strings.TrimSpace(agent) != "" {
			client.Auth.SetUserAgent(agent)
		}
	}
}

// WithHTTPClient overrides the HTTP client used by the Jira SDK.
// Note: The SDK stores the http.Client by reference, so customise transport/timeouts before passing it in.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *jirav2.Client) {
		if httpClient != nil {
			client.HTTP = httpClient
		}
	}
}

// NewClient creates a Jira REST API v2 client backed by the go-atlassian SDK.
// The connector uses it to validate a session before any analysis runs.
// Username+token credentials become basic auth; a bare token becomes a bearer
// token.
func NewClient(site string, creds config.ServiceCredentials, opts ...ClientOption) (*jirav2.Client, error) {
	trimmedSite := strings.TrimSpace(site)
	if trimmedSite == "" {
		return nil, fmt.Errorf("jira: site is required to construct client")
	}

	defaultHTTPClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	client, err := jirav2.New(defaultHTTPClient, trimmedSite)
	if err != nil {
		return nil, fmt.Errorf("jira: initialise client: %w", err)
	}

	client.Auth.SetUserAgent("jira-analyzer-mcp")

	for _, opt := range opts {
		opt(client)
	}

	switch {
	case strings.TrimSpace(creds.Email) != "" && strings.TrimSpace(creds.APIToken) != "":
		client.Auth.SetBasicAuth(creds.Email, creds.APIToken)
	case strings.TrimSpace(creds.OAuthToken) != "":
		client.Auth.SetBearerToken(creds.OAuthToken)
	case strings.TrimSpace(creds.APIToken) != "":
		client.Auth.SetBearerToken(creds.APIToken)
	default:
		return nil, fmt.Errorf("jira: insufficient credentials for client")
	}

	return client, nil
}

// VerifyConnection probes the authenticated user endpoint to confirm the
// credentials and site are usable.
func VerifyConnection(ctx context.Context, client *jirav2.Client) error {
	if client == nil {
		return fmt.Errorf("jira: client required")
	}

	if _, _, err := client.MySelf.Details(ctx, nil); err != nil {
		return fmt.Errorf("jira: verify connection: %w", err)
	}

	return nil
}
