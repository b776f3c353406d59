package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
)

// Transport injects Jira authentication headers into outbound requests.
type Transport struct {
	base       http.RoundTripper
	authHeader string
	initErr    error
}

// NewTransport creates a new auth transport wrapping the provided RoundTripper.
// Username+token pairs become basic auth; a bare token becomes a bearer token,
// matching how Jira server/data-center instances expect personal access tokens.
func NewTransport(base http.RoundTripper, creds config.ServiceCredentials) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}

	t := &Transport{base: base}
	switch {
	case creds.Email != "" && creds.APIToken != "":
		token := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", creds.Email, creds.APIToken)))
		t.authHeader = fmt.Sprintf("Basic %s", token)
	case creds.OAuthToken != "":
		t.authHeader = fmt.Sprintf("Bearer %s", creds.OAuthToken)
	case creds.APIToken != "":
		t.authHeader = fmt.Sprintf("Bearer %s", creds.APIToken)
	default:
		t.initErr = fmt.Errorf("auth: insufficient credentials")
	}

	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.initErr != nil {
		return nil, t.initErr
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", t.authHeader)
	clone.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(clone)
}
