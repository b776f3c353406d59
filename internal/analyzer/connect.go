package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/atlassian"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

// Connect establishes a read-only session against the given Jira site. The
// credentials are validated up front with an authenticated-user probe through
// the go-atlassian SDK before the REST service used for analysis is built.
func Connect(ctx context.Context, site string, creds config.ServiceCredentials, logger *slog.Logger) (*Analyzer, error) {
	siteURL := normalizeSite(site)

	sdkClient, err := jira.NewClient(siteURL, creds)
	if err != nil {
		return nil, err
	}

	if err := jira.VerifyConnection(ctx, sdkClient); err != nil {
		return nil, err
	}

	client, err := atlassian.NewClient(siteURL, creds, logger)
	if err != nil {
		return nil, err
	}

	return New(jira.NewService(client), siteURL, logger), nil
}

// SiteURL returns the site the analyzer is bound to.
func (a *Analyzer) SiteURL() string {
	return a.siteURL
}

// normalizeSite defaults the scheme to HTTPS and strips trailing slashes.
func normalizeSite(site string) string {
	trimmed := strings.TrimSpace(site)
	if trimmed == "" {
		return ""
	}

	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}

	return strings.TrimRight(trimmed, "/")
}

// ProjectJQL composes the base project clause with optional extra filters.
func ProjectJQL(projectKey, jqlFilters string) string {
	jql := "project = " + projectKey
	if strings.TrimSpace(jqlFilters) != "" {
		jql += " AND " + jqlFilters
	}
	return jql
}
