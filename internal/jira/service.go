package jira

import (
	"strings"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/atlassian"
)

const apiPrefix = "/rest/api/2"

// Service exposes the read-only Jira REST endpoints used by the analyzers.
type Service struct {
	client *atlassian.Client
}

// NewService creates a Jira service using the provided REST client.
func NewService(client *atlassian.Client) *Service {
	return &Service{client: client}
}

// SiteURL returns the base site URL used to build browse links.
func (s *Service) SiteURL() string {
	if s.client == nil {
		return ""
	}
	return s.client.BaseURL()
}

// apiPath constructs Jira API paths by joining parts with the API prefix.
func apiPath(parts ...string) string {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimRight(apiPrefix, "/"))

	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			builder.WriteByte('/')
			builder.WriteString(trimmed)
		}
	}

	return builder.String()
}
