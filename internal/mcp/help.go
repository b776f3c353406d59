package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const helpScheme = "jira-help://"

const connectionHelp = `# Jira Connection Help

To connect to Jira in read-only mode, you'll need:
1. The Jira server URL (e.g. https://your-domain.atlassian.net)
2. Either:
   - A username (email) and API token
   - An API token only (sent as a bearer token)

API tokens can be generated from your Atlassian account settings.

Note: this server operates in read-only mode and cannot modify any Jira data.
`

const analysisHelp = `# Jira Analysis Features

Available analysis tools:
1. Issue Details
   - Full issue content
   - Comment history
   - Change history
   - Related issues

2. Search & Discovery
   - Flexible issue search
   - JQL filtering
   - Cross-project references

3. Content Analysis
   - Text pattern analysis
   - Common terms identification
   - Comment patterns
   - Label usage

4. Relationship Analysis
   - Issue dependencies
   - Cross-project references
   - Component sharing
`

const securityHelp = `# Security Best Practices

1. Read-Only Access
   - This server cannot modify Jira data
   - All operations are read-only
   - No state changes are possible

2. Authentication
   - Never store credentials in code
   - Use environment variables or .netrc for sensitive data
   - Prefer API tokens over username/password
   - Regularly rotate API tokens

3. Data Access
   - Only access projects you have permission to view
   - Respect Jira's security model
   - Don't share sensitive data
`

const helpFallback = "Topic not found. Available topics: connection, analysis, security"

var helpTopics = map[string]string{
	"connection": connectionHelp,
	"analysis":   analysisHelp,
	"security":   securityHelp,
}

// registerHelpResource exposes the fixed help documents under
// jira-help://{topic}.
func registerHelpResource(s *server.MCPServer) {
	template := mcp.NewResourceTemplate(
		helpScheme+"{topic}",
		"Jira analyzer help",
		mcp.WithTemplateDescription("Help documentation for the Jira analysis tools"),
		mcp.WithTemplateMIMEType("text/markdown"),
	)

	s.AddResourceTemplate(template, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		topic := strings.TrimPrefix(request.Params.URI, helpScheme)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     helpText(topic),
			},
		}, nil
	})
}

// helpText resolves a topic to its document or the fallback message.
func helpText(topic string) string {
	if doc, ok := helpTopics[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return doc
	}
	return helpFallback
}
