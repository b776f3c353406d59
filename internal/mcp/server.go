package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/session"
)

// Dependencies bundles what the MCP server construction needs.
type Dependencies struct {
	Session *session.Session
	Logger  *slog.Logger
}

// NewServer builds an MCP server with the Jira analysis tools and the help
// resource registered.
func NewServer(deps Dependencies) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	if deps.Session == nil {
		deps.Session = session.New()
	}

	srv := server.NewMCPServer(
		"JIRA Analyzer",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("Read-only Jira query and analysis tools. Connect first with jira.connect unless the server was preconfigured."),
		server.WithRecovery(),
	)

	NewJiraTools(srv, deps.Session, deps.Logger)
	registerHelpResource(srv)

	return srv
}
