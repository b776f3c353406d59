package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/analyzer"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/config"
	"gitlab.com/your-org/jira-analyzer-mcp/internal/session"
)

// connectFunc establishes a Jira session; swapped out in tests.
type connectFunc func(ctx context.Context, site string, creds config.ServiceCredentials, logger *slog.Logger) (*analyzer.Analyzer, error)

// JiraTools wires the analyzer into MCP tools.
type JiraTools struct {
	session *session.Session
	logger  *slog.Logger
	connect connectFunc
}

// NewJiraTools registers the Jira analysis tools on the server.
func NewJiraTools(s *server.MCPServer, sess *session.Session, logger *slog.Logger) *JiraTools {
	if logger == nil {
		logger = slog.Default()
	}

	jt := &JiraTools{
		session: sess,
		logger:  logger,
		connect: analyzer.Connect,
	}

	s.AddTool(
		mcp.NewTool(
			"jira.connect",
			mcp.WithDescription("Connect to a Jira server using basic auth or token authentication (read-only mode)"),
			mcp.WithInputSchema[JiraConnectArgs](),
			mcp.WithOutputSchema[JiraConnectResult](),
		),
		mcp.NewTypedToolHandler(jt.handleConnect),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.get_issue",
			mcp.WithDescription("Get comprehensive details about a Jira issue including comments, change history and links"),
			mcp.WithInputSchema[JiraGetIssueArgs](),
			mcp.WithOutputSchema[analyzer.IssueDetails](),
		),
		mcp.NewTypedToolHandler(jt.handleGetIssue),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.search_issues",
			mcp.WithDescription("Search for issues in a project with optional extra JQL filters"),
			mcp.WithInputSchema[JiraSearchIssuesArgs](),
			mcp.WithOutputSchema[JiraSearchIssuesResult](),
		),
		mcp.NewTypedToolHandler(jt.handleSearchIssues),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.analyze_relationships",
			mcp.WithDescription("Analyze issue link relationships up to a depth bound, deduplicating visited issues"),
			mcp.WithInputSchema[JiraAnalyzeRelationshipsArgs](),
			mcp.WithOutputSchema[analyzer.RelationshipResult](),
		),
		mcp.NewTypedToolHandler(jt.handleAnalyzeRelationships),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.analyze_text",
			mcp.WithDescription("Analyze text patterns in recently updated issues: common terms, labels, components and comment statistics"),
			mcp.WithInputSchema[JiraAnalyzeTextArgs](),
			mcp.WithOutputSchema[analyzer.TextAnalysis](),
		),
		mcp.NewTypedToolHandler(jt.handleAnalyzeText),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.cross_project_references",
			mcp.WithDescription("Find mutual references and shared components between a project and its related projects"),
			mcp.WithInputSchema[JiraCrossProjectArgs](),
			mcp.WithOutputSchema[analyzer.CrossProjectReferences](),
		),
		mcp.NewTypedToolHandler(jt.handleCrossProjectReferences),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.get_project_info",
			mcp.WithDescription("Get basic information about a Jira project"),
			mcp.WithInputSchema[JiraProjectArgs](),
			mcp.WithOutputSchema[analyzer.ProjectInfo](),
		),
		mcp.NewTypedToolHandler(jt.handleGetProjectInfo),
	)

	s.AddTool(
		mcp.NewTool(
			"jira.analyze_project_metrics",
			mcp.WithDescription("Count a project's issues by type, status and priority"),
			mcp.WithInputSchema[JiraProjectArgs](),
			mcp.WithOutputSchema[analyzer.ProjectMetrics](),
		),
		mcp.NewTypedToolHandler(jt.handleAnalyzeProjectMetrics),
	)

	return jt
}

// analyzer fetches the connected analyzer from the session.
func (jt *JiraTools) analyzer() (*analyzer.Analyzer, error) {
	return jt.session.Analyzer()
}

// JiraConnectArgs parameters for establishing a session.
type JiraConnectArgs struct {
	Server   string `json:"server" jsonschema:"required" jsonschema_description:"Jira server URL (e.g. https://your-domain.atlassian.net)"`
	Username string `json:"username,omitempty" jsonschema_description:"Optional username or email for basic auth"`
	APIToken string `json:"apiToken,omitempty" jsonschema_description:"API token, password, or personal access token"`
}

// JiraConnectResult reports connection outcome. Failures are part of the
// normal result, never a tool error.
type JiraConnectResult struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

func (jt *JiraTools) handleConnect(ctx context.Context, _ mcp.CallToolRequest, args JiraConnectArgs) (*mcp.CallToolResult, error) {
	if strings.TrimSpace(args.Server) == "" {
		result := JiraConnectResult{
			Connected: false,
			Message:   "Failed to connect: server URL must not be empty",
		}
		return mcp.NewToolResultStructured(result, result.Message), nil
	}

	creds := config.ServiceCredentials{
		Email:    args.Username,
		APIToken: args.APIToken,
	}

	a, err := jt.connect(ctx, args.Server, creds, jt.logger)
	if err != nil {
		result := JiraConnectResult{
			Connected: false,
			Message:   fmt.Sprintf("Failed to connect: %v", err),
		}
		return mcp.NewToolResultStructured(result, result.Message), nil
	}

	jt.session.Connect(a, a.SiteURL())
	jt.logger.Info("connected to Jira", slog.String("site", a.SiteURL()))

	result := JiraConnectResult{
		Connected: true,
		Message:   "Successfully connected to Jira in read-only mode",
	}
	return mcp.NewToolResultStructured(result, result.Message), nil
}

// JiraGetIssueArgs parameters for fetching one issue.
type JiraGetIssueArgs struct {
	Key string `json:"key" jsonschema:"required" jsonschema_description:"Issue key (e.g. PROJ-123)"`
}

func (jt *JiraTools) handleGetIssue(ctx context.Context, _ mcp.CallToolRequest, args JiraGetIssueArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get issue failed", err), nil
	}

	details, err := a.IssueDetails(ctx, args.Key)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get issue failed", err), nil
	}

	fallback := fmt.Sprintf("Issue %s: %s", details.Key, details.Summary)
	return mcp.NewToolResultStructured(details, fallback), nil
}

// JiraSearchIssuesArgs parameters for bounded project searches.
type JiraSearchIssuesArgs struct {
	ProjectKey string `json:"projectKey" jsonschema:"required" jsonschema_description:"Project key (e.g. PROJ)"`
	JQLFilters string `json:"jqlFilters,omitempty" jsonschema_description:"Additional JQL filters ANDed onto the project clause"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema_description:"Maximum number of issues to return (default 100)" jsonschema:"minimum=1"`
}

// JiraSearchIssuesResult response payload.
type JiraSearchIssuesResult struct {
	Issues []analyzer.IssueSummary `json:"issues"`
}

func (jt *JiraTools) handleSearchIssues(ctx context.Context, _ mcp.CallToolRequest, args JiraSearchIssuesArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira search issues failed", err), nil
	}

	if strings.TrimSpace(args.ProjectKey) == "" {
		return mcp.NewToolResultError("project key must not be empty"), nil
	}

	issues, err := a.Search(ctx, args.ProjectKey, args.JQLFilters, args.MaxResults)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira search issues failed", err), nil
	}

	jt.session.SetLastJQL(analyzer.ProjectJQL(args.ProjectKey, args.JQLFilters))

	fallback := fmt.Sprintf("Found %d issues in %s", len(issues), args.ProjectKey)
	return mcp.NewToolResultStructured(JiraSearchIssuesResult{Issues: issues}, fallback), nil
}

// JiraAnalyzeRelationshipsArgs parameters for the link-graph walk.
type JiraAnalyzeRelationshipsArgs struct {
	Key   string `json:"key" jsonschema:"required" jsonschema_description:"Root issue key (e.g. PROJ-123)"`
	Depth int    `json:"depth,omitempty" jsonschema_description:"How many levels of links to expand (default 2)" jsonschema:"minimum=1,maximum=5"`
}

func (jt *JiraTools) handleAnalyzeRelationships(ctx context.Context, _ mcp.CallToolRequest, args JiraAnalyzeRelationshipsArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze relationships failed", err), nil
	}

	result, err := a.Relationships(ctx, args.Key, args.Depth)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze relationships failed", err), nil
	}

	fallback := fmt.Sprintf("Found %d direct relationships for %s", len(result.Relationships), result.Key)
	return mcp.NewToolResultStructured(result, fallback), nil
}

// JiraAnalyzeTextArgs parameters for the text-content scan.
type JiraAnalyzeTextArgs struct {
	ProjectKey string `json:"projectKey" jsonschema:"required" jsonschema_description:"Project key (e.g. PROJ)"`
	Days       int    `json:"days,omitempty" jsonschema_description:"Lookback window in days (default 30)" jsonschema:"minimum=1"`
}

func (jt *JiraTools) handleAnalyzeText(ctx context.Context, _ mcp.CallToolRequest, args JiraAnalyzeTextArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze text failed", err), nil
	}

	analysis, err := a.TextContent(ctx, args.ProjectKey, args.Days)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze text failed", err), nil
	}

	fallback := fmt.Sprintf("Analyzed %d comments and %d common terms in %s",
		analysis.CommentPatterns.TotalComments, len(analysis.CommonTerms), args.ProjectKey)
	return mcp.NewToolResultStructured(analysis, fallback), nil
}

// JiraCrossProjectArgs parameters for cross-project reference detection.
type JiraCrossProjectArgs struct {
	ProjectKey      string   `json:"projectKey" jsonschema:"required" jsonschema_description:"Main project key"`
	RelatedProjects []string `json:"relatedProjects" jsonschema:"required" jsonschema_description:"Related project keys to analyze"`
}

func (jt *JiraTools) handleCrossProjectReferences(ctx context.Context, _ mcp.CallToolRequest, args JiraCrossProjectArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira cross project references failed", err), nil
	}

	if len(args.RelatedProjects) == 0 {
		return mcp.NewToolResultError("at least one related project is required"), nil
	}

	refs, err := a.CrossProject(ctx, args.ProjectKey, args.RelatedProjects)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira cross project references failed", err), nil
	}

	fallback := fmt.Sprintf("Checked %d related projects for references to %s", len(args.RelatedProjects), args.ProjectKey)
	return mcp.NewToolResultStructured(refs, fallback), nil
}

// JiraProjectArgs parameters for project-level operations.
type JiraProjectArgs struct {
	ProjectKey string `json:"projectKey" jsonschema:"required" jsonschema_description:"Project key (e.g. PROJ)"`
}

func (jt *JiraTools) handleGetProjectInfo(ctx context.Context, _ mcp.CallToolRequest, args JiraProjectArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get project info failed", err), nil
	}

	info, err := a.ProjectInfo(ctx, args.ProjectKey)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira get project info failed", err), nil
	}

	fallback := fmt.Sprintf("Project %s: %s", info.Key, info.Name)
	return mcp.NewToolResultStructured(info, fallback), nil
}

func (jt *JiraTools) handleAnalyzeProjectMetrics(ctx context.Context, _ mcp.CallToolRequest, args JiraProjectArgs) (*mcp.CallToolResult, error) {
	a, err := jt.analyzer()
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze project metrics failed", err), nil
	}

	metrics, err := a.ProjectMetrics(ctx, args.ProjectKey)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("jira analyze project metrics failed", err), nil
	}

	fallback := fmt.Sprintf("%s has %d issues", args.ProjectKey, metrics.TotalIssues)
	return mcp.NewToolResultStructured(metrics, fallback), nil
}
