// Package analyzer implements read-only analysis over Jira issues: flattened
// issue reads, bounded JQL searches, link-graph traversal, free-text term
// tallies and cross-project reference detection. It never calls a mutating
// endpoint.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

// Defaults and bounds for the analysis operations.
const (
	DefaultSearchLimit       = 100
	DefaultRelationshipDepth = 2
	DefaultLookbackDays      = 30

	textSearchLimit = 1000
	crossRefLimit   = 100
	topTermLimit    = 50
	shortWordMax    = 3
)

// Source is the read-only slice of the Jira service the analyzers consume.
type Source interface {
	GetIssue(ctx context.Context, key string, expand []string) (*jira.Issue, error)
	SearchIssues(ctx context.Context, sr jira.SearchRequest) (*jira.SearchResult, error)
	GetProject(ctx context.Context, key string) (*jira.Project, error)
	ProjectComponents(ctx context.Context, key string) ([]jira.Component, error)
}

// Analyzer runs analysis queries against a single connected Jira site.
type Analyzer struct {
	source  Source
	siteURL string
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Analyzer over the given source. The site URL is used to build
// browse links on returned records.
func New(source Source, siteURL string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		source:  source,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

func (a *Analyzer) browseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", a.siteURL, key)
}

// CommentDetail is a flattened issue comment.
type CommentDetail struct {
	Author  string `json:"author"`
	Created string `json:"created"`
	Body    string `json:"body"`
	Updated string `json:"updated"`
}

// ChangeDetail is a single flattened change-history entry.
type ChangeDetail struct {
	Date   string `json:"date"`
	Author string `json:"author"`
	Field  string `json:"field"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// LinkDetail is a flattened issue link in either direction.
type LinkDetail struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Status string `json:"status"`
}

// IssueDetails is the full flattened issue record.
type IssueDetails struct {
	Key         string          `json:"key"`
	Summary     string          `json:"summary"`
	Description string          `json:"description"`
	IssueType   string          `json:"issue_type"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority,omitempty"`
	Assignee    string          `json:"assignee,omitempty"`
	Reporter    string          `json:"reporter"`
	Created     string          `json:"created"`
	Updated     string          `json:"updated"`
	Labels      []string        `json:"labels"`
	Components  []string        `json:"components"`
	Comments    []CommentDetail `json:"comments"`
	History     []ChangeDetail  `json:"history"`
	Links       []LinkDetail    `json:"links"`
	URL         string          `json:"url"`
}

// IssueDetails fetches one issue with its comments, change history and links
// flattened into a single record.
func (a *Analyzer) IssueDetails(ctx context.Context, key string) (*IssueDetails, error) {
	issue, err := a.source.GetIssue(ctx, key, []string{"changelog"})
	if err != nil {
		return nil, err
	}

	details := &IssueDetails{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Description: issue.Fields.Description,
		IssueType:   issue.Fields.IssueType.Name,
		Status:      issue.Fields.Status.Name,
		Created:     issue.Fields.Created,
		Updated:     issue.Fields.Updated,
		Labels:      append([]string{}, issue.Fields.Labels...),
		Components:  make([]string, 0, len(issue.Fields.Components)),
		Comments:    []CommentDetail{},
		History:     []ChangeDetail{},
		Links:       []LinkDetail{},
		URL:         a.browseURL(issue.Key),
	}

	if issue.Fields.Priority != nil {
		details.Priority = issue.Fields.Priority.Name
	}
	if issue.Fields.Assignee != nil {
		details.Assignee = issue.Fields.Assignee.DisplayName
	}
	if issue.Fields.Reporter != nil {
		details.Reporter = issue.Fields.Reporter.DisplayName
	}

	for _, c := range issue.Fields.Components {
		details.Components = append(details.Components, c.Name)
	}

	if issue.Fields.Comment != nil {
		for _, comment := range issue.Fields.Comment.Comments {
			details.Comments = append(details.Comments, CommentDetail{
				Author:  comment.Author.DisplayName,
				Created: comment.Created,
				Body:    comment.Body,
				Updated: comment.Updated,
			})
		}
	}

	if issue.Changelog != nil {
		for _, history := range issue.Changelog.Histories {
			for _, item := range history.Items {
				details.History = append(details.History, ChangeDetail{
					Date:   history.Created,
					Author: history.Author.DisplayName,
					Field:  item.Field,
					From:   item.FromString,
					To:     item.ToString,
				})
			}
		}
	}

	for _, link := range issue.Fields.IssueLinks {
		if link.OutwardIssue != nil {
			details.Links = append(details.Links, LinkDetail{
				Type:   link.Type.Outward,
				Key:    link.OutwardIssue.Key,
				Status: link.OutwardIssue.Fields.Status.Name,
			})
		}
		if link.InwardIssue != nil {
			details.Links = append(details.Links, LinkDetail{
				Type:   link.Type.Inward,
				Key:    link.InwardIssue.Key,
				Status: link.InwardIssue.Fields.Status.Name,
			})
		}
	}

	return details, nil
}

// IssueSummary is the per-issue record returned by Search.
type IssueSummary struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Priority string `json:"priority,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	URL      string `json:"url"`
}

// Search runs a bounded project search with optional extra JQL filters.
func (a *Analyzer) Search(ctx context.Context, projectKey, jqlFilters string, maxResults int) ([]IssueSummary, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("analyzer: project key required")
	}
	if maxResults <= 0 {
		maxResults = DefaultSearchLimit
	}

	result, err := a.source.SearchIssues(ctx, jira.SearchRequest{
		JQL:        ProjectJQL(projectKey, jqlFilters),
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]IssueSummary, 0, len(result.Issues))
	for _, issue := range result.Issues {
		summary := IssueSummary{
			Key:     issue.Key,
			Summary: issue.Fields.Summary,
			Type:    issue.Fields.IssueType.Name,
			Status:  issue.Fields.Status.Name,
			Created: issue.Fields.Created,
			Updated: issue.Fields.Updated,
			URL:     a.browseURL(issue.Key),
		}
		if issue.Fields.Priority != nil {
			summary.Priority = issue.Fields.Priority.Name
		}
		if issue.Fields.Assignee != nil {
			summary.Assignee = issue.Fields.Assignee.DisplayName
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
