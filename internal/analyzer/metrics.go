package analyzer

import (
	"context"
	"fmt"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

// ProjectInfo is the flattened project metadata record.
type ProjectInfo struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Lead        string `json:"lead,omitempty"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// ProjectInfo returns basic metadata for one project.
func (a *Analyzer) ProjectInfo(ctx context.Context, projectKey string) (*ProjectInfo, error) {
	project, err := a.source.GetProject(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	info := &ProjectInfo{
		Key:         project.Key,
		Name:        project.Name,
		Description: project.Description,
		URL:         fmt.Sprintf("%s/browse/%s", a.siteURL, project.Key),
	}
	if project.Lead != nil {
		info.Lead = project.Lead.DisplayName
	}

	return info, nil
}

// ProjectMetrics aggregates issue counts by type, status and priority.
type ProjectMetrics struct {
	TotalIssues int            `json:"total_issues"`
	ByType      map[string]int `json:"by_type"`
	ByStatus    map[string]int `json:"by_status"`
	ByPriority  map[string]int `json:"by_priority"`
}

// ProjectMetrics counts a project's issues by type, status and priority.
// Issues without a priority land in the "No Priority" bucket.
func (a *Analyzer) ProjectMetrics(ctx context.Context, projectKey string) (*ProjectMetrics, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("analyzer: project key required")
	}

	result, err := a.source.SearchIssues(ctx, jira.SearchRequest{
		JQL:        fmt.Sprintf("project = %s", projectKey),
		MaxResults: textSearchLimit,
		Fields:     []string{"issuetype", "status", "priority"},
	})
	if err != nil {
		return nil, err
	}

	metrics := &ProjectMetrics{
		TotalIssues: len(result.Issues),
		ByType:      make(map[string]int),
		ByStatus:    make(map[string]int),
		ByPriority:  make(map[string]int),
	}

	for _, issue := range result.Issues {
		metrics.ByType[issue.Fields.IssueType.Name]++
		metrics.ByStatus[issue.Fields.Status.Name]++

		priority := "No Priority"
		if issue.Fields.Priority != nil && issue.Fields.Priority.Name != "" {
			priority = issue.Fields.Priority.Name
		}
		metrics.ByPriority[priority]++
	}

	return metrics, nil
}
