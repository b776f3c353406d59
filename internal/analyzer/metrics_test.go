package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

func metricIssue(issueType, status string, priority *jira.Name) jira.Issue {
	return jira.Issue{
		Fields: jira.IssueFields{
			IssueType: jira.Name{Name: issueType},
			Status:    jira.Name{Name: status},
			Priority:  priority,
		},
	}
}

func TestProjectMetrics(t *testing.T) {
	t.Parallel()

	high := &jira.Name{Name: "High"}
	source := &fakeSource{searches: map[string]*jira.SearchResult{
		"project = PRJ": {Issues: []jira.Issue{
			metricIssue("Bug", "Open", high),
			metricIssue("Bug", "Done", nil),
			metricIssue("Task", "Open", high),
		}},
	}}
	a := newTestAnalyzer(source)

	metrics, err := a.ProjectMetrics(context.Background(), "PRJ")
	require.NoError(t, err)

	require.Equal(t, 3, metrics.TotalIssues)
	require.Equal(t, map[string]int{"Bug": 2, "Task": 1}, metrics.ByType)
	require.Equal(t, map[string]int{"Open": 2, "Done": 1}, metrics.ByStatus)
	require.Equal(t, map[string]int{"High": 2, "No Priority": 1}, metrics.ByPriority)
}

func TestProjectMetricsEmptyProject(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(&fakeSource{})

	metrics, err := a.ProjectMetrics(context.Background(), "PRJ")
	require.NoError(t, err)

	require.Zero(t, metrics.TotalIssues)
	require.Empty(t, metrics.ByType)
}

func TestProjectInfo(t *testing.T) {
	t.Parallel()

	source := &fakeSource{projects: map[string]*jira.Project{
		"PRJ": {
			ID:          "10000",
			Key:         "PRJ",
			Name:        "Project",
			Description: "All the things",
			Lead:        &jira.User{DisplayName: "Lead"},
		},
	}}
	a := newTestAnalyzer(source)

	info, err := a.ProjectInfo(context.Background(), "PRJ")
	require.NoError(t, err)

	require.Equal(t, "PRJ", info.Key)
	require.Equal(t, "Lead", info.Lead)
	require.Equal(t, "https://example.atlassian.net/browse/PRJ", info.URL)
}

func TestProjectInfoMissingLead(t *testing.T) {
	t.Parallel()

	source := &fakeSource{projects: map[string]*jira.Project{
		"PRJ": {Key: "PRJ", Name: "Project"},
	}}
	a := newTestAnalyzer(source)

	info, err := a.ProjectInfo(context.Background(), "PRJ")
	require.NoError(t, err)
	require.Empty(t, info.Lead)
}
