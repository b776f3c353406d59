package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

func refIssue(key, summary string) jira.Issue {
	return jira.Issue{
		Key: key,
		Fields: jira.IssueFields{
			Summary:   summary,
			IssueType: jira.Name{Name: "Task"},
			Status:    jira.Name{Name: "Open"},
		},
	}
}

func refJQL(source, target string) string {
	return fmt.Sprintf("project = %s AND (description ~ \"%s-\" OR comment ~ \"%s-\")", source, target, target)
}

func TestCrossProjectReferences(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		searches: map[string]*jira.SearchResult{
			refJQL("MAIN", "OPS"): {Issues: []jira.Issue{refIssue("MAIN-1", "mentions OPS-5")}},
			refJQL("OPS", "MAIN"): {Issues: []jira.Issue{refIssue("OPS-5", "mentions MAIN-1"), refIssue("OPS-9", "also MAIN-1")}},
		},
		components: map[string][]jira.Component{
			"MAIN": {{Name: "backend"}, {Name: "shared-lib"}, {Name: "frontend"}},
			"OPS":  {{Name: "shared-lib"}, {Name: "deploy"}, {Name: "backend"}},
		},
	}
	a := newTestAnalyzer(source)

	refs, err := a.CrossProject(context.Background(), "MAIN", []string{"OPS"})
	require.NoError(t, err)

	require.Len(t, refs.Outgoing["OPS"], 1)
	require.Equal(t, "MAIN-1", refs.Outgoing["OPS"][0].Key)
	require.Equal(t, "https://example.atlassian.net/browse/MAIN-1", refs.Outgoing["OPS"][0].URL)

	require.Len(t, refs.Incoming["OPS"], 2)
	require.Equal(t, "OPS-5", refs.Incoming["OPS"][0].Key)

	// Exact sorted intersection of the two component name sets.
	require.Equal(t, []string{"backend", "shared-lib"}, refs.SharedComponents["OPS"])

	require.Empty(t, refs.RelatedIssues)
}

func TestCrossProjectOmitsEmptyDirections(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		searches: map[string]*jira.SearchResult{
			refJQL("MAIN", "OPS"): {Issues: []jira.Issue{refIssue("MAIN-1", "mentions OPS-5")}},
		},
		components: map[string][]jira.Component{
			"MAIN": {{Name: "backend"}},
			"OPS":  {{Name: "deploy"}},
		},
	}
	a := newTestAnalyzer(source)

	refs, err := a.CrossProject(context.Background(), "MAIN", []string{"OPS"})
	require.NoError(t, err)

	require.Contains(t, refs.Outgoing, "OPS")
	require.NotContains(t, refs.Incoming, "OPS")
	require.NotContains(t, refs.SharedComponents, "OPS")
}

func TestCrossProjectComponentMetadataUnavailable(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		componentsErr: map[string]error{"MAIN": fmt.Errorf("components endpoint forbidden")},
		components: map[string][]jira.Component{
			"OPS": {{Name: "deploy"}},
		},
	}
	a := newTestAnalyzer(source)

	refs, err := a.CrossProject(context.Background(), "MAIN", []string{"OPS"})
	require.NoError(t, err)
	require.Empty(t, refs.SharedComponents)
}

func TestCrossProjectMultipleRelatedProjects(t *testing.T) {
	t.Parallel()

	source := &fakeSource{
		searches: map[string]*jira.SearchResult{
			refJQL("MAIN", "OPS"): {Issues: []jira.Issue{refIssue("MAIN-1", "x")}},
			refJQL("MAIN", "WEB"): {Issues: []jira.Issue{refIssue("MAIN-2", "y")}},
		},
		components: map[string][]jira.Component{"MAIN": {{Name: "core"}}},
	}
	a := newTestAnalyzer(source)

	refs, err := a.CrossProject(context.Background(), "MAIN", []string{"OPS", "WEB"})
	require.NoError(t, err)

	require.Len(t, refs.Outgoing, 2)
	require.Len(t, source.searchReqs, 4)
	for _, sr := range source.searchReqs {
		require.Equal(t, crossRefLimit, sr.MaxResults)
	}
}
