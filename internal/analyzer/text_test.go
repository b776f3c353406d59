package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

const windowJQL = `project = PRJ AND updated >= "2024-03-01"`

func textIssue(description string, comments []jira.Comment, labels []string, components ...string) jira.Issue {
	issue := jira.Issue{
		Fields: jira.IssueFields{
			Description: description,
			Labels:      labels,
		},
	}
	if comments != nil {
		issue.Fields.Comment = &jira.CommentPage{Comments: comments}
	}
	for i, name := range components {
		issue.Fields.Components = append(issue.Fields.Components, jira.Component{
			ID:   fmt.Sprintf("%d", i),
			Name: name,
		})
	}
	return issue
}

func TestTextContentZeroIssues(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	require.Empty(t, analysis.CommonTerms)
	require.Empty(t, analysis.Labels)
	require.Empty(t, analysis.ComponentsReferenced)
	require.Zero(t, analysis.CommentPatterns.TotalComments)
	require.Zero(t, analysis.CommentPatterns.AvgCommentLength)
	require.Empty(t, analysis.CommentPatterns.CommentFrequency)

	// A 30-day lookback from the fixed clock (2024-03-31).
	require.Len(t, source.searchReqs, 1)
	require.Equal(t, windowJQL, source.searchReqs[0].JQL)
	require.Equal(t, textSearchLimit, source.searchReqs[0].MaxResults)
}

func TestTextContentTermCounting(t *testing.T) {
	t.Parallel()

	source := &fakeSource{searches: map[string]*jira.SearchResult{
		windowJQL: {Issues: []jira.Issue{
			textIssue("The Timeout timeout bug hits the gateway", nil, nil),
			textIssue("timeout occurs again near the gateway", nil, nil),
		}},
	}}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, tc := range analysis.CommonTerms {
		counts[tc.Term] = tc.Count
	}

	// Lowercased, whitespace-split, words longer than 3 characters only.
	require.Equal(t, 3, counts["timeout"])
	require.Equal(t, 2, counts["gateway"])
	require.Equal(t, 1, counts["hits"])
	require.NotContains(t, counts, "the")
	require.NotContains(t, counts, "bug")

	require.Equal(t, "timeout", analysis.CommonTerms[0].Term)
}

func TestTextContentTopTermsTruncation(t *testing.T) {
	t.Parallel()

	// 60 distinct terms: "term00" appears 60 times, "term01" 59 times, ... so
	// only the 50 most frequent survive, in descending order.
	var issues []jira.Issue
	for i := 0; i < 60; i++ {
		desc := ""
		for j := 0; j < 60-i; j++ {
			desc += fmt.Sprintf("term%02d ", i)
		}
		issues = append(issues, textIssue(desc, nil, nil))
	}

	source := &fakeSource{searches: map[string]*jira.SearchResult{
		windowJQL: {Issues: issues},
	}}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	require.Len(t, analysis.CommonTerms, 50)
	for i := 1; i < len(analysis.CommonTerms); i++ {
		require.GreaterOrEqual(t,
			analysis.CommonTerms[i-1].Count,
			analysis.CommonTerms[i].Count,
			"terms must be sorted by descending count")
	}
	require.Equal(t, TermCount{Term: "term00", Count: 60}, analysis.CommonTerms[0])
	require.Equal(t, TermCount{Term: "term49", Count: 11}, analysis.CommonTerms[49])
}

func TestTextContentTieBreakIsEncounterOrder(t *testing.T) {
	t.Parallel()

	source := &fakeSource{searches: map[string]*jira.SearchResult{
		windowJQL: {Issues: []jira.Issue{
			textIssue("zebra apple zebra apple mango", nil, nil),
		}},
	}}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	require.Equal(t, []TermCount{
		{Term: "zebra", Count: 2},
		{Term: "apple", Count: 2},
		{Term: "mango", Count: 1},
	}, analysis.CommonTerms)
}

func TestTextContentCommentPatterns(t *testing.T) {
	t.Parallel()

	source := &fakeSource{searches: map[string]*jira.SearchResult{
		windowJQL: {Issues: []jira.Issue{
			textIssue("", []jira.Comment{
				{Body: "1234567890", Created: "2024-03-05T10:00:00.000+0000"},
				{Body: "12345", Created: "2024-03-05T18:30:00.000+0000"},
				{Body: "123", Created: "2024-03-06T08:00:00.000+0000"},
			}, nil),
		}},
	}}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	patterns := analysis.CommentPatterns
	require.Equal(t, 3, patterns.TotalComments)
	require.InDelta(t, 6.0, patterns.AvgCommentLength, 1e-9)
	require.Equal(t, map[string]int{
		"2024-03-05": 2,
		"2024-03-06": 1,
	}, patterns.CommentFrequency)
}

func TestTextContentLabelAndComponentTallies(t *testing.T) {
	t.Parallel()

	source := &fakeSource{searches: map[string]*jira.SearchResult{
		windowJQL: {Issues: []jira.Issue{
			textIssue("", nil, []string{"auth", "infra"}, "backend"),
			textIssue("", nil, []string{"infra"}, "backend", "frontend"),
		}},
	}}
	a := newTestAnalyzer(source)

	analysis, err := a.TextContent(context.Background(), "PRJ", 30)
	require.NoError(t, err)

	require.Equal(t, []TermCount{
		{Term: "infra", Count: 2},
		{Term: "auth", Count: 1},
	}, analysis.Labels)
	require.Equal(t, []TermCount{
		{Term: "backend", Count: 2},
		{Term: "frontend", Count: 1},
	}, analysis.ComponentsReferenced)
}

func TestTextContentDefaultWindow(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	a := newTestAnalyzer(source)

	_, err := a.TextContent(context.Background(), "PRJ", 0)
	require.NoError(t, err)

	require.Len(t, source.searchReqs, 1)
	require.Equal(t, windowJQL, source.searchReqs[0].JQL)
}

func TestCommentDay(t *testing.T) {
	t.Parallel()

	day, ok := commentDay("2024-03-05T10:00:00.000+0000")
	require.True(t, ok)
	require.Equal(t, "2024-03-05", day)

	_, ok = commentDay("garbage")
	require.False(t, ok)

	_, ok = commentDay("")
	require.False(t, ok)
}
