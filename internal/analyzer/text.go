package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

// TermCount is one entry of an ordered frequency table.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// CommentPatterns aggregates comment statistics over the analyzed window.
type CommentPatterns struct {
	TotalComments    int            `json:"total_comments"`
	AvgCommentLength float64        `json:"avg_comment_length"`
	CommentFrequency map[string]int `json:"comment_frequency"`
}

// TextAnalysis is the result of a text-content scan. The frequency tables are
// ordered slices so that descending-count order survives JSON serialization.
type TextAnalysis struct {
	CommonTerms          []TermCount     `json:"common_terms"`
	Labels               []TermCount     `json:"labels"`
	ComponentsReferenced []TermCount     `json:"components_referenced"`
	CommentPatterns      CommentPatterns `json:"comment_patterns"`
}

// tally counts string keys while remembering first-seen order, so that equal
// counts sort in encounter order.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// sorted returns the entries in descending count order, ties broken by
// first-seen order, truncated to limit when limit > 0.
func (t *tally) sorted(limit int) []TermCount {
	out := make([]TermCount, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, TermCount{Term: key, Count: t.counts[key]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TextContent scans issues updated within the lookback window and tallies
// description terms, labels, components and comment statistics.
func (a *Analyzer) TextContent(ctx context.Context, projectKey string, days int) (*TextAnalysis, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("analyzer: project key required")
	}
	if days <= 0 {
		days = DefaultLookbackDays
	}

	since := a.now().AddDate(0, 0, -days)
	jql := fmt.Sprintf("project = %s AND updated >= %q", projectKey, since.Format("2006-01-02"))

	result, err := a.source.SearchIssues(ctx, jira.SearchRequest{
		JQL:        jql,
		MaxResults: textSearchLimit,
		Fields:     []string{"description", "comment", "labels", "components"},
	})
	if err != nil {
		return nil, err
	}

	terms := newTally()
	labels := newTally()
	components := newTally()
	frequency := make(map[string]int)

	totalComments := 0
	totalCommentLength := 0

	for _, issue := range result.Issues {
		for _, word := range strings.Fields(strings.ToLower(issue.Fields.Description)) {
			if utf8.RuneCountInString(word) > shortWordMax {
				terms.add(word)
			}
		}

		if issue.Fields.Comment != nil {
			for _, comment := range issue.Fields.Comment.Comments {
				totalComments++
				totalCommentLength += utf8.RuneCountInString(comment.Body)

				if day, ok := commentDay(comment.Created); ok {
					frequency[day]++
				}
			}
		}

		for _, label := range issue.Fields.Labels {
			labels.add(label)
		}

		for _, component := range issue.Fields.Components {
			components.add(component.Name)
		}
	}

	avgLength := 0.0
	if totalComments > 0 {
		avgLength = float64(totalCommentLength) / float64(totalComments)
	}

	return &TextAnalysis{
		CommonTerms:          terms.sorted(topTermLimit),
		Labels:               labels.sorted(0),
		ComponentsReferenced: components.sorted(0),
		CommentPatterns: CommentPatterns{
			TotalComments:    totalComments,
			AvgCommentLength: avgLength,
			CommentFrequency: frequency,
		},
	}, nil
}

// commentDay buckets a Jira timestamp ("2006-01-02T15:04:05.000-0700") at day
// granularity. Malformed timestamps are skipped rather than failing the scan.
func commentDay(created string) (string, bool) {
	if len(created) < 10 {
		return "", false
	}

	day, err := time.Parse("2006-01-02", created[:10])
	if err != nil {
		return "", false
	}

	return day.Format("2006-01-02"), true
}
