package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/jira"
)

// IssueRef is a lightweight reference to an issue in another project.
type IssueRef struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	URL     string `json:"url"`
}

// CrossProjectReferences maps related project keys to the references found in
// each direction, plus the component names both projects define.
type CrossProjectReferences struct {
	Outgoing         map[string][]IssueRef `json:"outgoing"`
	Incoming         map[string][]IssueRef `json:"incoming"`
	SharedComponents map[string][]string   `json:"shared_components"`
	RelatedIssues    []IssueRef            `json:"related_issues"`
}

// CrossProject finds mutual text references between a main project and each of
// the related projects, and intersects their component name sets when
// component metadata is available.
func (a *Analyzer) CrossProject(ctx context.Context, projectKey string, relatedProjects []string) (*CrossProjectReferences, error) {
	if projectKey == "" {
		return nil, fmt.Errorf("analyzer: project key required")
	}

	references := &CrossProjectReferences{
		Outgoing:         make(map[string][]IssueRef),
		Incoming:         make(map[string][]IssueRef),
		SharedComponents: make(map[string][]string),
		RelatedIssues:    []IssueRef{},
	}

	mainComponents := a.componentNames(ctx, projectKey)

	for _, related := range relatedProjects {
		outgoing, err := a.searchReferences(ctx, projectKey, related)
		if err != nil {
			return nil, err
		}
		if len(outgoing) > 0 {
			references.Outgoing[related] = outgoing
		}

		incoming, err := a.searchReferences(ctx, related, projectKey)
		if err != nil {
			return nil, err
		}
		if len(incoming) > 0 {
			references.Incoming[related] = incoming
		}

		if mainComponents == nil {
			continue
		}
		relatedComponents := a.componentNames(ctx, related)
		if shared := intersect(mainComponents, relatedComponents); len(shared) > 0 {
			references.SharedComponents[related] = shared
		}
	}

	return references, nil
}

// searchReferences finds issues in sourceProject whose description or comments
// mention an issue key of targetProject.
func (a *Analyzer) searchReferences(ctx context.Context, sourceProject, targetProject string) ([]IssueRef, error) {
	jql := fmt.Sprintf("project = %s AND (description ~ \"%s-\" OR comment ~ \"%s-\")",
		sourceProject, targetProject, targetProject)

	result, err := a.source.SearchIssues(ctx, jira.SearchRequest{
		JQL:        jql,
		MaxResults: crossRefLimit,
		Fields:     []string{"summary", "issuetype", "status"},
	})
	if err != nil {
		return nil, err
	}

	refs := make([]IssueRef, 0, len(result.Issues))
	for _, issue := range result.Issues {
		refs = append(refs, IssueRef{
			Key:     issue.Key,
			Summary: issue.Fields.Summary,
			Type:    issue.Fields.IssueType.Name,
			Status:  issue.Fields.Status.Name,
			URL:     a.browseURL(issue.Key),
		})
	}

	return refs, nil
}

// componentNames fetches a project's component name set. Failures are treated
// as absent component metadata, not as a fatal error.
func (a *Analyzer) componentNames(ctx context.Context, projectKey string) map[string]bool {
	components, err := a.source.ProjectComponents(ctx, projectKey)
	if err != nil {
		a.logger.Debug("component metadata unavailable",
			slog.String("project", projectKey), slog.Any("error", err))
		return nil
	}

	names := make(map[string]bool, len(components))
	for _, component := range components {
		names[component.Name] = true
	}
	return names
}

// intersect returns the sorted intersection of two name sets.
func intersect(a, b map[string]bool) []string {
	var shared []string
	for name := range a {
		if b[name] {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}
