package jira

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetIssue fetches a single issue. Expand values (e.g. "changelog") are passed
// through to the REST API; comments arrive inside fields without expansion.
func (s *Service) GetIssue(ctx context.Context, key string, expand []string) (*Issue, error) {
	if key == "" {
		return nil, fmt.Errorf("jira: issue key required")
	}

	var query map[string]string
	if len(expand) > 0 {
		query = map[string]string{"expand": strings.Join(expand, ",")}
	}

	var issue Issue
	if err := s.client.Get(ctx, apiPath("issue", url.PathEscape(key)), query, &issue); err != nil {
		return nil, err
	}

	return &issue, nil
}

// SearchIssues executes a JQL search.
func (s *Service) SearchIssues(ctx context.Context, sr SearchRequest) (*SearchResult, error) {
	if sr.JQL == "" {
		return nil, fmt.Errorf("jira: jql required")
	}

	body := map[string]any{
		"jql": sr.JQL,
	}

	if sr.StartAt > 0 {
		body["startAt"] = sr.StartAt
	}

	if sr.MaxResults > 0 {
		body["maxResults"] = sr.MaxResults
	}

	if len(sr.Fields) > 0 {
		body["fields"] = sr.Fields
	}

	if len(sr.Expand) > 0 {
		body["expand"] = sr.Expand
	}

	var result SearchResult
	if err := s.client.Post(ctx, apiPath("search"), body, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
