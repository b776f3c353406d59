package jira

import (
	"context"
	"fmt"
	"net/url"
)

// GetProject returns metadata for a single project.
func (s *Service) GetProject(ctx context.Context, key string) (*Project, error) {
	if key == "" {
		return nil, fmt.Errorf("jira: project key required")
	}

	var project Project
	if err := s.client.Get(ctx, apiPath("project", url.PathEscape(key)), nil, &project); err != nil {
		return nil, err
	}

	return &project, nil
}

// ProjectComponents lists the components defined in a project.
func (s *Service) ProjectComponents(ctx context.Context, key string) ([]Component, error) {
	if key == "" {
		return nil, fmt.Errorf("jira: project key required")
	}

	var components []Component
	if err := s.client.Get(ctx, apiPath("project", url.PathEscape(key), "components"), nil, &components); err != nil {
		return nil, err
	}

	return components, nil
}
