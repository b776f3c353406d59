package analyzer

import (
	"context"
)

// RelationshipNode describes one linked issue and its own expansion.
type RelationshipNode struct {
	Type    string          `json:"type"`
	Summary string          `json:"summary"`
	Status  string          `json:"status"`
	Links   RelationshipMap `json:"links"`
}

// RelationshipMap maps linked issue keys to their relationship nodes.
type RelationshipMap map[string]*RelationshipNode

// RelationshipResult is the full traversal result for one root issue.
type RelationshipResult struct {
	Key           string          `json:"key"`
	Relationships RelationshipMap `json:"relationships"`
}

// frame is one pending expansion on the traversal work list.
type frame struct {
	key   string
	depth int
	dest  RelationshipMap
}

// Relationships expands an issue's outward and inward links up to maxDepth
// levels. The traversal runs on an explicit LIFO work list in depth-first
// order; a visited set keyed by issue key guards against cycles. A frame whose
// key was already visited, or whose depth exceeds the bound, contributes an
// empty expansion.
func (a *Analyzer) Relationships(ctx context.Context, rootKey string, maxDepth int) (*RelationshipResult, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultRelationshipDepth
	}

	result := &RelationshipResult{
		Key:           rootKey,
		Relationships: RelationshipMap{},
	}

	visited := make(map[string]bool)
	stack := []frame{{key: rootKey, depth: 1, dest: result.Relationships}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > maxDepth || visited[f.key] {
			continue
		}
		visited[f.key] = true

		issue, err := a.source.GetIssue(ctx, f.key, nil)
		if err != nil {
			return nil, err
		}

		// Children are pushed in reverse so the work list pops them in the
		// order the API returned them, matching a recursive walk.
		var children []frame
		for _, link := range issue.Fields.IssueLinks {
			if link.OutwardIssue != nil {
				node := &RelationshipNode{
					Type:    link.Type.Outward,
					Summary: link.OutwardIssue.Fields.Summary,
					Status:  link.OutwardIssue.Fields.Status.Name,
					Links:   RelationshipMap{},
				}
				f.dest[link.OutwardIssue.Key] = node
				children = append(children, frame{key: link.OutwardIssue.Key, depth: f.depth + 1, dest: node.Links})
			}
			if link.InwardIssue != nil {
				node := &RelationshipNode{
					Type:    link.Type.Inward,
					Summary: link.InwardIssue.Fields.Summary,
					Status:  link.InwardIssue.Fields.Status.Name,
					Links:   RelationshipMap{},
				}
				f.dest[link.InwardIssue.Key] = node
				children = append(children, frame{key: link.InwardIssue.Key, depth: f.depth + 1, dest: node.Links})
			}
		}

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return result, nil
}
