package jira

// Project represents a Jira project.
type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Lead        *User  `json:"lead,omitempty"`
}

// Component represents a project component.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the subset of Jira user fields we surface.
type User struct {
	DisplayName string `json:"displayName"`
	AccountID   string `json:"accountId"`
}

// Name wraps entities we only care about by name (status, issue type, priority).
type Name struct {
	Name string `json:"name"`
}

// Issue represents a Jira issue payload from the v2 REST API.
type Issue struct {
	ID        string      `json:"id"`
	Key       string      `json:"key"`
	Fields    IssueFields `json:"fields"`
	Changelog *Changelog  `json:"changelog,omitempty"`
}

// IssueFields reflect the subset of issue fields the analyzers read.
type IssueFields struct {
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	IssueType   Name         `json:"issuetype"`
	Status      Name         `json:"status"`
	Priority    *Name        `json:"priority"`
	Assignee    *User        `json:"assignee"`
	Reporter    *User        `json:"reporter"`
	Created     string       `json:"created"`
	Updated     string       `json:"updated"`
	Labels      []string     `json:"labels"`
	Components  []Component  `json:"components"`
	Comment     *CommentPage `json:"comment"`
	IssueLinks  []IssueLink  `json:"issuelinks"`
}

// CommentPage is the paged comment container embedded in issue fields.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

// Comment is a single issue comment.
type Comment struct {
	Author  User   `json:"author"`
	Body    string `json:"body"`
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// Changelog carries the issue change history when expanded.
type Changelog struct {
	Histories []ChangeHistory `json:"histories"`
}

// ChangeHistory is one changelog entry with its changed items.
type ChangeHistory struct {
	Created string       `json:"created"`
	Author  User         `json:"author"`
	Items   []ChangeItem `json:"items"`
}

// ChangeItem is a single field change within a history entry.
type ChangeItem struct {
	Field      string `json:"field"`
	FromString string `json:"fromString"`
	ToString   string `json:"toString"`
}

// IssueLink is a typed directed relationship between two issues.
// OutwardIssue or InwardIssue is set depending on the link direction.
type IssueLink struct {
	Type         LinkType     `json:"type"`
	OutwardIssue *LinkedIssue `json:"outwardIssue,omitempty"`
	InwardIssue  *LinkedIssue `json:"inwardIssue,omitempty"`
}

// LinkType names both directions of a link relationship.
type LinkType struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

// LinkedIssue is the peer summary carried on an issue link.
type LinkedIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  Name   `json:"status"`
	} `json:"fields"`
}

// SearchRequest defines parameters for JQL searches.
type SearchRequest struct {
	JQL        string
	StartAt    int
	MaxResults int
	Fields     []string
	Expand     []string
}

// SearchResult represents the Jira search response.
type SearchResult struct {
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
}
