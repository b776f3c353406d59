// Package session holds the single open Jira session shared by the MCP tools.
// It replaces implicit global connection state with an explicitly passed,
// mutex-guarded handle.
package session

import (
	"errors"
	"sync"

	"gitlab.com/your-org/jira-analyzer-mcp/internal/analyzer"
)

// ErrNotConnected signals that an analysis tool was invoked before a
// successful connect.
var ErrNotConnected = errors.New("not connected to Jira")

// Session stores the currently connected analyzer and lightweight shared
// state for the MCP session.
type Session struct {
	mu       sync.RWMutex
	analyzer *analyzer.Analyzer
	siteURL  string
	lastJQL  string
}

// New creates an empty, disconnected Session.
func New() *Session {
	return &Session{}
}

// Connect installs the analyzer for a newly established connection, replacing
// any previous one.
func (s *Session) Connect(a *analyzer.Analyzer, siteURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzer = a
	s.siteURL = siteURL
}

// Analyzer returns the connected analyzer or ErrNotConnected.
func (s *Session) Analyzer() (*analyzer.Analyzer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analyzer == nil {
		return nil, ErrNotConnected
	}
	return s.analyzer, nil
}

// Connected reports whether a connection has been established.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzer != nil
}

// SiteURL returns the site URL of the current connection, if any.
func (s *Session) SiteURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.siteURL
}

// SetLastJQL stores the last executed JQL query string.
func (s *Session) SetLastJQL(jql string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastJQL = jql
}

// LastJQL retrieves the previous JQL query.
func (s *Session) LastJQL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastJQL
}
