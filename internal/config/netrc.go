package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// NetrcEntry represents credentials for a single machine in .netrc.
type NetrcEntry struct {
	Machine  string
	Login    string
	Password string
	Account  string
}

// parseNetrc reads and parses a .netrc file into a machine -> entry map.
// A missing file is not an error.
func parseNetrc(path string) (map[string]NetrcEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("netrc: open: %w", err)
	}
	defer file.Close()

	entries := make(map[string]NetrcEntry)
	var current NetrcEntry
	var hasMachine bool

	save := func() {
		if hasMachine && current.Machine != "" {
			entries[current.Machine] = current
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		for i := 0; i < len(tokens); i++ {
			switch tokens[i] {
			case "machine":
				save()
				if i+1 < len(tokens) {
					current = NetrcEntry{Machine: tokens[i+1]}
					hasMachine = true
					i++
				}
			case "default":
				save()
				current = NetrcEntry{Machine: "default"}
				hasMachine = true
			case "login":
				if i+1 < len(tokens) {
					current.Login = tokens[i+1]
					i++
				}
			case "password":
				if i+1 < len(tokens) {
					current.Password = tokens[i+1]
					i++
				}
			case "account":
				if i+1 < len(tokens) {
					current.Account = tokens[i+1]
					i++
				}
			}
		}
	}

	save()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netrc: scan: %w", err)
	}

	return entries, nil
}

// findNetrcPath locates the .netrc file, honouring the NETRC environment
// variable before falling back to ~/.netrc.
func findNetrcPath() string {
	if netrcPath := os.Getenv("NETRC"); netrcPath != "" {
		return netrcPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// loadNetrcCredentials attempts to load credentials from .netrc for a given site.
// Returns login and password if found, empty strings otherwise.
func loadNetrcCredentials(site string) (login, password string, err error) {
	netrcPath := findNetrcPath()
	if netrcPath == "" {
		return "", "", nil
	}

	entries, err := parseNetrc(netrcPath)
	if err != nil {
		return "", "", err
	}

	if len(entries) == 0 {
		return "", "", nil
	}

	hostname := site
	if parsed, err := url.Parse(site); err == nil && parsed.Host != "" {
		hostname = parsed.Host
	}

	if entry, ok := entries[hostname]; ok {
		return entry.Login, entry.Password, nil
	}

	// Retry without a port suffix.
	if host := strings.Split(hostname, ":")[0]; host != hostname {
		if entry, ok := entries[host]; ok {
			return entry.Login, entry.Password, nil
		}
	}

	if entry, ok := entries["default"]; ok {
		return entry.Login, entry.Password, nil
	}

	return "", "", nil
}

// applyNetrcDefaults fills in missing Jira credentials from .netrc if available.
func (c *Config) applyNetrcDefaults() error {
	if c.Jira.Site == "" || c.Jira.Email != "" || c.Jira.APIToken != "" || c.Jira.OAuthToken != "" {
		return nil
	}

	login, password, err := loadNetrcCredentials(c.Jira.Site)
	if err != nil {
		return fmt.Errorf("config: load jira netrc: %w", err)
	}

	if login != "" && password != "" {
		c.Jira.Email = login
		c.Jira.APIToken = password
	}

	return nil
}
