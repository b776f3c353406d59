package atlassian

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// Error is a Jira REST error payload decoded from a non-2xx response. Jira
// reports general failures through errorMessages, field-level problems
// through the errors map, and some endpoints use a bare message instead.
type Error struct {
	StatusCode    int               `json:"-"`
	Message       string            `json:"message"`
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	detail := e.detail()
	if detail == "" {
		detail = strings.ToLower(http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("atlassian: %d %s", e.StatusCode, detail)
}

// detail flattens whichever of the three payload shapes is populated into a
// single line, field errors sorted by field name.
func (e *Error) detail() string {
	if len(e.ErrorMessages) > 0 {
		return strings.Join(e.ErrorMessages, "; ")
	}
	if e.Message != "" {
		return e.Message
	}

	fields := make([]string, 0, len(e.Errors))
	for field, msg := range e.Errors {
		fields = append(fields, field+": "+msg)
	}
	sort.Strings(fields)
	return strings.Join(fields, "; ")
}

func (e *Error) isEmpty() bool {
	return e.Message == "" && len(e.ErrorMessages) == 0 && len(e.Errors) == 0
}

// parseError converts a non-2xx response into an *Error. Bodies that are not
// the structured REST shape are kept verbatim as the message.
func parseError(res *http.Response) error {
	restErr := &Error{StatusCode: res.StatusCode}

	data, err := io.ReadAll(res.Body)
	if err != nil || len(data) == 0 {
		return restErr
	}

	if json.Unmarshal(data, restErr) != nil || restErr.isEmpty() {
		restErr.ErrorMessages = nil
		restErr.Errors = nil
		restErr.Message = strings.TrimSpace(string(data))
	}
	return restErr
}
