package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnauthenticated is returned when a credentialed call fails with
// 401 and, for the identity lookup, the one-shot refresh and retry
// also failed. Callers treat it as "no user", never as a fault.
var ErrUnauthenticated = errors.New("not authenticated")

// ValidationError carries the per-field messages a 4xx response body
// contains, e.g. {"username": ["A user with that username already exists."]}.
type ValidationError struct {
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation failed (HTTP %d)", e.StatusCode)
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	var parts []string
	for _, name := range names {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], "; "))
	}
	return strings.Join(parts, ", ")
}

// FieldError returns the first message for a field, or "".
func (e *ValidationError) FieldError(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// StatusError is any other non-2xx response (unexpected server
// failures, unparseable 4xx bodies).
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP %d: %s", e.StatusCode, e.Body)
}
