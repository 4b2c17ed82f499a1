package docs

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout of dates written into documentation files.
const DateLayout = "January 2, 2006"

// FormatDate renders t the way documentation files show dates.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Update is one documentation update.
type Update struct {
	Changes []string `json:"changes"`
	Status  string   `json:"status"`
	Next    []string `json:"next"`
}

// ValidationError reports an unusable update.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate rejects blank list items.
func (u Update) Validate() error {
	for i, c := range u.Changes {
		if strings.TrimSpace(c) == "" {
			return &ValidationError{Field: "changes", Message: fmt.Sprintf("item %d is empty", i+1)}
		}
	}
	for i, n := range u.Next {
		if strings.TrimSpace(n) == "" {
			return &ValidationError{Field: "next", Message: fmt.Sprintf("item %d is empty", i+1)}
		}
	}
	return nil
}

// Normalize trims surrounding whitespace from every field.
func (u Update) Normalize() Update {
	out := Update{Status: strings.TrimSpace(u.Status)}
	for _, c := range u.Changes {
		out.Changes = append(out.Changes, strings.TrimSpace(c))
	}
	for _, n := range u.Next {
		out.Next = append(out.Next, strings.TrimSpace(n))
	}
	return out
}

func bulletList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
