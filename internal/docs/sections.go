package docs

import (
	"regexp"
	"strings"

	"github.com/gorewood/aidocs/internal/config"
)

// Sections are the values currently recorded in an instructions file.
type Sections struct {
	Changes     []string `json:"changes"`
	Status      string   `json:"status"`
	Next        []string `json:"next"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

var lastUpdatedValueRe = regexp.MustCompile(`### Last Updated: (.*)`)

// ReadSections extracts the changes, status, and next lists under the
// section labels configured in cfg. Placeholder items written for empty
// lists are not reported.
func ReadSections(content string, cfg *config.Config) Sections {
	s := Sections{
		Changes: readList(content, cfg.ChangesSection),
		Next:    readList(content, cfg.NextSection),
	}

	if strings.TrimSpace(cfg.StatusSection) != "" {
		statusRe := regexp.MustCompile(regexp.QuoteMeta(cfg.StatusSection) + `\s*\n- (.+)`)
		if m := statusRe.FindStringSubmatch(content); m != nil {
			s.Status = strings.TrimSpace(m[1])
		}
	}
	if m := lastUpdatedValueRe.FindStringSubmatch(content); m != nil {
		s.LastUpdated = strings.TrimSpace(m[1])
	}
	return s
}

func readList(content, header string) []string {
	items := []string{}
	if strings.TrimSpace(header) == "" {
		return items
	}
	re := regexp.MustCompile(regexp.QuoteMeta(header) + `\s*\n((?:- .+\n?)*)`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return items
	}
	for _, line := range strings.Split(m[1], "\n") {
		item, ok := strings.CutPrefix(strings.TrimSpace(line), "- ")
		if !ok {
			continue
		}
		item = strings.TrimSpace(item)
		if item == "" || isPlaceholder(item) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func isPlaceholder(item string) bool {
	return strings.HasPrefix(item, "[No ") && strings.HasSuffix(item, "]")
}
