package docs

import (
	"regexp"
	"strings"

	"github.com/gorewood/aidocs/internal/config"
)

// Headers that end the update section in the instructions file.
var sectionTerminators = []string{"## AI Agent Instructions", "## Contact"}

// Fixed changelog anchors.
const (
	changelogChangesHeader = "**Recent Modifications:**"
	changelogStatusHeader  = "**Current Status:**"
	changelogNextHeader    = "**Next Planned Improvements:**"
)

var (
	lastUpdatedRe      = regexp.MustCompile(`### Last Updated: .*`)
	changelogChangesRe = listBlockRe(changelogChangesHeader)
	changelogStatusRe  = regexp.MustCompile(regexp.QuoteMeta(changelogStatusHeader) + `\s*\n- .*`)
	changelogNextRe    = listBlockRe(changelogNextHeader)
)

// ChangelogAnchors returns the markers RewriteChangelog looks for. A
// changelog missing any of them is only partially updated.
func ChangelogAnchors() []string {
	return []string{"### Last Updated:", changelogChangesHeader, changelogStatusHeader, changelogNextHeader}
}

// listBlockRe matches a header followed by a run of "- item" lines.
func listBlockRe(header string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(header) + `\s*\n(?:- .+\n?)*`)
}

// RewriteInstructions replaces the update section of an instructions file.
// The section runs from cfg.UpdateSection to the next "## AI Agent
// Instructions" or "## Contact" header, or to the end of the content.
// If the section header is absent or blank the content is returned
// unchanged and found is false.
func RewriteInstructions(content string, cfg *config.Config, update Update, date string) (string, bool) {
	if strings.TrimSpace(cfg.UpdateSection) == "" {
		return content, false
	}
	start := strings.Index(content, cfg.UpdateSection)
	if start < 0 {
		return content, false
	}

	bodyStart := start + len(cfg.UpdateSection)
	end := len(content)
	for _, term := range sectionTerminators {
		if i := strings.Index(content[bodyStart:], term); i >= 0 && bodyStart+i < end {
			end = bodyStart + i
		}
	}

	block := instructionsBlock(cfg, update, date)
	if end < len(content) {
		block += "\n"
	}
	return content[:start] + block + content[end:], true
}

func instructionsBlock(cfg *config.Config, update Update, date string) string {
	status := update.Status
	if status == "" {
		status = "Project status not updated"
	}

	var b strings.Builder
	b.WriteString(cfg.UpdateSection + "\n\n")
	b.WriteString("*This section should be updated after each modification to track project evolution*\n\n")
	b.WriteString("### Last Updated: " + date + "\n\n")
	b.WriteString(cfg.ChangesSection + "\n")
	b.WriteString(bulletList(update.Changes, "- [No recent changes documented]") + "\n\n")
	b.WriteString(cfg.StatusSection + "\n")
	b.WriteString("- " + status + "\n\n")
	b.WriteString(cfg.NextSection + "\n")
	b.WriteString(bulletList(update.Next, "- [No planned improvements documented]") + "\n")
	return b.String()
}

// RewriteChangelog applies targeted edits to a changelog: the "Last
// Updated" line always, and each labelled list only when the update
// supplies a value for it. It reports whether anything changed.
func RewriteChangelog(content string, update Update, date string) (string, bool) {
	out := replaceFirst(lastUpdatedRe, content, "### Last Updated: "+date)

	if len(update.Changes) > 0 {
		out = replaceFirst(changelogChangesRe, out, changelogChangesHeader+"\n"+bulletList(update.Changes, ""))
	}
	if update.Status != "" {
		out = replaceFirst(changelogStatusRe, out, changelogStatusHeader+"\n- "+update.Status)
	}
	if len(update.Next) > 0 {
		out = replaceFirst(changelogNextRe, out, changelogNextHeader+"\n"+bulletList(update.Next, ""))
	}

	return out, out != content
}

// replaceFirst replaces the first match of re with repl. A trailing newline
// consumed by the match is kept so the following line stays separate.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	if strings.HasSuffix(s[loc[0]:loc[1]], "\n") && !strings.HasSuffix(repl, "\n") {
		repl += "\n"
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
