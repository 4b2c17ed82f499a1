package docs

import (
	"strings"

	"github.com/gorewood/aidocs/internal/config"
)

// InstructionsSkeleton returns the starter content for a new instructions
// file. It contains an empty update section in the layout
// RewriteInstructions produces.
func InstructionsSkeleton(cfg *config.Config, date string) string {
	var b strings.Builder
	b.WriteString("# " + cfg.ProjectName + " - AI Instructions\n\n")
	b.WriteString("Project type: " + cfg.ProjectType + "\n\n")
	b.WriteString(instructionsBlock(cfg, Update{}, date))
	b.WriteString("\n## AI Agent Instructions\n\n")
	b.WriteString("After each modification, record it with:\n\n")
	b.WriteString("```\naidocs update --change \"what changed\" --status \"current state\" --next \"what comes next\"\n```\n")
	return b.String()
}

// ChangelogSkeleton returns the starter content for a new changelog.
func ChangelogSkeleton(cfg *config.Config, date string) string {
	var b strings.Builder
	b.WriteString("# " + cfg.ProjectName + " Changelog\n\n")
	b.WriteString("### Last Updated: " + date + "\n\n")
	b.WriteString(changelogChangesHeader + "\n- Project initialized\n\n")
	b.WriteString(changelogStatusHeader + "\n- Setup complete\n\n")
	b.WriteString(changelogNextHeader + "\n- [No planned improvements documented]\n")
	return b.String()
}
