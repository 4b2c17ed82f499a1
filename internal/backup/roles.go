package backup

// Role identifies one tracked file independently of its configured path.
type Role string

// Tracked-file roles.
const (
	RoleInstructions Role = "instructions"
	RoleChangelog    Role = "changelog"
	RoleConfig       Role = "config"
)

// MetadataFile is the name of the per-snapshot metadata file.
const MetadataFile = "backup-info.json"

// DefaultDirName is the backup root directory name inside a project.
const DefaultDirName = ".ai-agent-backups"

// trackedFile pairs a role with the name its copy is stored under.
type trackedFile struct {
	role       Role
	storedName string
}

// trackedFiles is the canonical role table. Create and Restore both walk it,
// in this order.
var trackedFiles = []trackedFile{
	{role: RoleInstructions, storedName: "AI_INSTRUCTIONS.md"},
	{role: RoleChangelog, storedName: "CHANGELOG.md"},
	{role: RoleConfig, storedName: "config.json"},
}

// Roles returns all tracked roles in canonical order.
func Roles() []Role {
	roles := make([]Role, 0, len(trackedFiles))
	for _, tf := range trackedFiles {
		roles = append(roles, tf.role)
	}
	return roles
}

// StoredName returns the canonical stored file name for a role,
// or empty string for an unknown role.
func StoredName(role Role) string {
	for _, tf := range trackedFiles {
		if tf.role == role {
			return tf.storedName
		}
	}
	return ""
}

// Project describes what to back up. Paths in Files are relative to the
// project root; a role with an empty path is not tracked.
type Project struct {
	Name       string
	Type       string
	Files      map[Role]string
	AutoBackup bool
	MaxBackups int
}

// Path returns the configured relative path for a role.
func (p Project) Path(role Role) string {
	if p.Files == nil {
		return ""
	}
	return p.Files[role]
}
