package config

import (
	"strings"
)

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Validate checks every field and returns a *ValidationError listing all
// problems, or nil.
func (c *Config) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	required := []struct {
		field string
		value string
	}{
		{"projectName", c.ProjectName},
		{"projectType", c.ProjectType},
		{"aiInstructionsFile", c.AIInstructionsFile},
		{"changelogFile", c.ChangelogFile},
		{"updateSection", c.UpdateSection},
		{"statusSection", c.StatusSection},
		{"changesSection", c.ChangesSection},
		{"nextSection", c.NextSection},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			add(r.field, "missing required field: "+r.field)
		}
	}

	if c.ProjectType != "" && !ValidProjectType(c.ProjectType) {
		add("projectType", "invalid project type, must be one of: "+strings.Join(ProjectTypes, ", "))
	}
	if c.AIInstructionsFile != "" && !validFileName(c.AIInstructionsFile) {
		add("aiInstructionsFile", "invalid AI instructions file name")
	}
	if c.ChangelogFile != "" && !validFileName(c.ChangelogFile) {
		add("changelogFile", "invalid changelog file name")
	}
	if c.MaxBackups < 0 {
		add("maxBackups", "maxBackups must not be negative")
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// validFileName rejects characters that are invalid on common filesystems
// and Windows device names. Forward slashes are allowed so files can live
// in subdirectories.
func validFileName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(`<>:"|?*`, r) {
			return false
		}
	}
	base := strings.ToUpper(strings.SplitN(name, ".", 2)[0])
	return !reservedNames[base]
}
