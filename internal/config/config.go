package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/gorewood/aidocs/internal/backup"
	"github.com/gorewood/aidocs/internal/fsutil"
)

// FileName is the project configuration file, relative to the project root.
const FileName = ".ai-agent-config.json"

// EnvPrefix prefixes environment overrides, e.g. AIDOCS_AUTOBACKUP=true.
const EnvPrefix = "AIDOCS"

// ProjectTypes lists the accepted values for projectType.
var ProjectTypes = []string{"web-app", "api", "mobile-app", "desktop-app", "library", "other"}

// Config is the per-project configuration.
type Config struct {
	ProjectName         string   `json:"projectName"         yaml:"projectName"         mapstructure:"projectName"`
	ProjectType         string   `json:"projectType"         yaml:"projectType"         mapstructure:"projectType"`
	AIInstructionsFile  string   `json:"aiInstructionsFile"  yaml:"aiInstructionsFile"  mapstructure:"aiInstructionsFile"`
	ChangelogFile       string   `json:"changelogFile"       yaml:"changelogFile"       mapstructure:"changelogFile"`
	UpdateSection       string   `json:"updateSection"       yaml:"updateSection"       mapstructure:"updateSection"`
	StatusSection       string   `json:"statusSection"       yaml:"statusSection"       mapstructure:"statusSection"`
	ChangesSection      string   `json:"changesSection"      yaml:"changesSection"      mapstructure:"changesSection"`
	NextSection         string   `json:"nextSection"         yaml:"nextSection"         mapstructure:"nextSection"`
	DateFormat          string   `json:"dateFormat"          yaml:"dateFormat"          mapstructure:"dateFormat"`
	AutoUpdateChangelog bool     `json:"autoUpdateChangelog" yaml:"autoUpdateChangelog" mapstructure:"autoUpdateChangelog"`
	AutoBackup          bool     `json:"autoBackup"          yaml:"autoBackup"          mapstructure:"autoBackup"`
	MaxBackups          int      `json:"maxBackups"          yaml:"maxBackups"          mapstructure:"maxBackups"`
	CustomSections      []string `json:"customSections"      yaml:"customSections"      mapstructure:"customSections"`
	InitializedAt       string   `json:"initializedAt,omitempty" yaml:"initializedAt,omitempty" mapstructure:"initializedAt"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ProjectName:         "My Project",
		ProjectType:         "web-app",
		AIInstructionsFile:  "AI_INSTRUCTIONS.md",
		ChangelogFile:       "CHANGELOG.md",
		UpdateSection:       "## Recent Changes & Updates",
		StatusSection:       "**Current Status:**",
		ChangesSection:      "**Recent Modifications:**",
		NextSection:         "**Next Planned Improvements:**",
		DateFormat:          "en-US",
		AutoUpdateChangelog: true,
		AutoBackup:          false,
		MaxBackups:          backup.DefaultMaxBackups,
		CustomSections:      []string{},
	}
}

// Path returns the configuration file path for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Exists reports whether the project at root has a configuration file.
func Exists(fsys afero.Fs, root string) bool {
	return fsutil.Exists(fsys, Path(root))
}

// newViper builds a private viper instance layered as defaults, then the
// config file, then AIDOCS_* environment variables when env is set.
func newViper(fsys afero.Fs, path string, env bool) *viper.Viper {
	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	def := Default()
	v.SetDefault("projectName", def.ProjectName)
	v.SetDefault("projectType", def.ProjectType)
	v.SetDefault("aiInstructionsFile", def.AIInstructionsFile)
	v.SetDefault("changelogFile", def.ChangelogFile)
	v.SetDefault("updateSection", def.UpdateSection)
	v.SetDefault("statusSection", def.StatusSection)
	v.SetDefault("changesSection", def.ChangesSection)
	v.SetDefault("nextSection", def.NextSection)
	v.SetDefault("dateFormat", def.DateFormat)
	v.SetDefault("autoUpdateChangelog", def.AutoUpdateChangelog)
	v.SetDefault("autoBackup", def.AutoBackup)
	v.SetDefault("maxBackups", def.MaxBackups)
	v.SetDefault("customSections", def.CustomSections)
	v.SetDefault("initializedAt", "")

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}
	return v
}

// Load reads the configuration of the project at root. A missing file
// yields the defaults. Environment overrides apply in both cases.
// A file that does not parse or does not validate is a *ConfigurationError.
func Load(fsys afero.Fs, root string) (*Config, error) {
	return load(fsys, root, true)
}

// LoadFile is Load without environment overrides. Use it before Save so
// overrides are not persisted.
func LoadFile(fsys afero.Fs, root string) (*Config, error) {
	return load(fsys, root, false)
}

func load(fsys afero.Fs, root string, env bool) (*Config, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	path := Path(root)
	v := newViper(fsys, path, env)

	if fsutil.Exists(fsys, path) {
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigurationError{Path: path, Err: err}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	if cfg.CustomSections == nil {
		cfg.CustomSections = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return cfg, nil
}

// Save validates cfg and writes it to the project at root as indented JSON.
func Save(fsys afero.Fs, root string, cfg *Config) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	path := Path(root)
	if err := cfg.Validate(); err != nil {
		return &ConfigurationError{Path: path, Err: err}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	if err := fsutil.WriteAtomic(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Initialize writes a fresh configuration with the given name and type.
// Empty arguments keep the defaults.
func Initialize(fsys afero.Fs, root, name, projectType string, now time.Time) (*Config, error) {
	cfg := Default()
	if name != "" {
		cfg.ProjectName = name
	}
	if projectType != "" {
		cfg.ProjectType = projectType
	}
	cfg.InitializedAt = now.UTC().Format(time.RFC3339)

	if err := Save(fsys, root, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Keys returns the settable configuration keys in file order.
func Keys() []string {
	return []string{
		"projectName", "projectType", "aiInstructionsFile", "changelogFile",
		"updateSection", "statusSection", "changesSection", "nextSection",
		"dateFormat", "autoUpdateChangelog", "autoBackup", "maxBackups",
		"customSections",
	}
}

// Set updates one field by its JSON key. Booleans and integers are parsed
// from value; customSections takes a comma-separated list. Set does not
// validate the resulting config; Save does.
func (c *Config) Set(key, value string) error {
	switch key {
	case "projectName":
		c.ProjectName = value
	case "projectType":
		c.ProjectType = value
	case "aiInstructionsFile":
		c.AIInstructionsFile = value
	case "changelogFile":
		c.ChangelogFile = value
	case "updateSection":
		c.UpdateSection = value
	case "statusSection":
		c.StatusSection = value
	case "changesSection":
		c.ChangesSection = value
	case "nextSection":
		c.NextSection = value
	case "dateFormat":
		c.DateFormat = value
	case "autoUpdateChangelog", "autoBackup":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Fields: []FieldError{{Field: key, Message: key + " must be a boolean"}}}
		}
		if key == "autoBackup" {
			c.AutoBackup = b
		} else {
			c.AutoUpdateChangelog = b
		}
	case "maxBackups":
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Fields: []FieldError{{Field: key, Message: "maxBackups must be an integer"}}}
		}
		c.MaxBackups = n
	case "customSections":
		c.CustomSections = splitList(value)
	default:
		return &ValidationError{Fields: []FieldError{{
			Field:   key,
			Message: fmt.Sprintf("unknown key %q (valid keys: %s)", key, strings.Join(Keys(), ", ")),
		}}}
	}
	return nil
}

func splitList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// InstructionsPath returns the absolute path of the instructions file.
func (c *Config) InstructionsPath(root string) string {
	return filepath.Join(root, c.AIInstructionsFile)
}

// ChangelogPath returns the absolute path of the changelog file.
func (c *Config) ChangelogPath(root string) string {
	return filepath.Join(root, c.ChangelogFile)
}

// Project converts the configuration into the description the backup
// store works from.
func (c *Config) Project() backup.Project {
	return backup.Project{
		Name: c.ProjectName,
		Type: c.ProjectType,
		Files: map[backup.Role]string{
			backup.RoleInstructions: c.AIInstructionsFile,
			backup.RoleChangelog:    c.ChangelogFile,
			backup.RoleConfig:       FileName,
		},
		AutoBackup: c.AutoBackup,
		MaxBackups: c.MaxBackups,
	}
}

// ValidProjectType reports whether t is an accepted project type.
func ValidProjectType(t string) bool {
	return slices.Contains(ProjectTypes, t)
}
