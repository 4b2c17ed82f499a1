// Package config handles the per-project aidocs configuration file and the
// global configuration directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// dirName is the directory aidocs uses under the platform config root.
	dirName = "aidocs"
	// configHomeEnv points aidocs at an explicit global config directory.
	configHomeEnv = EnvPrefix + "_CONFIG_HOME"
	// envFileName is the dotenv file loaded from the global directory.
	envFileName = "env"
)

// Dir returns the global aidocs directory, which holds the fallback env
// file. The first of these that applies wins:
//   - $AIDOCS_CONFIG_HOME
//   - $XDG_CONFIG_HOME/aidocs
//   - %AppData%/aidocs on Windows
//   - ~/.config/aidocs
//
// It returns "" when none applies and the home directory is unknown.
func Dir() string {
	if dir := os.Getenv(configHomeEnv); dir != "" {
		return dir
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" && runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, dirName)
}

// EnvFile returns the path of the global env file loaded at startup, or ""
// when Dir cannot be resolved.
func EnvFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, envFileName)
}
