// Package paths provides centralized path handling for stamp.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvTemplatesRoot is the primary environment variable for the template catalog location
	EnvTemplatesRoot = "STAMP_TEMPLATES_ROOT"

	// EnvConfigDir overrides the XDG config directory for stamp
	EnvConfigDir = "STAMP_CONFIG_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for stamp-specific files
	AppDirName = "stamp"

	// TemplatesDirName is the default catalog directory name under XDG data
	TemplatesDirName = "templates"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// TemplateMetaFile is the per-template metadata file a catalog entry must carry
	TemplateMetaFile = "template.toml"

	// TemplateSchemaFile is the optional per-template variable schema
	TemplateSchemaFile = "schema.yaml"
)

// TemplatesRoot returns the directory the catalog scans for template
// definitions: STAMP_TEMPLATES_ROOT if set, otherwise the stamp templates
// directory under the XDG data home.
func TemplatesRoot() string {
	if root := os.Getenv(EnvTemplatesRoot); root != "" {
		return root
	}
	return filepath.Join(xdg.DataHome, AppDirName, TemplatesDirName)
}

// ConfigDir returns the directory holding the user configuration file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the full path of the user configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}
