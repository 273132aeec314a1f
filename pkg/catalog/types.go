// Package catalog discovers, registers and indexes template definitions on
// disk, and exposes the rendering entry points the command layer calls:
// Substitute, Evaluate and GetOrCreateCompiled.
package catalog

import (
	"github.com/stamp-dev/stamp/pkg/schema"
)

// Template is one catalog entry: an immutable template body plus the
// metadata its template.toml declares.
type Template struct {
	// Name identifies the template in the registry.
	Name string `toml:"name"`

	Description string `toml:"description"`
	Version     string `toml:"version"`

	// Path is the template's directory on disk. Empty for templates
	// registered programmatically.
	Path string `toml:"-"`

	// Body is the full template text.
	Body string `toml:"-"`

	// Hash identifies the body for compilation caching.
	Hash string `toml:"-"`

	// Variables is the declared schema, from template.toml and, when
	// present, schema.yaml.
	Variables schema.Schema `toml:"variables"`
}

// metaFile is the on-disk shape of template.toml.
type metaFile struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Version     string        `toml:"version"`
	Body        string        `toml:"body"`
	Variables   schema.Schema `toml:"variables"`
}
