package catalog

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/stamp-dev/stamp/pkg/errors"
	"github.com/stamp-dev/stamp/pkg/logging"
	"github.com/stamp-dev/stamp/pkg/paths"
	"github.com/stamp-dev/stamp/pkg/schema"
	"github.com/stamp-dev/stamp/pkg/template/compile"
)

// defaultBodyFile is used when template.toml names no body file.
const defaultBodyFile = "template.tmpl"

// Discover scans rootDir for template definitions. A template is a
// directory containing a template.toml, the body file it names, and an
// optional schema.yaml augmenting the variable declarations. Directories
// are read sequentially; a broken template is logged and skipped so one
// bad entry cannot take the catalog down.
func Discover(rootDir string) ([]*Template, error) {
	logger := logging.GetLogger("catalog.discovery")
	defer logging.LogDuration(time.Now(), "catalog discovery")

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDiscovery, "cannot scan template root %q", rootDir)
	}

	var templates []*Template
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(rootDir, entry.Name())
		t, err := loadTemplate(dir)
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrNotFound) {
				// Not a template directory; skip silently.
				continue
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("skipping broken template")
			continue
		}

		templates = append(templates, t)
		logger.Debug().Str("template", t.Name).Str("dir", dir).Msg("discovered template")
	}

	logger.Info().Int("count", len(templates)).Str("root", rootDir).Msg("discovery complete")
	return templates, nil
}

// loadTemplate reads one template directory.
func loadTemplate(dir string) (*Template, error) {
	metaPath := filepath.Join(dir, paths.TemplateMetaFile)
	metaData, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrNotFound, "no %s in %q", paths.TemplateMetaFile, dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %q", metaPath)
	}

	var meta metaFile
	if err := toml.Unmarshal(metaData, &meta); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "cannot parse %q", metaPath)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(dir)
	}

	bodyFile := meta.Body
	if bodyFile == "" {
		bodyFile = defaultBodyFile
	}
	bodyPath := filepath.Join(dir, bodyFile)
	body, err := os.ReadFile(bodyPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read template body %q", bodyPath)
	}

	variables := meta.Variables
	if extra, err := loadSchemaFile(dir); err != nil {
		return nil, err
	} else if extra != nil {
		variables = mergeSchemas(variables, extra)
	}

	return &Template{
		Name:        meta.Name,
		Description: meta.Description,
		Version:     meta.Version,
		Path:        dir,
		Body:        string(body),
		Hash:        compile.HashTemplate(string(body)),
		Variables:   variables,
	}, nil
}

// loadSchemaFile reads the optional schema.yaml. Absence is not an error.
func loadSchemaFile(dir string) (schema.Schema, error) {
	schemaPath := filepath.Join(dir, paths.TemplateSchemaFile)
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %q", schemaPath)
	}
	return schema.ParseYAML(data)
}

// mergeSchemas overlays schema.yaml descriptors onto template.toml ones;
// a descriptor from schema.yaml replaces a same-named toml descriptor.
func mergeSchemas(base, overlay schema.Schema) schema.Schema {
	byName := make(map[string]int, len(base))
	merged := make(schema.Schema, len(base))
	copy(merged, base)
	for i, desc := range merged {
		byName[desc.Name] = i
	}

	for _, desc := range overlay {
		if i, ok := byName[desc.Name]; ok {
			merged[i] = desc
			continue
		}
		merged = append(merged, desc)
	}
	return merged
}
