package schema

import (
	"gopkg.in/yaml.v3"

	"github.com/stamp-dev/stamp/pkg/errors"
)

// schemaFile is the on-disk shape of a schema.yaml.
type schemaFile struct {
	Variables []Descriptor `yaml:"variables"`
}

// ParseYAML decodes a schema.yaml document into a Schema. Descriptors with
// an unknown declared type are rejected so typos fail at load time rather
// than silently never matching.
func ParseYAML(data []byte) (Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrSchemaInvalid, "cannot parse variable schema")
	}

	for _, desc := range file.Variables {
		if desc.Name == "" {
			return nil, errors.New(errors.ErrSchemaInvalid, "schema variable without a name")
		}
		if desc.Type != "" && !desc.Type.Known() {
			return nil, errors.Newf(errors.ErrSchemaInvalid, "variable '%s' has unknown type '%s'", desc.Name, desc.Type)
		}
	}

	return file.Variables, nil
}
