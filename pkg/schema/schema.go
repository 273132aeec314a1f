// Package schema describes the variables a template declares: their names,
// declared types, whether they are required, and any value-validation rules
// a wizard or caller wants enforced before rendering.
package schema

import (
	"fmt"
	"regexp"
)

// VariableType is the declared type of a template variable.
type VariableType string

const (
	TypeString      VariableType = "string"
	TypeBoolean     VariableType = "boolean"
	TypeArray       VariableType = "array"
	TypeObject      VariableType = "object"
	TypeSelect      VariableType = "select"
	TypeMultiSelect VariableType = "multiselect"
)

// Known reports whether t is one of the declared variable types.
func (t VariableType) Known() bool {
	switch t {
	case TypeString, TypeBoolean, TypeArray, TypeObject, TypeSelect, TypeMultiSelect:
		return true
	}
	return false
}

// Rule is a single value-validation entry attached to a descriptor. Rules
// are evaluated by Validate, not by the substitution engine.
type Rule struct {
	Type      string `yaml:"type" toml:"type"` // "pattern", "length" or "custom"
	Pattern   string `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	MinLength int    `yaml:"min_length,omitempty" toml:"min_length,omitempty"`
	MaxLength int    `yaml:"max_length,omitempty" toml:"max_length,omitempty"`
	Validator string `yaml:"validator,omitempty" toml:"validator,omitempty"`
	Message   string `yaml:"message,omitempty" toml:"message,omitempty"`
}

// Descriptor declares a single template variable.
type Descriptor struct {
	Name       string       `yaml:"name" toml:"name"`
	Type       VariableType `yaml:"type" toml:"type"`
	Required   bool         `yaml:"required" toml:"required"`
	Default    string       `yaml:"default,omitempty" toml:"default,omitempty"`
	Options    []string     `yaml:"options,omitempty" toml:"options,omitempty"` // for select/multiselect
	Validation []Rule       `yaml:"validation,omitempty" toml:"validation,omitempty"`
}

// Schema is the ordered list of descriptors a template declares.
type Schema []Descriptor

// CustomValidator is a named predicate a caller registers for "custom" rules.
type CustomValidator func(value string) bool

// Validate checks a string value against every rule of the descriptor and
// returns one message per failed rule. Unknown rule types and custom rules
// without a registered validator are skipped.
func Validate(desc Descriptor, value string, validators map[string]CustomValidator) []string {
	var failures []string

	for _, rule := range desc.Validation {
		switch rule.Type {
		case "pattern":
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				failures = append(failures, fmt.Sprintf("variable '%s': invalid pattern %q", desc.Name, rule.Pattern))
				continue
			}
			if !re.MatchString(value) {
				failures = append(failures, ruleMessage(rule, fmt.Sprintf("variable '%s' does not match pattern %q", desc.Name, rule.Pattern)))
			}
		case "length":
			if rule.MinLength > 0 && len(value) < rule.MinLength {
				failures = append(failures, ruleMessage(rule, fmt.Sprintf("variable '%s' is shorter than %d characters", desc.Name, rule.MinLength)))
			}
			if rule.MaxLength > 0 && len(value) > rule.MaxLength {
				failures = append(failures, ruleMessage(rule, fmt.Sprintf("variable '%s' is longer than %d characters", desc.Name, rule.MaxLength)))
			}
		case "custom":
			validator, ok := validators[rule.Validator]
			if !ok {
				continue
			}
			if !validator(value) {
				failures = append(failures, ruleMessage(rule, fmt.Sprintf("variable '%s' failed validator %q", desc.Name, rule.Validator)))
			}
		}
	}

	return failures
}

func ruleMessage(rule Rule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}
