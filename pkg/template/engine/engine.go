// Package engine implements variable substitution over template bodies:
// placeholder extraction, dot-path resolution, type-aware formatting, and
// the validation report that accompanies every render.
package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/stamp-dev/stamp/pkg/errors"
	"github.com/stamp-dev/stamp/pkg/logging"
	"github.com/stamp-dev/stamp/pkg/schema"
	"github.com/stamp-dev/stamp/pkg/template"
)

var (
	// tokenPattern matches every {{...}} token, placeholders and block
	// directives alike. Directive tokens are filtered out downstream.
	tokenPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

	// namePattern is the identifier-dot-identifier shape a placeholder
	// name must have.
	namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)
)

// FormatterFunc overrides the default formatting for a named variable.
type FormatterFunc func(value interface{}) string

// Options configure an Engine beyond the default substitution behavior.
type Options struct {
	// MissingDefault replaces missing values instead of the empty string.
	MissingDefault string

	// Formatters override default resolution for specific variable names.
	Formatters map[string]FormatterFunc

	// Strict makes Substitute fail on the first missing variable instead
	// of recording a warning.
	Strict bool

	// SuppressWarnings drops warnings from the returned validation.
	SuppressWarnings bool
}

// Engine performs variable substitution. The zero value is usable and
// behaves like the package-level Substitute function.
type Engine struct {
	opts Options
}

// New returns an Engine configured with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Lenient returns an engine with the same options but strict mode disabled.
// Compiled rendering uses it: missing values are accounted for by the
// validation pass over the full body, not by aborting a branch render.
func (e *Engine) Lenient() *Engine {
	opts := e.opts
	opts.Strict = false
	return &Engine{opts: opts}
}

// Substitute renders the template body against the context using default
// options. It never fails; all problems are reported in the validation.
func Substitute(body string, ctx template.Context, s schema.Schema) template.SubstitutionResult {
	result, _ := (&Engine{}).Substitute(body, ctx, s)
	return result
}

// ExtractVariables returns the unique set of placeholder names appearing in
// the body. Block directive tokens ({{#if ...}}, {{/each}}, {{else}}) are
// not variables and are skipped. Order is unspecified but deterministic.
func ExtractVariables(body string) []string {
	seen := make(map[string]struct{})
	for _, match := range tokenPattern.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(match[1])
		if isDirectiveToken(name) {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Substitute renders the template body against the context. The schema is
// optional; when supplied, required-but-unused and type-mismatch warnings
// are added to the validation. The returned error is non-nil only in strict
// mode, on the first missing variable.
func (e *Engine) Substitute(body string, ctx template.Context, s schema.Schema) (template.SubstitutionResult, error) {
	logger := logging.GetLogger("template.engine")

	validation := template.NewValidationResult()
	validation.Merge(ValidateTemplateSyntax(body))

	used := ExtractVariables(body)
	for _, name := range used {
		e.validateName(name, &validation)
	}

	// Placeholders inside {{#each}} blocks resolve against the per-element
	// scope the block renderer builds, so the flat pass leaves them alone:
	// no replacement, no missing-value warning, no strict failure.
	loopSpans := eachSpans(body)

	var strictErr error
	var rendered strings.Builder
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(body, -1) {
		rendered.WriteString(body[last:loc[0]])
		last = loc[1]

		token := body[loc[0]:loc[1]]
		inner := strings.TrimSpace(body[loc[2]:loc[3]])

		if isDirectiveToken(inner) || strictErr != nil || insideSpan(loopSpans, loc[0]) {
			rendered.WriteString(token)
			continue
		}

		value, found := template.Lookup(ctx, inner)

		if formatter, ok := e.opts.Formatters[inner]; ok && found && value != nil {
			rendered.WriteString(formatter(value))
			continue
		}

		if !found || value == nil {
			if e.opts.Strict {
				strictErr = errors.Newf(errors.ErrVariableMissing, "variable '%s' has no value", inner)
				rendered.WriteString(token)
				continue
			}
			// One warning per occurrence, not per name.
			validation.AddWarning(fmt.Sprintf("%s not found / is empty", inner))
			rendered.WriteString(e.opts.MissingDefault)
			continue
		}

		rendered.WriteString(FormatValue(value))
	}
	rendered.WriteString(body[last:])

	if strictErr != nil {
		return template.SubstitutionResult{}, strictErr
	}

	e.checkSchema(used, ctx, s, &validation)

	if e.opts.SuppressWarnings {
		validation.Warnings = nil
	}

	logger.Debug().
		Int("variables", len(used)).
		Int("warnings", len(validation.Warnings)).
		Int("errors", len(validation.Errors)).
		Msg("substitution complete")

	return template.SubstitutionResult{
		RenderedText:  rendered.String(),
		UsedVariables: used,
		Validation:    validation,
	}, nil
}

var eachOpenPattern = regexp.MustCompile(`\{\{#each\b`)

// eachSpans returns the [start, end) byte ranges covered by {{#each}}
// blocks, nested blocks folded into their outermost span. An unterminated
// block extends to the end of the body; the syntax validator reports the
// imbalance separately.
func eachSpans(body string) [][2]int {
	opens := eachOpenPattern.FindAllStringIndex(body, -1)
	if len(opens) == 0 {
		return nil
	}

	const closeTag = "{{/each}}"
	var closes []int
	for offset := 0; ; {
		idx := strings.Index(body[offset:], closeTag)
		if idx < 0 {
			break
		}
		closes = append(closes, offset+idx)
		offset += idx + len(closeTag)
	}

	var spans [][2]int
	depth, start := 0, 0
	oi, ci := 0, 0
	for oi < len(opens) || ci < len(closes) {
		if ci >= len(closes) || (oi < len(opens) && opens[oi][0] < closes[ci]) {
			if depth == 0 {
				start = opens[oi][0]
			}
			depth++
			oi++
		} else {
			if depth > 0 {
				depth--
				if depth == 0 {
					spans = append(spans, [2]int{start, closes[ci] + len(closeTag)})
				}
			}
			ci++
		}
	}
	if depth > 0 {
		spans = append(spans, [2]int{start, len(body)})
	}
	return spans
}

func insideSpan(spans [][2]int, pos int) bool {
	for _, span := range spans {
		if pos >= span[0] && pos < span[1] {
			return true
		}
	}
	return false
}

// validateName records a syntax error for malformed names. A name ending in
// () only draws a warning and is still processed as a plain lookup.
func (e *Engine) validateName(name string, validation *template.ValidationResult) {
	if strings.HasSuffix(name, "()") {
		validation.AddWarning(fmt.Sprintf("variable '%s' looks like a function call", name))
		return
	}
	if !namePattern.MatchString(name) {
		validation.AddError(fmt.Sprintf("invalid variable name: '%s'", name))
	}
}

// checkSchema cross-references the used names against the declared schema.
// Both classes of schema finding are warnings; they never invalidate.
func (e *Engine) checkSchema(used []string, ctx template.Context, s schema.Schema, validation *template.ValidationResult) {
	if len(s) == 0 {
		return
	}

	usedSet := make(map[string]struct{}, len(used))
	for _, name := range used {
		usedSet[name] = struct{}{}
	}

	for _, desc := range s {
		if _, ok := usedSet[desc.Name]; !ok {
			if desc.Required {
				validation.AddWarning(fmt.Sprintf("required variable '%s' is never used in the template", desc.Name))
			}
			continue
		}

		value, found := template.Lookup(ctx, desc.Name)
		if !found || value == nil {
			continue
		}
		if actual, mismatch := typeMismatch(desc.Type, value); mismatch {
			validation.AddWarning(fmt.Sprintf("variable '%s' is declared %s but has a %s value", desc.Name, desc.Type, actual))
		}
	}
}

// typeMismatch compares a declared type against a runtime value. The
// select and multiselect declared types never mismatch.
func typeMismatch(declared schema.VariableType, value interface{}) (string, bool) {
	actual := runtimeTypeName(value)

	switch declared {
	case schema.TypeSelect, schema.TypeMultiSelect:
		return actual, false
	case schema.TypeArray:
		return actual, actual != "array"
	case schema.TypeObject:
		return actual, actual != "object"
	case schema.TypeString:
		return actual, actual != "string"
	case schema.TypeBoolean:
		return actual, actual != "boolean"
	default:
		return actual, false
	}
}

func isDirectiveToken(inner string) bool {
	return strings.HasPrefix(inner, "#") || strings.HasPrefix(inner, "/") || inner == "else"
}
