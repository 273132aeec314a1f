package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stamp-dev/stamp/pkg/errors"
	"github.com/stamp-dev/stamp/pkg/schema"
	"github.com/stamp-dev/stamp/pkg/template"
	"github.com/stamp-dev/stamp/pkg/template/engine"
)

func TestExtractVariables(t *testing.T) {
	t.Run("deduplicates_names", func(t *testing.T) {
		names := engine.ExtractVariables("{{a}} {{a}} {{b}}")
		assert.ElementsMatch(t, []string{"a", "b"}, names)
	})

	t.Run("skips_directive_tokens", func(t *testing.T) {
		body := "{{#if enabled}}{{name}}{{else}}{{fallback}}{{/if}} {{#each items}}{{value}}{{/each}}"
		names := engine.ExtractVariables(body)
		assert.ElementsMatch(t, []string{"name", "fallback", "value"}, names)
	})

	t.Run("trims_whitespace", func(t *testing.T) {
		names := engine.ExtractVariables("{{ project.name }}")
		assert.Equal(t, []string{"project.name"}, names)
	})

	t.Run("empty_template", func(t *testing.T) {
		assert.Empty(t, engine.ExtractVariables("no placeholders here"))
	})
}

func TestSubstituteBasic(t *testing.T) {
	result := engine.Substitute("Hello {{name}}!", template.Context{"name": "World"}, nil)

	assert.Equal(t, "Hello World!", result.RenderedText)
	assert.Equal(t, []string{"name"}, result.UsedVariables)
	assert.True(t, result.Validation.Valid)
	assert.Empty(t, result.Validation.Errors)
	assert.Empty(t, result.Validation.Warnings)
}

func TestSubstituteMissingVariable(t *testing.T) {
	result := engine.Substitute("{{missing}}", template.Context{}, nil)

	assert.Equal(t, "", result.RenderedText)
	assert.True(t, result.Validation.Valid, "missing values are warnings, not errors")
	require.Len(t, result.Validation.Warnings, 1)
	assert.Equal(t, "missing not found / is empty", result.Validation.Warnings[0])
}

func TestSubstituteMissingWarningPerOccurrence(t *testing.T) {
	result := engine.Substitute("{{ghost}} and {{ghost}}", template.Context{}, nil)

	assert.Equal(t, " and ", result.RenderedText)
	assert.Len(t, result.Validation.Warnings, 2, "one warning per occurrence")
	assert.Equal(t, []string{"ghost"}, result.UsedVariables)
}

func TestSubstituteNilValue(t *testing.T) {
	result := engine.Substitute("{{thing}}", template.Context{"thing": nil}, nil)

	assert.Equal(t, "", result.RenderedText)
	assert.Len(t, result.Validation.Warnings, 1)
}

func TestSubstituteFormatting(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		body string
		ctx  template.Context
		want string
	}{
		{"string_verbatim", "{{s}}", template.Context{"s": "text"}, "text"},
		{"int", "{{n}}", template.Context{"n": 42}, "42"},
		{"float", "{{n}}", template.Context{"n": 2.5}, "2.5"},
		{"float_whole", "{{n}}", template.Context{"n": 3.0}, "3"},
		{"bool", "{{b}}", template.Context{"b": true}, "true"},
		{"array_joined", "{{items}}", template.Context{"items": []interface{}{"a", "b", 3}}, "a, b, 3"},
		{"string_slice", "{{items}}", template.Context{"items": []string{"x", "y"}}, "x, y"},
		{"date_iso8601", "{{when}}", template.Context{"when": when}, "2024-03-01T12:30:00Z"},
		{"object_key_value", "{{cfg}}", template.Context{"cfg": map[string]interface{}{"port": 80}}, `{"port":80}`},
		{"nested_path", "{{user.name}}", template.Context{"user": map[string]interface{}{"name": "ada"}}, "ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Substitute(tt.body, tt.ctx, nil)
			assert.Equal(t, tt.want, result.RenderedText)
		})
	}
}

func TestSubstituteMissingIntermediateSegment(t *testing.T) {
	ctx := template.Context{"user": map[string]interface{}{"name": "ada"}}
	result := engine.Substitute("{{user.profile.email}}", ctx, nil)

	assert.Equal(t, "", result.RenderedText)
	assert.True(t, result.Validation.Valid)
	assert.Len(t, result.Validation.Warnings, 1)
}

func TestSubstituteNameValidation(t *testing.T) {
	t.Run("invalid_name_is_error", func(t *testing.T) {
		result := engine.Substitute("{{bad name!}}", template.Context{}, nil)
		assert.False(t, result.Validation.Valid)
		require.NotEmpty(t, result.Validation.Errors)
		assert.Contains(t, result.Validation.Errors[0], "bad name!")
	})

	t.Run("function_call_is_warning", func(t *testing.T) {
		result := engine.Substitute("{{getName()}}", template.Context{}, nil)
		assert.True(t, result.Validation.Valid, "function-call shape is a warning, not an error")

		var found bool
		for _, w := range result.Validation.Warnings {
			if w == "variable 'getName()' looks like a function call" {
				found = true
			}
		}
		assert.True(t, found, "warnings: %v", result.Validation.Warnings)
	})

	t.Run("directives_leave_body_untouched", func(t *testing.T) {
		body := "{{#if x}}yes{{/if}}"
		result := engine.Substitute(body, template.Context{}, nil)
		assert.Equal(t, body, result.RenderedText)
		assert.True(t, result.Validation.Valid)
	})
}

func TestSubstituteSchemaChecks(t *testing.T) {
	s := schema.Schema{
		{Name: "project", Type: schema.TypeString, Required: true},
		{Name: "features", Type: schema.TypeArray, Required: false},
		{Name: "flavor", Type: schema.TypeSelect, Required: false},
	}

	t.Run("required_unused_is_warning", func(t *testing.T) {
		result := engine.Substitute("no placeholders", template.Context{}, s)
		assert.True(t, result.Validation.Valid)

		var found bool
		for _, w := range result.Validation.Warnings {
			if w == "required variable 'project' is never used in the template" {
				found = true
			}
		}
		assert.True(t, found, "warnings: %v", result.Validation.Warnings)
	})

	t.Run("type_mismatch_is_warning", func(t *testing.T) {
		ctx := template.Context{"project": 42}
		result := engine.Substitute("{{project}}", ctx, s)

		assert.True(t, result.Validation.Valid)
		var found bool
		for _, w := range result.Validation.Warnings {
			if w == "variable 'project' is declared string but has a number value" {
				found = true
			}
		}
		assert.True(t, found, "warnings: %v", result.Validation.Warnings)
	})

	// The scoped schemas below leave out the required 'project' descriptor
	// so its unused-variable warning cannot mask the assertion under test.
	t.Run("array_type_matches_slice", func(t *testing.T) {
		scoped := schema.Schema{{Name: "features", Type: schema.TypeArray}}
		ctx := template.Context{"features": []interface{}{"a"}}
		result := engine.Substitute("{{features}}", ctx, scoped)
		assert.Empty(t, result.Validation.Warnings)
	})

	t.Run("select_never_mismatches", func(t *testing.T) {
		scoped := schema.Schema{{Name: "flavor", Type: schema.TypeSelect}}
		ctx := template.Context{"flavor": 123}
		result := engine.Substitute("{{flavor}}", ctx, scoped)
		assert.Empty(t, result.Validation.Warnings)
	})
}

func TestEngineOptions(t *testing.T) {
	t.Run("missing_default", func(t *testing.T) {
		e := engine.New(engine.Options{MissingDefault: "<unset>"})
		result, err := e.Substitute("{{ghost}}", template.Context{}, nil)
		require.NoError(t, err)
		assert.Equal(t, "<unset>", result.RenderedText)
	})

	t.Run("custom_formatter", func(t *testing.T) {
		e := engine.New(engine.Options{
			Formatters: map[string]engine.FormatterFunc{
				"name": func(v interface{}) string { return "<<" + v.(string) + ">>" },
			},
		})
		result, err := e.Substitute("{{name}} {{other}}", template.Context{"name": "x", "other": "y"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "<<x>> y", result.RenderedText)
	})

	t.Run("strict_mode_fails_on_missing", func(t *testing.T) {
		e := engine.New(engine.Options{Strict: true})
		_, err := e.Substitute("{{ghost}}", template.Context{}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVariableMissing))
	})

	t.Run("strict_mode_passes_when_resolved", func(t *testing.T) {
		e := engine.New(engine.Options{Strict: true})
		result, err := e.Substitute("{{name}}", template.Context{"name": "ok"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", result.RenderedText)
	})

	t.Run("suppress_warnings", func(t *testing.T) {
		e := engine.New(engine.Options{SuppressWarnings: true})
		result, err := e.Substitute("{{ghost}}", template.Context{}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Validation.Warnings)
	})
}

func TestSubstituteEachScopeNames(t *testing.T) {
	// Names inside an {{#each}} block resolve against the per-element scope
	// at block-render time, so the flat pass must not count them missing.
	body := "{{#each items}}{{this}}-{{_index}}{{/each}}"
	ctx := template.Context{"items": []interface{}{"a", "b"}}

	t.Run("no_missing_warnings", func(t *testing.T) {
		result := engine.Substitute(body, ctx, nil)
		assert.Empty(t, result.Validation.Warnings)
		assert.Equal(t, body, result.RenderedText, "loop tokens are left for the block renderer")
	})

	t.Run("strict_mode_ignores_loop_names", func(t *testing.T) {
		e := engine.New(engine.Options{Strict: true})
		_, err := e.Substitute(body, ctx, nil)
		assert.NoError(t, err)
	})

	t.Run("strict_mode_still_fails_outside_loop", func(t *testing.T) {
		e := engine.New(engine.Options{Strict: true})
		_, err := e.Substitute("{{ghost}} "+body, ctx, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVariableMissing))
	})

	t.Run("unterminated_each_spans_to_end", func(t *testing.T) {
		result := engine.Substitute("{{#each items}}{{name}}", ctx, nil)
		assert.Empty(t, result.Validation.Warnings)
		assert.False(t, result.Validation.Valid, "the imbalance is the syntax validator's finding")
	})
}

func TestEngineLenient(t *testing.T) {
	e := engine.New(engine.Options{Strict: true, MissingDefault: "?"})

	result, err := e.Lenient().Substitute("{{ghost}}", template.Context{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "?", result.RenderedText, "other options survive Lenient")

	_, err = e.Substitute("{{ghost}}", template.Context{}, nil)
	assert.Error(t, err, "the original engine stays strict")
}
