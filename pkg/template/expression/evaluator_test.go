package expression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stamp-dev/stamp/pkg/template"
	"github.com/stamp-dev/stamp/pkg/template/expression"
)

func TestEvaluateNumericComparison(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  template.Context
		want bool
	}{
		{"greater_true", "count > 5", template.Context{"count": 10}, true},
		{"greater_false", "count > 5", template.Context{"count": 3}, false},
		{"greater_equal_boundary", "count >= 10", template.Context{"count": 10}, true},
		{"less_true", "count < 5", template.Context{"count": 2}, true},
		{"less_equal_boundary", "count <= 2", template.Context{"count": 2}, true},
		{"non_numeric_value", "count > 5", template.Context{"count": "abc"}, false},
		{"missing_key_literal_parse", "7 > 5", template.Context{}, true},
		{"missing_left_operand", "count > 5", template.Context{}, false},
		{"string_number_coerced", "count > 5", template.Context{"count": "12"}, true},
		{"float_values", "ratio >= 0.5", template.Context{"ratio": 0.75}, true},
		{"bool_coerces_to_one", "flag >= 1", template.Context{"flag": true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expression.Evaluate(tt.expr, tt.ctx))
		})
	}
}

func TestEvaluateEquality(t *testing.T) {
	ctx := template.Context{
		"status":  "active",
		"desired": "active",
		"other":   "inactive",
	}

	// Both operands are context lookups, never literal values.
	assert.True(t, expression.Evaluate("status === desired", ctx))
	assert.False(t, expression.Evaluate("status === other", ctx))
	assert.True(t, expression.Evaluate("status !== other", ctx))
	assert.False(t, expression.Evaluate("status !== desired", ctx))

	// A quoted "literal" is just a key that does not exist.
	assert.False(t, expression.Evaluate(`status === "active"`, ctx))

	// Two missing keys both resolve to nil and compare equal.
	assert.True(t, expression.Evaluate("ghost === phantom", ctx))
}

func TestEvaluateLogical(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  template.Context
		want bool
	}{
		{"and_both_true", "a && b", template.Context{"a": true, "b": true}, true},
		{"and_one_false", "a && b", template.Context{"a": true, "b": false}, false},
		{"and_missing_operand", "a && b", template.Context{"a": true}, false},
		{"or_one_true", "a || b", template.Context{"a": false, "b": true}, true},
		{"or_all_false", "a || b", template.Context{"a": false, "b": ""}, false},
		{"and_three_operands", "a && b && c", template.Context{"a": true, "b": 1, "c": "x"}, true},
		{"or_three_operands", "a || b || c", template.Context{"a": false, "b": 0, "c": "x"}, true},
		// No nested grouping: the OR clause inside an AND split is a single
		// (unresolvable) lookup, not a sub-expression.
		{"no_nested_grouping", "a && b || c", template.Context{"a": true, "b": false, "c": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expression.Evaluate(tt.expr, tt.ctx))
		})
	}
}

func TestEvaluateBareVariable(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ctx  template.Context
		want bool
	}{
		{"true_bool", "enabled", template.Context{"enabled": true}, true},
		{"false_bool", "enabled", template.Context{"enabled": false}, false},
		{"non_empty_string", "name", template.Context{"name": "x"}, true},
		{"empty_string", "name", template.Context{"name": ""}, false},
		{"zero_number", "count", template.Context{"count": 0}, false},
		{"nonzero_number", "count", template.Context{"count": 7}, true},
		{"nil_value", "thing", template.Context{"thing": nil}, false},
		{"missing_key", "ghost", template.Context{}, false},
		{"empty_slice_is_truthy", "items", template.Context{"items": []interface{}{}}, true},
		{"nested_path", "user.active", template.Context{"user": map[string]interface{}{"active": true}}, true},
		{"missing_intermediate", "user.profile.name", template.Context{"user": map[string]interface{}{}}, false},
		{"empty_expression", "", template.Context{"a": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expression.Evaluate(tt.expr, tt.ctx))
		})
	}
}

func TestEvaluateNeverPanics(t *testing.T) {
	hostile := []string{
		">",
		">>>",
		"&&",
		"||",
		"===",
		"!==",
		"a >",
		"< b",
		"a === ",
		" && && ",
		"{{weird}}",
	}

	for _, expr := range hostile {
		assert.NotPanics(t, func() {
			expression.Evaluate(expr, template.Context{"a": 1, "b": 2})
		}, "expression %q", expr)
	}
}

func TestEvaluateDecisionOrder(t *testing.T) {
	// An expression containing both a numeric operator and && is treated as
	// a numeric comparison: the numeric scan runs first and its right-hand
	// side fails to parse, so the whole expression is false.
	ctx := template.Context{"a": 1, "b": 2, "enabled": true, "count": 5}
	assert.False(t, expression.Evaluate("a > 0 && b", ctx))
	assert.False(t, expression.Evaluate("enabled && count > 3", ctx))

	// Same shadowing for ===: the split happens on the equality operator,
	// not on &&.
	assert.False(t, expression.Evaluate("enabled && a === b", ctx))
}
