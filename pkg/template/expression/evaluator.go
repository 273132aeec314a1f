// Package expression evaluates block-directive conditions against a render
// context. The grammar is deliberately a fixed, ordered sequence of string
// pattern checks rather than a recursive parser; templates in the wild rely
// on this exact decision order, so it must not be replaced by an operator
// precedence grammar.
package expression

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/stamp-dev/stamp/pkg/logging"
	"github.com/stamp-dev/stamp/pkg/template"
)

// numericOps are checked first, in this literal order. ">=" must precede ">"
// and "<=" must precede "<" so the two-character forms win the scan.
var numericOps = []string{">=", ">", "<=", "<"}

// Evaluate evaluates a directive condition against the context and returns
// its boolean outcome. It never fails: any malformed or unresolvable
// expression evaluates to false.
//
// Decision order:
//  1. numeric comparison (>=, >, <=, <)
//  2. inequality of two context lookups (!==)
//  3. equality of two context lookups (===)
//  4. conjunction (&&), every operand must pass
//  5. disjunction (||), at least one operand must pass
//  6. bare variable truthiness
func Evaluate(expr string, ctx template.Context) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}

	for _, op := range numericOps {
		if strings.Contains(expr, op) {
			return evaluateNumeric(expr, op, ctx)
		}
	}

	// Both operands of === / !== are context keys, never literals. A
	// comparison like `status === "active"` therefore only holds when the
	// quoted string is itself a context key. Preserved for compatibility.
	if strings.Contains(expr, "!==") {
		return !evaluateLookupEquality(expr, "!==", ctx)
	}
	if strings.Contains(expr, "===") {
		return evaluateLookupEquality(expr, "===", ctx)
	}

	if strings.Contains(expr, "&&") {
		for _, operand := range strings.Split(expr, "&&") {
			if !evaluateOperand(strings.TrimSpace(operand), ctx) {
				return false
			}
		}
		return true
	}

	if strings.Contains(expr, "||") {
		for _, operand := range strings.Split(expr, "||") {
			if evaluateOperand(strings.TrimSpace(operand), ctx) {
				return true
			}
		}
		return false
	}

	value, _ := template.Lookup(ctx, expr)
	return template.Truthy(value)
}

// evaluateOperand handles a single operand inside an AND/OR split. It does
// not recurse into further AND/OR groups: one level of grouping only.
func evaluateOperand(operand string, ctx template.Context) bool {
	for _, op := range numericOps {
		if strings.Contains(operand, op) {
			return evaluateNumeric(operand, op, ctx)
		}
	}
	if strings.Contains(operand, "!==") {
		return !evaluateLookupEquality(operand, "!==", ctx)
	}
	if strings.Contains(operand, "===") {
		return evaluateLookupEquality(operand, "===", ctx)
	}

	value, _ := template.Lookup(ctx, operand)
	return template.Truthy(value)
}

// evaluateNumeric splits on the first occurrence of op and compares both
// sides numerically. Either side failing to resolve to a finite number makes
// the whole comparison false, not an error.
func evaluateNumeric(expr, op string, ctx template.Context) bool {
	parts := strings.SplitN(expr, op, 2)
	if len(parts) != 2 {
		return false
	}

	left, okL := resolveNumber(strings.TrimSpace(parts[0]), ctx)
	right, okR := resolveNumber(strings.TrimSpace(parts[1]), ctx)
	if !okL || !okR {
		logger := logging.GetLogger("template.expression")
		logger.Trace().Str("expression", expr).Msg("non-numeric operand, comparison is false")
		return false
	}

	switch op {
	case ">=":
		return left >= right
	case ">":
		return left > right
	case "<=":
		return left <= right
	case "<":
		return left < right
	}
	return false
}

// evaluateLookupEquality compares the context values of both operand keys.
func evaluateLookupEquality(expr, op string, ctx template.Context) bool {
	parts := strings.SplitN(expr, op, 2)
	if len(parts) != 2 {
		return false
	}

	left, _ := template.Lookup(ctx, strings.TrimSpace(parts[0]))
	right, _ := template.Lookup(ctx, strings.TrimSpace(parts[1]))
	return reflect.DeepEqual(left, right)
}

// resolveNumber turns an operand into a float64. Context keys win over
// literals: an operand present in the context is coerced from its value,
// anything else is parsed as a numeric literal.
func resolveNumber(operand string, ctx template.Context) (float64, bool) {
	if value, ok := template.Lookup(ctx, operand); ok {
		return toNumber(value)
	}
	return parseFinite(operand)
}

func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return finite(float64(v))
	case float64:
		return finite(v)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		return parseFinite(v)
	default:
		return 0, false
	}
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
