package template

import "strings"

// Lookup resolves a dot-delimited path against the context, descending
// through nested map values. The boolean reports whether every segment of
// the path resolved; a missing intermediate segment resolves to (nil, false).
func Lookup(ctx Context, path string) (interface{}, bool) {
	if ctx == nil {
		return nil, false
	}

	segments := strings.Split(path, ".")
	var current interface{} = map[string]interface{}(ctx)

	for _, segment := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case Context:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case map[string]string:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		default:
			return nil, false
		}
	}

	return current, true
}

// Truthy coerces a context value to a boolean the way the directive
// conditions expect it: nil, false, zero numbers and the empty string are
// falsy; everything else, including empty slices and maps, is truthy.
func Truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		// Slices, maps and dates count as present values.
		return true
	}
}
