package engine

import "sort"

// Complex-type enrichment for declared array/object variables. Iteration
// directives depend on these keys to expose position and shape metadata
// inside each loop body.

// EnrichArray wraps every element with iteration metadata. Object elements
// get _index, _isFirst and _isLast merged in directly; primitive elements
// are wrapped as {value, _index, _isFirst, _isLast}. The input slice is not
// modified.
func EnrichArray(items []interface{}) []interface{} {
	enriched := make([]interface{}, len(items))

	for i, item := range items {
		meta := map[string]interface{}{
			"_index":   i,
			"_isFirst": i == 0,
			"_isLast":  i == len(items)-1,
		}

		if obj, ok := item.(map[string]interface{}); ok {
			merged := make(map[string]interface{}, len(obj)+len(meta))
			for k, v := range obj {
				merged[k] = v
			}
			for k, v := range meta {
				merged[k] = v
			}
			enriched[i] = merged
			continue
		}

		meta["value"] = item
		enriched[i] = meta
	}

	return enriched
}

// EnrichObject returns a copy of the object merged with _keys (its own key
// list, sorted), _size (key count) and _isEmpty.
func EnrichObject(obj map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make(map[string]interface{}, len(obj)+3)
	for k, v := range obj {
		merged[k] = v
	}
	merged["_keys"] = keys
	merged["_size"] = len(obj)
	merged["_isEmpty"] = len(obj) == 0

	return merged
}
