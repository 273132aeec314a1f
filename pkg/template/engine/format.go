package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stamp-dev/stamp/pkg/template"
)

// FormatValue renders a resolved context value as template output text,
// dispatching on its runtime type:
//
//	string        → verbatim
//	number, bool  → string conversion of the primitive
//	array         → elements joined with ", "
//	date-like     → ISO-8601 timestamp
//	plain object  → key/value serialization of its own fields
//
// nil never reaches this function; missing values are handled by the
// substitution path.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(time.RFC3339)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	case template.Context:
		return formatObject(map[string]interface{}(v))
	case map[string]interface{}:
		return formatObject(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// runtimeTypeName names a value's runtime type the way schema warnings
// report it.
func runtimeTypeName(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case time.Time, *time.Time:
		return "date"
	case []interface{}, []string:
		return "array"
	case map[string]interface{}, template.Context:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// formatObject serializes a plain object's own fields. JSON gives a stable,
// key-sorted key/value rendering.
func formatObject(obj map[string]interface{}) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf("%v", obj)
	}
	return string(data)
}
