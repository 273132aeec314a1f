package stamp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stamp-dev/stamp/pkg/template"
)

// buildContext layers --var overrides over the YAML context file.
func buildContext(contextFile string, vars []string) (template.Context, error) {
	ctx := template.Context{}

	if contextFile != "" {
		data, err := os.ReadFile(contextFile)
		if err != nil {
			return nil, fmt.Errorf(MsgErrReadContext, err)
		}
		if err := yaml.Unmarshal(data, &ctx); err != nil {
			return nil, fmt.Errorf(MsgErrParseContext, err)
		}
	}

	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf(MsgErrBadVar, v)
		}
		setPath(ctx, name, coerceValue(value))
	}

	return ctx, nil
}

// coerceValue turns flag text into the value types directive conditions
// compare against: bools and numbers when they parse, strings otherwise.
func coerceValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

// setPath writes a dotted name into nested maps, creating levels as needed.
func setPath(ctx template.Context, name string, value interface{}) {
	parts := strings.Split(name, ".")
	node := map[string]interface{}(ctx)
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			node[part] = next
		}
		node = next
	}
	node[parts[len(parts)-1]] = value
}
