package config

import "strings"

func lookup(values map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = values

	for _, part := range parts {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}

	// An explicit null in YAML means "not set here".
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Values:
		return m, true
	default:
		return nil, false
	}
}
