package render

import "fmt"

// StringValue renders a scalar answer as text. Strings, fmt.Stringer values
// and numbers are converted; anything else is "".
func StringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64, int, int64:
		return fmt.Sprint(s)
	default:
		return ""
	}
}

// StringSet normalises a multi-value answer. Both a bare array and a
// wrapper object holding the array under "value" are accepted; anything else
// is an empty set.
func StringSet(v any) []string {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case map[string]any:
		return StringSet(s["value"])
	default:
		return nil
	}
}

// Aggregate returns the nested value map of a row or section. Non-map
// values read as empty.
func Aggregate(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func merge(agg map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(agg)+1)
	for k, v := range agg {
		out[k] = v
	}
	out[key] = value
	return out
}
