package cursor

import (
	"encoding/json"
	"strconv"
)

// jsonPathString looks up path inside raw (a JSON object) and stringifies
// the result: string as-is; integer as decimal digits; float as decimal
// notation; boolean as "true"/"false"; null or a missing path as the
// literal "NULL"; an intermediate object continues the recursive lookup.
func jsonPathString(raw json.RawMessage, path []string) string {
	if len(raw) == 0 {
		return "NULL"
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "NULL"
	}
	return walk(v, path)
}

func walk(v any, path []string) string {
	if len(path) == 0 {
		return stringify(v)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return "NULL"
	}
	next, ok := obj[path[0]]
	if !ok {
		return "NULL"
	}
	return walk(next, path[1:])
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return "NULL"
	}
}
