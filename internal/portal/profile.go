package portal

import (
	"sort"
	"strconv"
)

// FindProfileID scans a decoded JSON tree for the caller's profile id.
// The profile listing endpoint's shape is not contractually fixed, so
// this is a best-effort depth-first search that tolerates wrapping
// envelopes: objects recurse into their members (sorted key order, so
// the result is deterministic) and fall back to their own "id" field;
// arrays are probed only at their first element.
func FindProfileID(v interface{}) (string, bool) {
	switch val := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if id, ok := FindProfileID(val[k]); ok {
				return id, true
			}
		}
		return ownID(val)
	case []interface{}:
		if len(val) == 0 {
			return "", false
		}
		if m, ok := val[0].(map[string]interface{}); ok {
			return ownID(m)
		}
		return "", false
	default:
		return "", false
	}
}

// ownID reads an object's direct "id" member. Numeric ids are coerced
// to their decimal string form.
func ownID(m map[string]interface{}) (string, bool) {
	switch id := m["id"].(type) {
	case string:
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	default:
		return "", false
	}
}
