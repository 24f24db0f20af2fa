package helpspot

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// The server is inconsistent about how it wraps collections: the same
// endpoint may return nothing, a single record, a list of records, or a map
// keyed by record IDs, and a few endpoints have changed envelope shape
// between versions. items resolves the first dotted key path that yields a
// non-empty value and flattens whatever it finds into a slice of records.
//
// Iteration order for ID-keyed envelopes is undefined; the API offers no
// ordering contract for them.
func items(body map[string]any, paths ...string) []map[string]any {
	for _, path := range paths {
		switch v := lookup(body, path).(type) {
		case []any:
			out := make([]map[string]any, 0, len(v))
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					out = append(out, m)
				}
			}
			if len(out) > 0 {
				return out
			}
		case map[string]any:
			if len(v) == 0 {
				continue
			}
			if set, ok := recordSet(v); ok {
				return set
			}
			return []map[string]any{v}
		}
	}
	return nil
}

// lookup resolves a dotted key path ("requests.request") inside nested
// generic maps, returning nil as soon as a segment is missing.
func lookup(body map[string]any, path string) any {
	var v any = body
	for _, key := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

// recordSet reports whether m is a collection keyed by record IDs rather
// than a single record, and if so returns its values. Records are flat, so
// a map whose values are all maps can only be an ID-keyed collection.
func recordSet(m map[string]any) ([]map[string]any, bool) {
	out := make([]map[string]any, 0, len(m))
	for _, v := range m {
		rec, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		out = append(out, rec)
	}
	return out, true
}

// optInt parses nullable numeric reference fields, where the server uses
// "", "0" and 0 interchangeably to mean no value. A valid zero identity
// does not exist for these fields.
func optInt(v any) *int {
	s := strings.TrimSpace(cast.ToString(v))
	if s == "" || s == "0" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// toEpoch parses timestamp fields that arrive either as epoch numbers or as
// preformatted date strings; the latter decode as 0.
func toEpoch(v any) int64 {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

// optFlag reads a "1"/"0" flag that defaults to true when the server omits
// the key entirely.
func optFlag(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return true
	}
	return cast.ToBool(v)
}

// flag serializes a boolean the way the API expects: the literal strings
// "1" and "0".
func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
