// Package selector extracts values from decoded JSON-like data using
// dot/bracket path expressions.
//
// A path is a sequence of map keys and slice indices:
//
//	selector.Get(entry, "file.url")
//	selector.Get(entry, "attachments[0].name")
//
// Lookups are nil-safe: a missing key, an out-of-range index, or a type
// mismatch anywhere along the path yields nil rather than an error, so
// callers can treat "not there" and "not downloadable" the same way.
package selector

import "strconv"

type segment struct {
	key     string
	index   int
	isIndex bool
}

// Get descends into v following the given path expression and returns the
// value it lands on, or nil if any segment cannot be resolved. v is expected
// to be the result of a generic JSON decode (map[string]any, []any, scalars).
//
// An empty path returns v unchanged.
func Get(v any, path string) any {
	for _, seg := range parse(path) {
		switch cur := v.(type) {
		case map[string]any:
			if seg.isIndex {
				return nil
			}
			val, ok := cur[seg.key]
			if !ok {
				return nil
			}
			v = val
		case []any:
			if !seg.isIndex || seg.index < 0 || seg.index >= len(cur) {
				return nil
			}
			v = cur[seg.index]
		default:
			return nil
		}
	}
	return v
}

// GetString is Get restricted to string results. Non-string values (including
// nil) come back as the empty string.
func GetString(v any, path string) string {
	s, _ := Get(v, path).(string)
	return s
}

// parse splits a path expression into key and index segments. Malformed
// bracket expressions are treated as literal keys so that a bad path simply
// fails to match instead of panicking.
func parse(path string) []segment {
	var segs []segment
	var key string

	flush := func() {
		if key != "" {
			segs = append(segs, segment{key: key})
			key = ""
		}
	}

	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '.':
			flush()
		case '[':
			end := i + 1
			for end < len(path) && path[end] != ']' {
				end++
			}
			idx, err := strconv.Atoi(path[i+1 : end])
			if end < len(path) && err == nil {
				flush()
				segs = append(segs, segment{index: idx, isIndex: true})
				i = end
			} else {
				key += string(path[i])
			}
		default:
			key += string(path[i])
		}
	}
	flush()

	return segs
}
