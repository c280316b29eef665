package parser

import "strings"

// LookupString evaluates a dot path against raw and returns the first non-empty
// string it reaches.
//
// Segments are object keys or array indexes (negative indexes count from the
// end). A "*" segment fans out over every value of an object, in sorted key
// order, or every element of an array, in order.
func LookupString(raw Raw, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	return lookup(raw, strings.Split(path, "."))
}

func lookup(v any, segs []string) (string, bool) {
	if len(segs) == 0 {
		s, ok := v.(string)
		return s, ok && s != ""
	}
	seg, rest := segs[0], segs[1:]
	if seg != "*" {
		next, ok := step(v, seg)
		if !ok {
			return "", false
		}
		return lookup(next, rest)
	}

	if o, ok := AsRaw(v); ok {
		for _, k := range o.Keys() {
			if s, ok := lookup(o[k], rest); ok {
				return s, true
			}
		}
		return "", false
	}
	if arr, ok := v.([]any); ok {
		for _, item := range arr {
			if s, ok := lookup(item, rest); ok {
				return s, true
			}
		}
	}
	return "", false
}

// FirstString returns the first path in paths that yields a string.
func FirstString(raw Raw, paths ...string) (string, bool) {
	for _, p := range paths {
		if s, ok := LookupString(raw, p); ok {
			return s, true
		}
	}
	return "", false
}
