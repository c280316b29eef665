package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Raw is one decoded JSON object from a service response.
// Builders only read from it; nothing in this package mutates a Raw.
type Raw map[string]any

// DecodeRaw decodes a JSON object, keeping numbers as json.Number so large
// integers such as content lengths survive unchanged.
func DecodeRaw(data []byte) (Raw, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return Raw(out), nil
}

// AsRaw converts v to a Raw when it is a JSON object.
func AsRaw(v any) (Raw, bool) {
	switch o := v.(type) {
	case Raw:
		return o, o != nil
	case map[string]any:
		return Raw(o), o != nil
	default:
		return nil, false
	}
}

// Has reports whether key is present with a non-null value.
func (r Raw) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Get returns the value stored under key.
func (r Raw) Get(key string) any {
	return r[key]
}

// Keys returns the object keys in sorted order.
func (r Raw) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value under key as a string. Numbers and booleans are formatted.
func (r Raw) String(key string) string {
	return scalarString(r[key])
}

// Int returns the value under key as an integer. Numeric strings are parsed.
func (r Raw) Int(key string) int64 {
	return scalarInt(r[key])
}

// Float returns the value under key as a float.
func (r Raw) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Bool returns the value under key as a boolean.
func (r Raw) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Object returns the object under key, or nil.
func (r Raw) Object(key string) Raw {
	o, _ := AsRaw(r[key])
	return o
}

// Array returns the array under key, or nil.
func (r Raw) Array(key string) []any {
	a, _ := r[key].([]any)
	return a
}

// Objects returns the elements of the array under key that are objects.
func (r Raw) Objects(key string) []Raw {
	arr := r.Array(key)
	out := make([]Raw, 0, len(arr))
	for _, v := range arr {
		if o, ok := AsRaw(v); ok {
			out = append(out, o)
		}
	}
	return out
}

// Strings returns the string elements of the array under key.
func (r Raw) Strings(key string) []string {
	arr := r.Array(key)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Dig follows object keys and array indexes. It returns nil when any step is missing.
func (r Raw) Dig(path ...string) any {
	var cur any = r
	for _, seg := range path {
		next, ok := step(cur, seg)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// DigObject is Dig for a path ending in an object.
func (r Raw) DigObject(path ...string) Raw {
	o, _ := AsRaw(r.Dig(path...))
	return o
}

// DigString is Dig for a path ending in a scalar.
func (r Raw) DigString(path ...string) string {
	return scalarString(r.Dig(path...))
}

// step moves one segment into v: a key for objects, an index for arrays.
// Negative indexes count from the end.
func step(v any, seg string) (any, bool) {
	if o, ok := AsRaw(v); ok {
		next, ok := o[seg]
		return next, ok && next != nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	i, err := strconv.Atoi(seg)
	if err != nil {
		return nil, false
	}
	if i < 0 {
		i += len(arr)
	}
	if i < 0 || i >= len(arr) {
		return nil, false
	}
	return arr[i], arr[i] != nil
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func scalarInt(v any) int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return int64(f)
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
