package models

import (
	"encoding/json"
	"reflect"
	"sort"
)

// CanonicalJSON encodes a value as deterministic JSON with
// alphabetically ordered object keys, so two structurally equal values
// always encode to the same bytes.
func CanonicalJSON(v any) []byte {
	switch typed := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf := make([]byte, 0, 256)
		buf = append(buf, '{')
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			keyJSON, _ := json.Marshal(k)
			buf = append(buf, keyJSON...)
			buf = append(buf, ':')
			buf = append(buf, CanonicalJSON(typed[k])...)
		}
		buf = append(buf, '}')
		return buf
	case Attributes:
		return CanonicalJSON(map[string]any(typed))
	case []any:
		buf := make([]byte, 0, 256)
		buf = append(buf, '[')
		for i, item := range typed {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, CanonicalJSON(item)...)
		}
		buf = append(buf, ']')
		return buf
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return []byte("null")
		}
		return data
	}
}

// ValuesEqual compares two values by their canonical JSON encoding.
func ValuesEqual(a, b any) bool {
	return string(CanonicalJSON(a)) == string(CanonicalJSON(b))
}

// IsBlank reports whether a value counts as "no value": nil, an empty
// string, or an empty sequence.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	switch typed := v.(type) {
	case string:
		return typed == ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}

// IsSequence reports whether a value is an array-like sequence.
// Strings and byte slices are scalars, not sequences.
func IsSequence(v any) bool {
	switch v.(type) {
	case nil, string, []byte:
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// SequenceElements flattens an array-like value into []any.
func SequenceElements(v any) []any {
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
