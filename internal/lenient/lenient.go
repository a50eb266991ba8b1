// Package lenient reads loosely-typed JSON objects field by field.
//
// The data files are hand-edited, so a field with the wrong type is treated
// as absent instead of failing the whole document.
package lenient

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Object is a decoded JSON object whose values are still raw.
type Object map[string]json.RawMessage

// Parse decodes data as a JSON object.
func Parse(data []byte) (Object, error) {
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		o = Object{}
	}
	return o, nil
}

// Has reports whether key is present with a non-null value.
func (o Object) Has(key string) bool {
	raw, ok := o[key]
	return ok && !isNull(raw)
}

// String returns a string value. Numbers and booleans are returned as their
// literal text; anything else yields "".
func (o Object) String(key string) string {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return ""
	}
	return string(trimmed)
}

// First returns the first non-empty string among keys.
func (o Object) First(keys ...string) string {
	for _, k := range keys {
		if s := o.String(k); s != "" {
			return s
		}
	}
	return ""
}

// Float returns a number, parsing numeric strings. Invalid and non-finite
// values yield 0.
func (o Object) Float(key string) float64 {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finite(v)
		}
	}
	return 0
}

// finite maps NaN and infinities to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Bool returns a boolean, accepting "true"/"false" strings and non-zero numbers.
func (o Object) Bool(key string) bool {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		return err == nil && v
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	return false
}

// Truthy reports whether key holds a value other than null, false, zero,
// an empty string, an empty array or an empty object.
func (o Object) Truthy(key string) bool {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	return false
}

// Strings returns the non-empty string elements of an array value.
func (o Object) Strings(key string) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(o[key], &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		s := Object{"v": item}.String("v")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Objects returns the object elements of an array value, skipping anything else.
func (o Object) Objects(key string) []Object {
	return Array(o[key])
}

// Object returns a nested object value, or nil.
func (o Object) Object(key string) Object {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return nil
	}
	nested, err := Parse(raw)
	if err != nil {
		return nil
	}
	return nested
}

// Array decodes raw as an array of objects, skipping non-object elements.
func Array(raw json.RawMessage) []Object {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []Object
	for _, item := range items {
		if isNull(item) {
			continue
		}
		obj, err := Parse(item)
		if err != nil {
			continue
		}
		out = append(out, obj)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
