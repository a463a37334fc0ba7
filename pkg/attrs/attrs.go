// Package attrs holds the ordered attribute maps passed to form-group
// containers and labels, plus the serializer that turns them into HTML
// attribute strings. Values are strings, booleans, numbers or nil; nil and
// false drop the attribute, true renders it bare.
package attrs

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// ClassKey is the attribute used by AppendClass.
const ClassKey = "class"

// Attribute is a single key/value pair.
type Attribute struct {
	Key   string
	Value any
}

// Attributes is an insertion-ordered attribute map. Methods never mutate the
// receiver's backing array; writers return a new value.
type Attributes []Attribute

// Of builds Attributes from alternating key/value arguments. A trailing key
// without a value is stored with a nil value.
func Of(pairs ...any) Attributes {
	out := make(Attributes, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		key := strings.TrimSpace(fmt.Sprint(pairs[i]))
		var value any
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		out = out.Set(key, value)
	}
	return out
}

// FromMap converts an unordered map, sorting keys for deterministic output.
func FromMap(values map[string]any) Attributes {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(Attributes, 0, len(keys))
	for _, key := range keys {
		out = out.Set(key, values[key])
	}
	return out
}

// Clone returns a copy that shares nothing with the receiver.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// Len reports the number of entries.
func (a Attributes) Len() int {
	return len(a)
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (any, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present, regardless of its value.
func (a Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// String returns the value under key formatted as text, or "" when the key
// is absent or nil.
func (a Attributes) String(key string) string {
	value, ok := a.Get(key)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Set returns a copy with key set to value. Existing keys keep their position.
func (a Attributes) Set(key string, value any) Attributes {
	key = strings.TrimSpace(key)
	if key == "" {
		return a.Clone()
	}
	out := a.Clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attribute{Key: key, Value: value})
}

// Without returns a copy minus the listed keys.
func (a Attributes) Without(keys ...string) Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		if containsKey(keys, attr.Key) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// Map flattens the attributes into a map, losing order.
func (a Attributes) Map() map[string]any {
	if len(a) == 0 {
		return nil
	}
	out := make(map[string]any, len(a))
	for _, attr := range a {
		out[attr.Key] = attr.Value
	}
	return out
}

// AppendClass returns a copy of options whose class is the existing class
// plus a single space and class, or just class when none is set.
func AppendClass(class string, options Attributes) Attributes {
	existing := options.String(ClassKey)
	if existing != "" {
		return options.Set(ClassKey, existing+" "+class)
	}
	return options.Set(ClassKey, class)
}

// Serialize renders the attributes as a leading-space separated sequence of
// key="value" pairs. An empty set yields "".
func Serialize(a Attributes) string {
	if len(a) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, attr := range a {
		element := serializeAttribute(attr)
		if element == "" {
			continue
		}
		builder.WriteByte(' ')
		builder.WriteString(element)
	}
	return builder.String()
}

func serializeAttribute(attr Attribute) string {
	key := strings.TrimSpace(attr.Key)
	if key == "" {
		return ""
	}
	switch v := attr.Value.(type) {
	case nil:
		return ""
	case bool:
		if !v {
			return ""
		}
		return html.EscapeString(key)
	case string:
		return html.EscapeString(key) + `="` + html.EscapeString(v) + `"`
	default:
		return html.EscapeString(key) + `="` + html.EscapeString(fmt.Sprint(v)) + `"`
	}
}

func containsKey(keys []string, key string) bool {
	for _, candidate := range keys {
		if candidate == key {
			return true
		}
	}
	return false
}
