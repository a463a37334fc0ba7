package errorbag

import (
	"sort"
	"strings"
)

// TransformKey converts array-style field names into the dotted keys used by
// the bag: "foo[bar]" becomes "foo.bar", "foo[]" becomes "foo" and
// "items[0][name]" becomes "items.0.name".
func TransformKey(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if !strings.ContainsAny(name, "[]") {
		return name
	}
	key := strings.NewReplacer("[]", "", "[", ".", "]", "").Replace(name)
	return strings.Trim(key, ".")
}

// FromPayload builds a bag from a server error payload. Keys may be dotted
// paths, JSON pointers ("/body/email"), JSONPath-ish ("$.body.tags[0]") or
// wrapper-prefixed ("request.payload.owner"); they are normalised into the
// dotted field keys form groups look up. Form-level keys ("", "form",
// "__all__", "non_field_errors") are collected under Form.
func FromPayload(payload map[string][]string) *Bag {
	bag := New()
	if len(payload) == 0 {
		return bag
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, raw := range keys {
		messages := payload[raw]
		key, formLevel := normalizePath(raw)
		if formLevel {
			bag.AddForm(messages...)
			continue
		}
		bag.Add(key, messages...)
	}
	return bag
}

func normalizePath(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", true
	}
	return strings.Join(segments, "."), false
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
	}

	out := segments
	for len(out) > 1 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
