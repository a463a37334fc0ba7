// Package errorbag stores the validation messages produced by a request's
// validation pass, keyed by dotted field path, and answers the two queries
// form groups need: does a field have an error, and what is its first
// message formatted into a markup template.
package errorbag

import (
	"html"
	"sort"
	"strings"
)

// MessagePlaceholder is replaced by the message text in First and Format.
const MessagePlaceholder = ":message"

// Bag is an ordered collection of messages per field key. A nil *Bag is a
// valid, empty bag. Bags are not safe for concurrent mutation; once built they
// can be read from multiple goroutines.
type Bag struct {
	fields map[string][]string
	order  []string
	form   []string
}

// New creates an empty bag.
func New() *Bag {
	return &Bag{fields: make(map[string][]string)}
}

// Add appends messages to key. Keys are normalised with TransformKey; blank
// messages and repeats are dropped.
func (b *Bag) Add(key string, messages ...string) *Bag {
	key = TransformKey(key)
	if key == "" {
		b.AddForm(messages...)
		return b
	}
	if b.fields == nil {
		b.fields = make(map[string][]string)
	}
	merged := normalizeMessages(append(append([]string(nil), b.fields[key]...), messages...))
	if len(merged) == 0 {
		return b
	}
	if _, exists := b.fields[key]; !exists {
		b.order = append(b.order, key)
	}
	b.fields[key] = merged
	return b
}

// AddForm appends form-level messages that are not tied to a field.
func (b *Bag) AddForm(messages ...string) *Bag {
	b.form = normalizeMessages(append(b.form, messages...))
	return b
}

// Merge copies every message of other into b.
func (b *Bag) Merge(other *Bag) *Bag {
	if other == nil {
		return b
	}
	for _, key := range other.order {
		b.Add(key, other.fields[key]...)
	}
	b.AddForm(other.form...)
	return b
}

// Has reports whether key has at least one message.
func (b *Bag) Has(key string) bool {
	if b == nil {
		return false
	}
	return len(b.fields[TransformKey(key)]) > 0
}

// Get returns a copy of the messages stored for key.
func (b *Bag) Get(key string) []string {
	if b == nil {
		return nil
	}
	messages := b.fields[TransformKey(key)]
	if len(messages) == 0 {
		return nil
	}
	return append([]string(nil), messages...)
}

// First returns the first message for key formatted with format, or "" when
// key has no messages. The message is HTML-escaped before substitution; the
// format itself is trusted markup.
func (b *Bag) First(key, format string) string {
	messages := b.Get(key)
	if len(messages) == 0 {
		return ""
	}
	return Format(format, html.EscapeString(messages[0]))
}

// Keys lists field keys in insertion order.
func (b *Bag) Keys() []string {
	if b == nil || len(b.order) == 0 {
		return nil
	}
	return append([]string(nil), b.order...)
}

// SortedKeys lists field keys alphabetically.
func (b *Bag) SortedKeys() []string {
	keys := b.Keys()
	sort.Strings(keys)
	return keys
}

// Form returns the form-level messages.
func (b *Bag) Form() []string {
	if b == nil || len(b.form) == 0 {
		return nil
	}
	return append([]string(nil), b.form...)
}

// Count is the number of field messages plus form-level messages.
func (b *Bag) Count() int {
	if b == nil {
		return 0
	}
	total := len(b.form)
	for _, messages := range b.fields {
		total += len(messages)
	}
	return total
}

// Any reports whether the bag holds any message at all.
func (b *Bag) Any() bool {
	return b.Count() > 0
}

// Map returns a copy of the field messages.
func (b *Bag) Map() map[string][]string {
	if b == nil || len(b.fields) == 0 {
		return nil
	}
	out := make(map[string][]string, len(b.fields))
	for key, messages := range b.fields {
		out[key] = append([]string(nil), messages...)
	}
	return out
}

// Format substitutes message into every :message placeholder of format. An
// empty format returns the message unchanged.
func Format(format, message string) string {
	if format == "" {
		return message
	}
	return strings.ReplaceAll(format, MessagePlaceholder, message)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
