// Package label renders the <label> element of a form group. The Builder is
// two-phase: Closed emits a complete element, Open emits the opening tag and
// text only so a caller can wrap the field control and close it later.
package label

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formgroup/pkg/attrs"
)

// CloseTag terminates a label opened with Builder.Open.
const CloseTag = "</label>"

// HTML marks label content as markup. It is sanitised rather than escaped, so
// inline elements such as <abbr> or <span> survive while scripts and event
// handlers do not.
type HTML string

// Markup is implemented by values that produce their own label markup.
type Markup interface {
	LabelHTML() string
}

// Builder renders labels. The zero value is ready to use and sanitises HTML
// content with the package default policy.
type Builder struct {
	Policy *bluemonday.Policy
}

// Closed renders <label for="name" ...>content</label>. An empty name omits
// the for attribute.
func (b Builder) Closed(name string, value any, options attrs.Attributes) string {
	return b.Open(name, value, options) + CloseTag
}

// Open renders <label ...>content without the closing tag. A non-empty name
// binds the label and overrides any for option; otherwise a caller-supplied
// for is kept.
func (b Builder) Open(name string, value any, options attrs.Attributes) string {
	var builder strings.Builder
	builder.WriteString("<label")
	if name = strings.TrimSpace(name); name != "" {
		builder.WriteString(` for="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
		options = options.Without("for")
	}
	builder.WriteString(attrs.Serialize(options))
	builder.WriteByte('>')
	builder.WriteString(b.content(value))
	return builder.String()
}

func (b Builder) content(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case HTML:
		return b.sanitize(string(v))
	case Markup:
		return b.sanitize(v.LabelHTML())
	case string:
		return html.EscapeString(v)
	case fmt.Stringer:
		return html.EscapeString(v.String())
	default:
		return html.EscapeString(fmt.Sprint(v))
	}
}

func (b Builder) sanitize(raw string) string {
	policy := b.Policy
	if policy == nil {
		policy = defaultPolicy()
	}
	return strings.TrimSpace(policy.Sanitize(raw))
}

// Truthy reports whether value should produce a label at all. nil, false,
// zero numbers, "" and "0" do not.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != "" && v != "0"
	case HTML:
		return v != "" && v != "0"
	case bool:
		return v
	case Markup:
		return v.LabelHTML() != ""
	case fmt.Stringer:
		return v.String() != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func defaultPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("abbr", "b", "strong", "em", "i", "small", "span", "sup", "sub", "code")
		p.AllowAttrs("title").OnElements("abbr", "span")
		p.AllowAttrs("class").OnElements("span", "small", "abbr")
		p.AllowAttrs("aria-hidden").OnElements("span")
		policy = p
	})
	return policy
}
