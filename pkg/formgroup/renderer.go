package formgroup

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formgroup/pkg/attrs"
	"github.com/goliatone/go-formgroup/pkg/errorbag"
	"github.com/goliatone/go-formgroup/pkg/label"
)

const (
	// ErrorBlockKey is consumed by the renderer and never emitted as an
	// attribute.
	ErrorBlockKey = "errorBlock"

	DefaultErrorClass    = "error"
	DefaultColumnsClass  = "columns"
	DefaultErrorTemplate = `<small class="error">:message</small>`
)

// ErrorSource is the validation context of the current request.
type ErrorSource interface {
	Has(key string) bool
	First(key, format string) string
}

var _ ErrorSource = (*errorbag.Bag)(nil)

// group is one open form group. Name, options and label state travel
// together so the stack cannot desynchronise.
type group struct {
	name     string
	options  attrs.Attributes
	hasLabel bool
}

// Renderer emits form-group markup and tracks the stack of open groups. A
// Renderer holds per-render state: build one per render pass and never share
// it between goroutines.
type Renderer struct {
	stack []group

	mode          LabelMode
	errors        ErrorSource
	errorTemplate string
	errorClass    string
	columnsClass  string
	transformKey  func(string) string
	labels        label.Builder
	logger        *slog.Logger
}

// New constructs a Renderer. Without options it renders in LabelWrap mode
// and reports no errors.
func New(options ...Option) *Renderer {
	r := &Renderer{
		mode:          LabelWrap,
		errorTemplate: DefaultErrorTemplate,
		errorClass:    DefaultErrorClass,
		columnsClass:  DefaultColumnsClass,
		transformKey:  errorbag.TransformKey,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// OpenGroup pushes a group for name and returns the container opening tag
// followed by the label markup. label may be a string, label.HTML, a
// label.Markup or nil; a falsy label renders no label element. options
// configure the container (the errorBlock key is dropped) and labelOptions
// the label element. Neither slice is mutated.
func (r *Renderer) OpenGroup(name string, labelValue any, options, labelOptions attrs.Attributes) string {
	options = options.Clone()
	labelOptions = labelOptions.Clone()

	if r.mode == LabelWrap && r.columnsClass != "" {
		options = attrs.AppendClass(r.columnsClass, options)
	}

	hasLabel := label.Truthy(labelValue)
	r.stack = append(r.stack, group{
		name:     name,
		options:  options,
		hasLabel: hasLabel && r.mode == LabelWrap,
	})

	if r.hasErrors(name) && r.errorClass != "" {
		labelOptions = attrs.AppendClass(r.errorClass, labelOptions)
	}

	labelMarkup := ""
	if hasLabel {
		if r.mode == LabelWrap {
			labelMarkup = r.labels.Open("", labelValue, labelOptions)
		} else {
			labelMarkup = r.labels.Closed(name, labelValue, labelOptions)
		}
	}

	r.logger.Debug("form group opened",
		"name", name,
		"depth", len(r.stack),
		"label", hasLabel,
	)

	return "<div" + attrs.Serialize(options.Without(ErrorBlockKey)) + ">" + labelMarkup
}

// CloseGroup pops the innermost group and returns its closing markup: the
// label close tag when the label was left open, the formatted first error
// for the field (or nothing) and the container close tag. It returns
// ErrStackUnderflow when no group is open.
func (r *Renderer) CloseGroup() (string, error) {
	if len(r.stack) == 0 {
		r.logger.Warn("form group closed with no open group")
		return "", fmt.Errorf("formgroup: close group: %w", ErrStackUnderflow)
	}
	return r.pop(), nil
}

// CloseGroupNamed closes the innermost group after checking it is name. On a
// mismatch the stack is left untouched and ErrGroupMismatch is returned.
func (r *Renderer) CloseGroupNamed(name string) (string, error) {
	if len(r.stack) == 0 {
		r.logger.Warn("form group closed with no open group", "expected", name)
		return "", fmt.Errorf("formgroup: close group %q: %w", name, ErrStackUnderflow)
	}
	if current := r.stack[len(r.stack)-1].name; current != name {
		r.logger.Warn("form group closed out of order", "expected", name, "open", current)
		return "", fmt.Errorf("formgroup: close group %q while %q is open: %w", name, current, ErrGroupMismatch)
	}
	return r.pop(), nil
}

// MustCloseGroup is CloseGroup for callers that treat underflow as a
// programming error.
func (r *Renderer) MustCloseGroup() string {
	out, err := r.CloseGroup()
	if err != nil {
		panic(err)
	}
	return out
}

// Depth is the number of open groups.
func (r *Renderer) Depth() int {
	return len(r.stack)
}

// OpenNames lists the open group names, outermost first.
func (r *Renderer) OpenNames() []string {
	if len(r.stack) == 0 {
		return nil
	}
	names := make([]string, len(r.stack))
	for i, g := range r.stack {
		names[i] = g.name
	}
	return names
}

// Options returns the container options recorded for the innermost open
// group, including injected classes.
func (r *Renderer) Options() (attrs.Attributes, bool) {
	if len(r.stack) == 0 {
		return nil, false
	}
	return r.stack[len(r.stack)-1].options.Clone(), true
}

func (r *Renderer) pop() string {
	last := len(r.stack) - 1
	current := r.stack[last]
	r.stack[last] = group{}
	r.stack = r.stack[:last]

	errorFragment := r.formattedErrors(current.name)

	r.logger.Debug("form group closed",
		"name", current.name,
		"depth", len(r.stack),
		"error", errorFragment != "",
	)

	var builder strings.Builder
	if current.hasLabel {
		builder.WriteString(label.CloseTag)
	}
	builder.WriteString(errorFragment)
	builder.WriteString("</div>")
	return builder.String()
}

func (r *Renderer) hasErrors(name string) bool {
	if isNilSource(r.errors) {
		return false
	}
	return r.errors.Has(r.transformKey(name))
}

func (r *Renderer) formattedErrors(name string) string {
	if !r.hasErrors(name) {
		return ""
	}
	return r.errors.First(r.transformKey(name), r.errorTemplate)
}

func isNilSource(source ErrorSource) bool {
	if source == nil {
		return true
	}
	if bag, ok := source.(*errorbag.Bag); ok && bag == nil {
		return true
	}
	return false
}
