package formgroup

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formgroup/pkg/label"
)

// LabelMode selects how group labels are emitted.
type LabelMode int

const (
	// LabelWrap leaves the label open around the control and closes it in
	// CloseGroup. The container receives the columns class.
	LabelWrap LabelMode = iota
	// LabelInline renders a self-closed label bound to the field with for.
	LabelInline
)

func (m LabelMode) String() string {
	switch m {
	case LabelWrap:
		return "wrap"
	case LabelInline:
		return "inline"
	default:
		return fmt.Sprintf("LabelMode(%d)", int(m))
	}
}

// ParseLabelMode accepts "wrap" or "inline" (case-insensitive).
func ParseLabelMode(value string) (LabelMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "wrap":
		return LabelWrap, nil
	case "inline":
		return LabelInline, nil
	default:
		return LabelWrap, fmt.Errorf("formgroup: unknown label mode %q", value)
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithErrors sets the validation context queried for field errors.
func WithErrors(source ErrorSource) Option {
	return func(r *Renderer) {
		r.errors = source
	}
}

// WithLabelMode selects the label lifecycle.
func WithLabelMode(mode LabelMode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// WithErrorTemplate overrides the markup used for the error block. The
// template must contain the :message placeholder.
func WithErrorTemplate(template string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(template) == "" {
			return
		}
		r.errorTemplate = template
	}
}

// WithErrorClass overrides the class added to labels of fields with errors.
// An empty class disables the injection.
func WithErrorClass(class string) Option {
	return func(r *Renderer) {
		r.errorClass = strings.TrimSpace(class)
	}
}

// WithColumnsClass overrides the class added to containers in LabelWrap
// mode. An empty class disables the injection.
func WithColumnsClass(class string) Option {
	return func(r *Renderer) {
		r.columnsClass = strings.TrimSpace(class)
	}
}

// WithKeyTransformer replaces the field name normalisation applied before
// error lookups.
func WithKeyTransformer(fn func(string) string) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.transformKey = fn
		}
	}
}

// WithLabelBuilder replaces the label renderer, e.g. to use a custom
// sanitisation policy.
func WithLabelBuilder(builder label.Builder) Option {
	return func(r *Renderer) {
		r.labels = builder
	}
}

// WithLogger routes debug and warning events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
