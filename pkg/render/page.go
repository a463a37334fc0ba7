// Package render executes page templates that emit form groups. Every call
// builds its own formgroup.Renderer, so a single Page can serve concurrent
// requests while each render pass keeps a private group stack.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formgroup/pkg/formgroup"
	"github.com/goliatone/go-formgroup/pkg/render/template"
)

// ErrUnclosedGroups is returned when a template finishes with open groups.
var ErrUnclosedGroups = errors.New("render: template left form groups open")

// Page renders templates through a template.TemplateRenderer.
type Page struct {
	templates    template.TemplateRenderer
	groupOptions []formgroup.Option
	logger       *slog.Logger
}

// PageOption configures a Page.
type PageOption func(*Page)

// WithGroupOptions sets the options applied to every per-render
// formgroup.Renderer.
func WithGroupOptions(options ...formgroup.Option) PageOption {
	return func(p *Page) {
		p.groupOptions = append(p.groupOptions, options...)
	}
}

// WithLogger sets the logger used by the page and its group renderers.
func WithLogger(logger *slog.Logger) PageOption {
	return func(p *Page) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPage wraps a template engine.
func NewPage(templates template.TemplateRenderer, options ...PageOption) (*Page, error) {
	if templates == nil {
		return nil, errors.New("render: template renderer is required")
	}
	page := &Page{
		templates: templates,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(page)
		}
	}
	return page, nil
}

// Render executes the named template (or inline template content) with data
// plus the open_group/close_group helpers bound to a fresh group renderer
// that reports errs. Templates must close every group they open.
func (p *Page) Render(ctx context.Context, name string, data map[string]any, errs formgroup.ErrorSource, out ...io.Writer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	options := make([]formgroup.Option, 0, len(p.groupOptions)+2)
	options = append(options, formgroup.WithLogger(p.logger))
	options = append(options, p.groupOptions...)
	options = append(options, formgroup.WithErrors(errs))
	groups := formgroup.New(options...)

	view := make(map[string]any, len(data)+3)
	for key, value := range data {
		view[key] = value
	}
	for key, fn := range formgroup.TemplateFuncs(groups) {
		view[key] = fn
	}

	rendered, err := p.templates.Render(name, view)
	if err != nil {
		return "", fmt.Errorf("render: %s: %w", templateLabel(name), err)
	}

	if depth := groups.Depth(); depth > 0 {
		p.logger.Warn("template left form groups open",
			"template", templateLabel(name),
			"open", groups.OpenNames(),
		)
		return "", fmt.Errorf("render: %s: %w: %s", templateLabel(name), ErrUnclosedGroups, strings.Join(groups.OpenNames(), ", "))
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("render: write output: %w", err)
		}
	}
	return rendered, nil
}

func templateLabel(name string) string {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return "inline template"
	}
	return name
}
