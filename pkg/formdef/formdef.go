// Package formdef describes forms declaratively so they can be rendered as
// nested form groups without writing templates. Definitions are YAML (or
// JSON) documents:
//
//	forms:
//	  - id: signup
//	    title: Create account
//	    groups:
//	      - name: email
//	        label: Email
//	        options: {class: row}
//	        control: <input type="email" name="email">
//
// Controls are trusted markup supplied by the definition author; formdef does
// not render inputs itself.
package formdef

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgroup/pkg/attrs"
	"github.com/goliatone/go-formgroup/pkg/formgroup"
	"github.com/goliatone/go-formgroup/pkg/label"
)

// ErrFormNotFound is returned by Document.Form for unknown ids.
var ErrFormNotFound = errors.New("formdef: form not found")

// Document is a collection of forms.
type Document struct {
	Forms []Form `yaml:"forms"`
}

// Form is a titled list of top-level groups.
type Form struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title,omitempty"`
	Groups []Group `yaml:"groups"`
}

// Group is one form group. Nested groups render between the control and the
// group's closing markup.
type Group struct {
	Name         string           `yaml:"name"`
	Label        string           `yaml:"label,omitempty"`
	LabelHTML    bool             `yaml:"labelHtml,omitempty"`
	Options      attrs.Attributes `yaml:"options,omitempty"`
	LabelOptions attrs.Attributes `yaml:"labelOptions,omitempty"`
	Control      string           `yaml:"control,omitempty"`
	Groups       []Group          `yaml:"groups,omitempty"`
}

// Load decodes a definition document.
func Load(r io.Reader) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, errors.New("formdef: document is empty")
		}
		return Document{}, fmt.Errorf("formdef: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// LoadFile reads and decodes a definition file.
func LoadFile(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("formdef: open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := Load(file)
	if err != nil {
		return Document{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return doc, nil
}

// Validate checks that form ids are present and unique.
func (d Document) Validate() error {
	if len(d.Forms) == 0 {
		return errors.New("formdef: document defines no forms")
	}
	seen := make(map[string]struct{}, len(d.Forms))
	for i, form := range d.Forms {
		id := strings.TrimSpace(form.ID)
		if id == "" {
			return fmt.Errorf("formdef: form #%d has an empty id", i+1)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("formdef: duplicate form id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IDs lists the form ids in document order.
func (d Document) IDs() []string {
	ids := make([]string, 0, len(d.Forms))
	for _, form := range d.Forms {
		ids = append(ids, form.ID)
	}
	return ids
}

// Form returns the form with id, or the only form when id is empty and the
// document holds exactly one.
func (d Document) Form(id string) (Form, error) {
	id = strings.TrimSpace(id)
	if id == "" && len(d.Forms) == 1 {
		return d.Forms[0], nil
	}
	for _, form := range d.Forms {
		if form.ID == id {
			return form, nil
		}
	}
	if id == "" {
		return Form{}, fmt.Errorf("%w: document holds %d forms, pick one of %s", ErrFormNotFound, len(d.Forms), strings.Join(d.IDs(), ", "))
	}
	return Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
}

// Render walks the groups depth-first through r. Every group opened here is
// closed here, so r ends at the depth it started at.
func (f Form) Render(r *formgroup.Renderer) (string, error) {
	var builder strings.Builder
	for _, group := range f.Groups {
		if err := renderGroup(&builder, r, group); err != nil {
			return "", fmt.Errorf("formdef: render form %q: %w", f.ID, err)
		}
	}
	return builder.String(), nil
}

func renderGroup(builder *strings.Builder, r *formgroup.Renderer, group Group) error {
	var labelValue any
	if group.Label != "" {
		labelValue = group.Label
		if group.LabelHTML {
			labelValue = label.HTML(group.Label)
		}
	}

	builder.WriteString(r.OpenGroup(group.Name, labelValue, group.Options, group.LabelOptions))
	builder.WriteString(group.Control)
	for _, child := range group.Groups {
		if err := renderGroup(builder, r, child); err != nil {
			return err
		}
	}

	closing, err := r.CloseGroupNamed(group.Name)
	if err != nil {
		return err
	}
	builder.WriteString(closing)
	return nil
}
