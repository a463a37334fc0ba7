package formgroup_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgroup/pkg/attrs"
	"github.com/goliatone/go-formgroup/pkg/formgroup"
)

func TestTemplateFuncs(t *testing.T) {
	r := formgroup.New(formgroup.WithLabelMode(formgroup.LabelInline))
	funcs := formgroup.TemplateFuncs(r)

	open := funcs[formgroup.FuncOpenGroup].(func(string, ...any) (string, error))
	closeGroup := funcs[formgroup.FuncCloseGroup].(func() (string, error))
	closeNamed := funcs[formgroup.FuncCloseGroupNamed].(func(string) (string, error))

	got, err := open("email", "Email", map[string]any{"class": "row", "errorBlock": true}, map[string]string{"id": "lbl"})
	if err != nil {
		t.Fatalf("open_group: %v", err)
	}
	want := `<div class="row"><label for="email" id="lbl">Email</label>`
	if got != want {
		t.Fatalf("open_group mismatch\nwant: %s\ngot:  %s", want, got)
	}

	if _, err := open("x", "X", 42); err == nil {
		t.Fatalf("expected error for unsupported options type")
	}
	if _, err := closeNamed("x"); !errors.Is(err, formgroup.ErrGroupMismatch) {
		t.Fatalf("expected mismatch for x, got %v", err)
	}
	if _, err := closeNamed("email"); err != nil {
		t.Fatalf("close_group_named: %v", err)
	}
	if _, err := closeGroup(); !errors.Is(err, formgroup.ErrStackUnderflow) {
		t.Fatalf("expected underflow, got %v", err)
	}
}

func TestWithTheme(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "foundation",
		Variant: "default",
		Tokens: map[string]string{
			formgroup.TokenErrorClass:    "is-invalid-label",
			formgroup.TokenColumnsClass:  "small-12 columns",
			formgroup.TokenErrorTemplate: `<span class="form-error is-visible">:message</span>`,
		},
	}
	r := formgroup.New(
		formgroup.WithTheme(cfg),
		formgroup.WithErrors(stubErrors{"name": "Name is required"}),
	)

	open := r.OpenGroup("name", "Name", attrs.Of("class", "row"), nil)
	if want := `<div class="row small-12 columns"><label class="is-invalid-label">Name`; open != want {
		t.Fatalf("open mismatch\nwant: %s\ngot:  %s", want, open)
	}
	closing, err := r.CloseGroup()
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if want := `</label><span class="form-error is-visible">Name is required</span></div>`; closing != want {
		t.Fatalf("close mismatch\nwant: %s\ngot:  %s", want, closing)
	}
}

func TestWithTheme_LabelMode(t *testing.T) {
	r := formgroup.New(formgroup.WithTheme(&theme.RendererConfig{
		Tokens: map[string]string{formgroup.TokenLabelMode: "inline"},
	}))

	if got := r.OpenGroup("a", "A", nil, nil); got != `<div><label for="a">A</label>` {
		t.Fatalf("theme label mode not applied: %s", got)
	}
}

func TestTemplateFuncs_AttributesKeepOrder(t *testing.T) {
	r := formgroup.New()
	open := formgroup.TemplateFuncs(r)[formgroup.FuncOpenGroup].(func(string, ...any) (string, error))

	got, err := open("email", nil, attrs.Of("id", "group-email", "class", "row", "data-x", "1"))
	if err != nil {
		t.Fatalf("open_group: %v", err)
	}
	if want := `<div id="group-email" class="row columns" data-x="1">`; got != want {
		t.Fatalf("open_group mismatch\nwant: %s\ngot:  %s", want, got)
	}
}
