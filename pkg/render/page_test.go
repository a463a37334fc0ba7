package render_test

import (
	"context"
	"embed"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-formgroup/pkg/attrs"
	"github.com/goliatone/go-formgroup/pkg/errorbag"
	"github.com/goliatone/go-formgroup/pkg/formgroup"
	"github.com/goliatone/go-formgroup/pkg/label"
	"github.com/goliatone/go-formgroup/pkg/render"
	"github.com/goliatone/go-formgroup/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgroup/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWithGlobals(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": "acme"}))

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("greeting", map[string]any{"name": "Ada"}, w)
	})

	want := "Hello Ada from acme\n"
	if result != want || written != want {
		t.Fatalf("render mismatch\nwant: %q\nresult: %q\nwritten: %q", want, result, written)
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func TestPage_RenderGolden(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	errs := errorbag.New().Add("email", "Email is required")
	out, err := page.Render(testsupport.Context(), "signup", map[string]any{
		"action":        "/signup",
		"group_options": map[string]any{"class": "row", "errorBlock": true},
	}, errs)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertGolden(t, filepath.Join("testdata", "signup.golden.html"), out)
}

func TestPage_InlineTemplateWithInlineLabels(t *testing.T) {
	page, err := render.NewPage(newEngine(t), render.WithGroupOptions(
		formgroup.WithLabelMode(formgroup.LabelInline),
	))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	out, err := page.Render(context.Background(), `{{ open_group("name", "Name")|safe }}{{ close_group()|safe }}`, nil, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<div><label for="name">Name</label></div>`; out != want {
		t.Fatalf("inline render mismatch\nwant: %s\ngot:  %s", want, out)
	}
}

func TestPage_OrderedAttributesReachTemplateFuncs(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	out, err := page.Render(context.Background(), `{{ open_group("email", "Email", field.options, field.label_options)|safe }}{{ close_group()|safe }}`, map[string]any{
		"field": map[string]any{
			"options":       attrs.Of("id", "group-email", "data-x", "1", "class", "row", "errorBlock", true),
			"label_options": attrs.Of("title", "Work", "class", "wide"),
		},
	}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div id="group-email" data-x="1" class="row columns"><label title="Work" class="wide">Email</label></div>`
	if out != want {
		t.Fatalf("attribute order lost\nwant: %s\ngot:  %s", want, out)
	}
}

func TestPage_LabelMarkupIsSanitisedNotEscaped(t *testing.T) {
	page, err := render.NewPage(newEngine(t), render.WithGroupOptions(
		formgroup.WithLabelMode(formgroup.LabelInline),
	))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	out, err := page.Render(context.Background(), `{{ open_group("email", lbl)|safe }}{{ close_group()|safe }}`, map[string]any{
		"lbl": label.HTML(`Email <abbr title="required">*</abbr><script>alert(1)</script>`),
	}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div><label for="email">Email <abbr title="required">*</abbr></label></div>`
	if out != want {
		t.Fatalf("label markup mismatch\nwant: %s\ngot:  %s", want, out)
	}
}

func TestPage_UnclosedGroups(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	_, err = page.Render(context.Background(), "unclosed", nil, nil)
	if !errors.Is(err, render.ErrUnclosedGroups) {
		t.Fatalf("expected ErrUnclosedGroups, got %v", err)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("error should name the open group: %v", err)
	}
}

func TestPage_UnderflowFailsRender(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	_, err = page.Render(context.Background(), `{{ close_group()|safe }}`, nil, nil)
	if err == nil {
		t.Fatalf("expected render error on close without open")
	}
}

func TestPage_CancelledContext(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := page.Render(ctx, "greeting", nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPage_ConcurrentRendersKeepSeparateStacks(t *testing.T) {
	page, err := render.NewPage(newEngine(t))
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	errs := errorbag.New().Add("email", "Email is required")
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "signup.golden.html"))

	var wg sync.WaitGroup
	failures := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := page.Render(context.Background(), "signup", map[string]any{
				"action":        "/signup",
				"group_options": map[string]any{"class": "row"},
			}, errs)
			if err != nil {
				failures <- err.Error()
				return
			}
			if out != want {
				failures <- out
			}
		}()
	}
	wg.Wait()
	close(failures)

	for failure := range failures {
		t.Fatalf("concurrent render failed: %s", failure)
	}
}

func TestNewPage_RequiresEngine(t *testing.T) {
	if _, err := render.NewPage(nil); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}
