package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgroup/pkg/errorbag"
	"github.com/goliatone/go-formgroup/pkg/formgroup"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"label_mode: inline",
		"error_class: is-invalid",
		"theme: acme",
		"tokens:",
		"  formgroup.errorTemplate: '<p class=\"help\">:message</p>'",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LabelMode != "inline" || cfg.ErrorClass != "is-invalid" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ErrorTemplate != formgroup.DefaultErrorTemplate {
		t.Fatalf("error template default lost: %q", cfg.ErrorTemplate)
	}

	themeCfg := cfg.ThemeConfig()
	if themeCfg == nil || themeCfg.Theme != "acme" {
		t.Fatalf("expected theme config, got %+v", themeCfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "label_mode: sideways\n")); err == nil {
		t.Fatalf("expected error for unknown label mode")
	}
	if _, err := Load(writeConfig(t, "label_mode: [\n")); err == nil {
		t.Fatalf("expected parse error")
	}
	file := writeConfig(t, "")
	if _, err := Load(writeConfig(t, "template_dir: "+file+"\n")); err == nil {
		t.Fatalf("expected error for template_dir pointing at a file")
	}
}

func TestGroupOptions_DrivesRenderer(t *testing.T) {
	columns := "grid"
	cfg := Default()
	cfg.ColumnsClass = &columns
	cfg.Tokens = map[string]string{formgroup.TokenErrorClass: "is-invalid"}

	options, err := cfg.GroupOptions(nil)
	if err != nil {
		t.Fatalf("group options: %v", err)
	}
	options = append(options, formgroup.WithErrors(errorbag.New().Add("name", "Required")))

	r := formgroup.New(options...)
	got := r.OpenGroup("name", "Name", nil, nil)
	want := `<div class="grid"><label class="is-invalid">Name`
	if got != want {
		t.Fatalf("open mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestGroupOptions_RejectsUnknownMode(t *testing.T) {
	cfg := Default()
	cfg.LabelMode = "nope"
	if _, err := cfg.GroupOptions(nil); err == nil {
		t.Fatalf("expected error")
	}
}
