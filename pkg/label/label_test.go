package label_test

import (
	"testing"

	"github.com/goliatone/go-formgroup/pkg/attrs"
	"github.com/goliatone/go-formgroup/pkg/label"
)

type requiredMarker struct{ text string }

func (m requiredMarker) LabelHTML() string {
	return m.text + ` <abbr title="required">*</abbr>`
}

func TestBuilder_Closed(t *testing.T) {
	var b label.Builder

	got := b.Closed("email", "Email & Login", attrs.Of("class", "error"))
	want := `<label for="email" class="error">Email &amp; Login</label>`
	if got != want {
		t.Fatalf("closed label mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestBuilder_OpenOmitsForAndCloseTag(t *testing.T) {
	var b label.Builder

	got := b.Open("", "Email", nil)
	want := `<label>Email`
	if got != want {
		t.Fatalf("open label mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestBuilder_ForOptionIsIgnored(t *testing.T) {
	var b label.Builder

	got := b.Closed("name", "Name", attrs.Of("for", "other", "id", "lbl"))
	want := `<label for="name" id="lbl">Name</label>`
	if got != want {
		t.Fatalf("label mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestBuilder_OpenKeepsForWithoutName(t *testing.T) {
	var b label.Builder

	got := b.Open("", "Email", attrs.Of("for", "email-input", "class", "wide"))
	want := `<label for="email-input" class="wide">Email`
	if got != want {
		t.Fatalf("open label mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestBuilder_SanitisesMarkup(t *testing.T) {
	var b label.Builder

	got := b.Closed("", label.HTML(`Name <script>alert(1)</script><em onclick="x()">now</em>`), nil)
	want := `<label>Name <em>now</em></label>`
	if got != want {
		t.Fatalf("sanitised label mismatch\nwant: %s\ngot:  %s", want, got)
	}

	got = b.Closed("", requiredMarker{text: "Email"}, nil)
	want = `<label>Email <abbr title="required">*</abbr></label>`
	if got != want {
		t.Fatalf("markup label mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{"", false},
		{"Label", true},
		{"0", false},
		{"00", true},
		{label.HTML("0"), false},
		{label.HTML(""), false},
		{label.HTML("<b>x</b>"), true},
		{false, false},
		{true, true},
		{0, false},
		{1, true},
	}
	for _, tc := range cases {
		if got := label.Truthy(tc.value); got != tc.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
