package markup

import (
	"strings"
	"testing"
)

func TestStripInlineStyles(t *testing.T) {
	content := `<p style="color:red">Hello</p><div style='margin:0'><img src="a.jpg" style="width:10px"></div>`

	got := StripInlineStyles(content)

	if strings.Contains(got, "style") {
		t.Errorf("Expected style attributes to be removed, got %q", got)
	}
	if !strings.Contains(got, "Hello") || !strings.Contains(got, `src="a.jpg"`) {
		t.Errorf("Expected content to be kept, got %q", got)
	}
}

func TestStripInlineStylesIdempotent(t *testing.T) {
	content := `<p style="color:red">One <b style="x">two</b></p><blockquote>three</blockquote>`

	once := StripInlineStyles(content)
	twice := StripInlineStyles(once)

	if once != twice {
		t.Errorf("Expected stable output, got %q then %q", once, twice)
	}
}

func TestStripInlineStylesEmpty(t *testing.T) {
	if got := StripInlineStyles(""); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestStripInlineStylesMalformed(t *testing.T) {
	content := `<p style="color:red">unclosed <div><span style="a">`

	got := StripInlineStyles(content)
	if strings.Contains(got, "style") {
		t.Errorf("Expected style attributes to be removed, got %q", got)
	}
	if !strings.Contains(got, "unclosed") {
		t.Errorf("Expected text to be kept, got %q", got)
	}
}
