package markup

import (
	"strings"
	"testing"
)

func TestScannerImages(t *testing.T) {
	content := `<p>Intro</p><img src="a.jpg" width="10"><p>x</p><IMG SRC='b.png' /><img alt="no source">`

	matches := ScanAll(content, Image)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	if matches[0].URL != "a.jpg" {
		t.Errorf("Expected first URL a.jpg, got %q", matches[0].URL)
	}
	if matches[0].Tag != `<img src="a.jpg" width="10">` {
		t.Errorf("Unexpected first tag %q", matches[0].Tag)
	}
	if matches[0].Offset != strings.Index(content, `<img src="a.jpg"`) {
		t.Errorf("Unexpected first offset %d", matches[0].Offset)
	}
	if matches[0].Attrs.Int("width") != 10 {
		t.Errorf("Expected width 10, got %d", matches[0].Attrs.Int("width"))
	}

	if matches[1].URL != "b.png" {
		t.Errorf("Expected second URL b.png, got %q", matches[1].URL)
	}
	if matches[1].Tag != `<IMG SRC='b.png' />` {
		t.Errorf("Expected original tag case to be kept, got %q", matches[1].Tag)
	}
	if content[matches[1].Offset:matches[1].Offset+len(matches[1].Tag)] != matches[1].Tag {
		t.Error("Expected offset to point at the tag text")
	}
}

func TestScannerIgnoresOtherElements(t *testing.T) {
	content := `<iframe src="https://example.com/v"></iframe><imgx src="a.jpg">`

	if Contains(content, Image) {
		t.Error("Expected no image matches")
	}

	matches := ScanAll(content, Iframe)
	if len(matches) != 1 || matches[0].URL != "https://example.com/v" {
		t.Errorf("Unexpected iframe matches: %+v", matches)
	}
}

func TestScannerUnterminatedTag(t *testing.T) {
	content := `<p>a</p><img src="ok.jpg"><img src="broken.jpg"`

	matches := ScanAll(content, Image)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].URL != "ok.jpg" {
		t.Errorf("Expected ok.jpg, got %q", matches[0].URL)
	}
}

func TestScannerEmptyContent(t *testing.T) {
	scanner := NewScanner("", Image)
	if scanner.Next() {
		t.Error("Expected no match in empty content")
	}
	if scanner.Next() {
		t.Error("Expected exhausted scanner to stay exhausted")
	}
}

func TestScannerAcceptAndFixedURL(t *testing.T) {
	family := Family{
		Name:    "quote",
		Element: "blockquote",
		URL:     "https://example.com/embed.js",
		Accept: func(attrs Attrs) bool {
			return attrs.HasClassPrefix("embed-")
		},
	}
	content := `<blockquote>plain</blockquote><blockquote class="note embed-post">x</blockquote>`

	matches := ScanAll(content, family)
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].URL != family.URL {
		t.Errorf("Expected fixed URL, got %q", matches[0].URL)
	}
}

func TestParseAttrs(t *testing.T) {
	attrs := ParseAttrs(`<img SRC="a.jpg" data-orig-size="800,600" class="one two" width="abc" src="ignored">`)

	if v, _ := attrs.Get("src"); v != "a.jpg" {
		t.Errorf("Expected first src to win, got %q", v)
	}
	if v, _ := attrs.Get("data-orig-size"); v != "800,600" {
		t.Errorf("Unexpected data-orig-size %q", v)
	}
	if attrs.Int("width") != 0 {
		t.Error("Expected non-numeric width to be 0")
	}
	if !attrs.HasClass("two") || attrs.HasClass("tw") {
		t.Error("Unexpected class matching")
	}
	if attrs.Has("height") {
		t.Error("Expected no height attribute")
	}

	if len(ParseAttrs("plain text")) != 0 {
		t.Error("Expected no attributes without a tag")
	}
}

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"800", 800},
		{" 42 ", 42},
		{"", 0},
		{"12px", 0},
		{"-3", 0},
	}

	for _, tt := range tests {
		if got := Atoi(tt.in); got != tt.want {
			t.Errorf("Atoi(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScannerMatchesDoNotOverlap(t *testing.T) {
	tests := []struct {
		name    string
		content string
		urls    []string
	}{
		{
			name:    "quoted angle bracket in attribute",
			content: `<img src="a.jpg" alt='say "hi" <b>'><img src=b.jpg>`,
			urls:    []string{"a.jpg", "b.jpg"},
		},
		{
			name:    "greater-than inside double quotes",
			content: `<img alt="1 > 0" src="a.jpg"><p>x</p><img src="b.jpg">`,
			urls:    []string{"a.jpg", "b.jpg"},
		},
		{
			name:    "adjacent tags",
			content: `<img src=a.jpg><img src=b.jpg><img src=c.jpg>`,
			urls:    []string{"a.jpg", "b.jpg", "c.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := ScanAll(tt.content, Image)
			if len(matches) != len(tt.urls) {
				t.Fatalf("Expected %d matches, got %d: %+v", len(tt.urls), len(matches), matches)
			}

			for i, match := range matches {
				if match.URL != tt.urls[i] {
					t.Errorf("Expected match %d URL %q, got %q", i, tt.urls[i], match.URL)
				}
				end := match.Offset + len(match.Tag)
				if end > len(tt.content) || tt.content[match.Offset:end] != match.Tag {
					t.Errorf("Expected match %d offset %d to point at %q", i, match.Offset, match.Tag)
					continue
				}
				if i+1 < len(matches) && end > matches[i+1].Offset {
					t.Errorf("Expected match %d ending at %d not to overlap next offset %d", i, end, matches[i+1].Offset)
				}
			}
		})
	}
}

func TestScannerQuotedAttributeOffsets(t *testing.T) {
	content := `<img src="a.jpg" alt='say "hi" <b>'><img src=b.jpg>`

	matches := ScanAll(content, Image)
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Offset != 0 || matches[1].Offset != 36 {
		t.Errorf("Expected offsets 0 and 36, got %d and %d", matches[0].Offset, matches[1].Offset)
	}
	if alt, _ := matches[0].Attrs.Get("alt"); alt != `say "hi" <b>` {
		t.Errorf("Unexpected alt %q", alt)
	}
}
