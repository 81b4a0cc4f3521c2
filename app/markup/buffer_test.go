package markup

import "testing"

func TestBufferApply(t *testing.T) {
	content := `<img src="a.jpg"><p>text</p><img src="b.jpg">`
	buf := NewBuffer(content)

	for _, m := range ScanAll(content, Image) {
		if !buf.Replace(m, "["+m.URL+"]") {
			t.Fatalf("Expected replacement of %q to be queued", m.Tag)
		}
	}

	if buf.Pending() != 2 {
		t.Errorf("Expected 2 pending edits, got %d", buf.Pending())
	}

	got := buf.Apply()
	want := `[a.jpg]<p>text</p>[b.jpg]`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if buf.Snapshot() != want || buf.Pending() != 0 {
		t.Error("Expected applied result to become the new snapshot")
	}
}

func TestBufferStaleOffsetFallsBack(t *testing.T) {
	buf := NewBuffer(`<p>x</p><img src="a.jpg">`)

	if !buf.Replace(TagMatch{Tag: `<img src="a.jpg">`, Offset: 0}, "IMG") {
		t.Fatal("Expected fallback to textual search")
	}
	if got := buf.Apply(); got != "<p>x</p>IMG" {
		t.Errorf("Unexpected result %q", got)
	}
}

func TestBufferMissingTag(t *testing.T) {
	buf := NewBuffer(`<p>x</p>`)

	if buf.Replace(TagMatch{Tag: `<img src="a.jpg">`, Offset: 3}, "IMG") {
		t.Error("Expected missing tag to be skipped")
	}
	if buf.Replace(TagMatch{}, "IMG") {
		t.Error("Expected empty match to be skipped")
	}
	if got := buf.Apply(); got != "<p>x</p>" {
		t.Errorf("Expected content unchanged, got %q", got)
	}
}

func TestBufferRejectsOverlap(t *testing.T) {
	content := `<img src="a.jpg">`
	buf := NewBuffer(content)
	m := ScanAll(content, Image)[0]

	if !buf.Replace(m, "first") {
		t.Fatal("Expected first replacement to be queued")
	}
	if buf.Replace(m, "second") {
		t.Error("Expected overlapping replacement to be rejected")
	}
	if got := buf.Apply(); got != "first" {
		t.Errorf("Expected first replacement only, got %q", got)
	}
}
