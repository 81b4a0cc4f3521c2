package render

import (
	"strings"
	"testing"
)

func TestHasTiledGallery(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{`<div class="tiled-gallery type-rectangular">`, true},
		{`<div class='TILED-GALLERY'>`, true},
		{`<div class="tiled-gallery">`, true},
		{`<div class="tiled-gallery-item">`, false},
		{`<p>no gallery</p>`, false},
		{``, false},
	}

	for _, tt := range tests {
		if got := HasTiledGallery(tt.content); got != tt.want {
			t.Errorf("HasTiledGallery(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestTagGalleryElements(t *testing.T) {
	content := `<div class="tiled-gallery type-rectangular"><div class='gallery-row'>` +
		`<div class="gallery-group images-1"><div class="tiled-gallery-item tiled-gallery-item-large">` +
		`<img class="size-full" data-class="tiled-gallery"></div></div></div></div>`

	want := `<div class="tiled-gallery g1 type-rectangular"><div class='gallery-row g1'>` +
		`<div class="gallery-group g1 images-1"><div class="tiled-gallery-item g1 tiled-gallery-item-large">` +
		`<img class="size-full" data-class="tiled-gallery"></div></div></div></div>`

	got := TagGalleryElements(content, "g1")
	if got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}

	if again := TagGalleryElements(got, "g1"); again != got {
		t.Errorf("Expected tagging to be stable, got %s", again)
	}
}

func TestTagGalleryElementsWithoutClass(t *testing.T) {
	content := `<div class="tiled-gallery">`
	if got := TagGalleryElements(content, ""); got != content {
		t.Errorf("Expected content unchanged, got %q", got)
	}
}

func TestNewGalleryClass(t *testing.T) {
	class := NewGalleryClass()
	if !strings.HasPrefix(class, "gallery-only-class") || len(class) <= len("gallery-only-class") {
		t.Errorf("Unexpected gallery class %q", class)
	}
}
