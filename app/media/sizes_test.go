package media

import "testing"

func TestNewSizeIndex(t *testing.T) {
	content := `<p><img src="https://example.com/wp/a.jpg?w=100"><img src="https://example.com/wp/b.png"></p>`
	attachments := `{
		"1": {"mime_type": "image/jpeg", "URL": "https://example.com/wp/a.jpg", "width": 1600, "height": 900},
		"2": {"mime_type": "image/png", "URL": "https://example.com/wp/b.png", "width": "640", "height": 480, "data-orig-size": "2000,1000"},
		"3": {"mime_type": "image/jpeg", "URL": "https://example.com/wp/unused.jpg", "width": 10, "height": 10},
		"4": {"mime_type": "video/mp4", "URL": "https://example.com/wp/a.jpg", "width": 1, "height": 1},
		"5": "not an object"
	}`

	index := NewSizeIndex(content, attachments)

	if index.Len() != 2 {
		t.Fatalf("Expected 2 indexed attachments, got %d", index.Len())
	}

	size, ok := index.Lookup("https://example.com/wp/a.jpg?resize=10,10")
	if !ok || size != (ImageSize{Width: 1600, Height: 900}) {
		t.Errorf("Unexpected size for a.jpg: %+v, %v", size, ok)
	}

	size, ok = index.Lookup("HTTPS://EXAMPLE.com/wp/b.png")
	if !ok || size != (ImageSize{Width: 2000, Height: 1000}) {
		t.Errorf("Expected data-orig-size override for b.png, got %+v, %v", size, ok)
	}

	if _, ok := index.Lookup("https://example.com/wp/unused.jpg"); ok {
		t.Error("Expected attachment missing from content to be skipped")
	}
}

func TestNewSizeIndexEmpty(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"blank", ""},
		{"empty object", "{}"},
		{"malformed", `{"1": {`},
		{"array", `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := NewSizeIndex("<img src='a.jpg'>", tt.json)
			if index.Len() != 0 {
				t.Errorf("Expected empty index, got %d entries", index.Len())
			}
		})
	}
}

func TestSizeIndexNil(t *testing.T) {
	var index *SizeIndex
	if _, ok := index.Lookup("https://example.com/a.jpg"); ok {
		t.Error("Expected nil index to find nothing")
	}
}
