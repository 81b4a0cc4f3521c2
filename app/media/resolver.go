package media

import (
	"net/url"
	"strings"

	"github.com/lysyi3m/reader-render/app/markup"
)

// Resolver finds the original size of an image. Sources are tried in a fixed
// priority order and the first one that applies wins:
//
//  1. the attachment size index
//  2. the data-orig-size attribute
//  3. w and h query parameters
//  4. a resize=W,H query parameter with exactly two parts
//  5. the width and height attributes
type Resolver struct{}

// Resolve returns nil when no source applies.
func (Resolver) Resolve(tag, imageURL string, index *SizeIndex) *ImageSize {
	if size, ok := index.Lookup(imageURL); ok {
		return &size
	}

	attrs := markup.ParseAttrs(tag)

	if orig, ok := attrs.Get("data-orig-size"); ok {
		width, height, _ := strings.Cut(orig, ",")
		return &ImageSize{Width: markup.Atoi(width), Height: markup.Atoi(height)}
	}

	if size := sizeFromQuery(imageURL); size != nil {
		return size
	}

	if attrs.Has("width") {
		return &ImageSize{Width: attrs.Int("width"), Height: attrs.Int("height")}
	}

	return nil
}

func sizeFromQuery(imageURL string) *ImageSize {
	if !strings.Contains(imageURL, "?") {
		return nil
	}

	u, err := url.Parse(strings.ReplaceAll(imageURL, "&#038;", "&"))
	if err != nil {
		return nil
	}
	query := u.Query()

	if query.Has("w") {
		return &ImageSize{Width: markup.Atoi(query.Get("w")), Height: markup.Atoi(query.Get("h"))}
	}

	if resize := query.Get("resize"); resize != "" {
		parts := strings.Split(resize, ",")
		if len(parts) == 2 {
			return &ImageSize{Width: markup.Atoi(parts[0]), Height: markup.Atoi(parts[1])}
		}
	}

	return nil
}
