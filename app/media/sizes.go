// Package media resolves image dimensions and rewrites image and iframe tags
// to fit the display metrics of a render.
package media

import (
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lysyi3m/reader-render/app/markup"
)

// ImageSize is a width/height pair in device-independent pixels. Zero means
// unknown.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s ImageSize) HasWidth() bool {
	return s.Width > 0
}

// SizeIndex maps normalized attachment URLs to their original sizes. It is
// built once per content item and read-only afterwards.
type SizeIndex struct {
	sizes map[string]ImageSize
}

type attachment struct {
	MimeType string  `json:"mime_type"`
	URL      string  `json:"URL"`
	Width    flexInt `json:"width"`
	Height   flexInt `json:"height"`
	OrigSize string  `json:"data-orig-size"`
}

// flexInt accepts both JSON numbers and numeric strings, degrading to 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || n < 0 {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// NewSizeIndex parses the attachments JSON of an item. Only image
// attachments whose URL path appears in content are indexed. Malformed JSON
// yields an empty index.
func NewSizeIndex(content, attachmentsJSON string) *SizeIndex {
	index := &SizeIndex{sizes: make(map[string]ImageSize)}

	trimmed := strings.TrimSpace(attachmentsJSON)
	if trimmed == "" || trimmed == "{}" {
		return index
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		slog.Warn("Failed to parse attachments", "error", err)
		return index
	}

	for id, raw := range entries {
		var a attachment
		if err := json.Unmarshal(raw, &a); err != nil {
			slog.Debug("Skipping malformed attachment", "id", id, "error", err)
			continue
		}
		if !strings.HasPrefix(a.MimeType, "image") || a.URL == "" {
			continue
		}

		key := sizeKey(a.URL)
		if path := urlPath(key); path == "" || !strings.Contains(content, path) {
			continue
		}

		size := ImageSize{Width: int(a.Width), Height: int(a.Height)}
		if parts := strings.Split(a.OrigSize, ","); len(parts) == 2 {
			size = ImageSize{Width: markup.Atoi(parts[0]), Height: markup.Atoi(parts[1])}
		}

		index.sizes[key] = size
	}

	return index
}

// Lookup returns the indexed size of imageURL, ignoring its query string.
func (i *SizeIndex) Lookup(imageURL string) (ImageSize, bool) {
	if i == nil {
		return ImageSize{}, false
	}
	size, ok := i.sizes[sizeKey(imageURL)]
	return size, ok
}

func (i *SizeIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.sizes)
}

func sizeKey(imageURL string) string {
	if idx := strings.IndexAny(imageURL, "?#"); idx != -1 {
		imageURL = imageURL[:idx]
	}

	u, err := url.Parse(imageURL)
	if err != nil {
		return strings.TrimSuffix(imageURL, "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	return strings.TrimSuffix(u.String(), "/")
}

func urlPath(key string) string {
	u, err := url.Parse(key)
	if err != nil {
		return ""
	}
	return u.Path
}
