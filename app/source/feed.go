// Package source turns external documents into content items: entries of
// RSS/Atom feeds and readable articles extracted from full HTML pages.
package source

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/lysyi3m/reader-render/app/render"
)

type FeedParser struct {
	gofeedParser *gofeed.Parser
}

func NewFeedParser() *FeedParser {
	return &FeedParser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses feed data into content items, in feed order. Item content
// falls back to the description when the feed carries no full content.
func (p *FeedParser) Run(data []byte) ([]render.ContentItem, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]render.ContentItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.contentItem(item))
	}

	slog.Debug("Feed parsed", "title", feed.Title, "items", len(items))

	return items, nil
}

func (p *FeedParser) contentItem(item *gofeed.Item) render.ContentItem {
	return render.ContentItem{
		URL:             cmp.Or(item.Link, item.GUID),
		Text:            cmp.Or(item.Content, item.Description),
		Excerpt:         item.Description,
		AttachmentsJSON: p.mediaAttachments(item),
	}
}

type mediaAttachment struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"URL"`
	Width    string `json:"width,omitempty"`
	Height   string `json:"height,omitempty"`
}

// mediaAttachments converts Media RSS image entries into the attachments
// JSON the size index understands. Returns "" when there are none.
func (p *FeedParser) mediaAttachments(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}

	attachments := make(map[string]mediaAttachment)
	for i, content := range media["content"] {
		if a, ok := imageAttachment(content); ok {
			attachments[fmt.Sprintf("media-%d", i)] = a
		}
	}
	if len(attachments) == 0 {
		return ""
	}

	data, err := json.Marshal(attachments)
	if err != nil {
		slog.Warn("Failed to encode media attachments", "link", item.Link, "error", err)
		return ""
	}
	return string(data)
}

func imageAttachment(content ext.Extension) (mediaAttachment, bool) {
	url := content.Attrs["url"]
	if url == "" {
		return mediaAttachment{}, false
	}

	mimeType := content.Attrs["type"]
	if mimeType == "" && content.Attrs["medium"] == "image" {
		mimeType = "image/*"
	}
	if !strings.HasPrefix(mimeType, "image") {
		return mediaAttachment{}, false
	}

	return mediaAttachment{
		MimeType: mimeType,
		URL:      url,
		Width:    content.Attrs["width"],
		Height:   content.Attrs["height"],
	}, true
}
