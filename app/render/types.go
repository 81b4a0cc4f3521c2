// Package render assembles post content into a themed HTML document for the
// embedded content viewer and delivers it to a display surface.
package render

// DiscoverData is the attribution target of a discover item.
type DiscoverData struct {
	BlogID    int64  `json:"blog_id"`
	BlogName  string `json:"blog_name"`
	Permalink string `json:"permalink"`
}

// ContentItem is owned by the caller and read-only during a render.
type ContentItem struct {
	BlogID          int64        `json:"blog_id"`
	PostID          int64        `json:"post_id"`
	URL             string       `json:"url,omitempty"`
	Text            string       `json:"text"`
	Excerpt         string       `json:"excerpt,omitempty"`
	ShowExcerpt     bool         `json:"show_excerpt,omitempty"`
	IsPrivate       bool         `json:"is_private,omitempty"`
	AttachmentsJSON string       `json:"attachments_json,omitempty"`
	IsDiscover      bool         `json:"is_discover,omitempty"`
	Discover        DiscoverData `json:"discover,omitempty"`
	IsXPost         bool         `json:"is_xpost,omitempty"`
}

// Body returns the excerpt or the full text depending on ShowExcerpt.
func (i ContentItem) Body() string {
	if i.ShowExcerpt {
		return i.Excerpt
	}
	return i.Text
}

func (i ContentItem) HasDiscoverTarget() bool {
	return i.IsDiscover && i.Discover.BlogID != 0 && i.Discover.BlogName != ""
}

type RenderResult struct {
	HTML       string   `json:"html"`
	ScriptURLs []string `json:"script_urls"`
}
