package api

import (
	"context"

	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/source"
	"github.com/lysyi3m/reader-render/app/theme"
)

type RendererInterface interface {
	Render(ctx context.Context, item render.ContentItem, prefs theme.Preferences) (render.RenderResult, string, error)
	Cached(key string) (*render.RenderResult, error)
	Tokens(prefs theme.Preferences) theme.Tokens
}

var _ RendererInterface = (*render.Service)(nil)

type ExtractorInterface interface {
	Run(data []byte, pageURL string) (render.ContentItem, error)
}

var _ ExtractorInterface = (*source.ArticleExtractor)(nil)

type RenderRequest struct {
	Item        render.ContentItem `json:"item"`
	Preferences theme.Preferences  `json:"preferences"`
}

type RenderResponse struct {
	Key        string   `json:"key"`
	HTML       string   `json:"html"`
	ScriptURLs []string `json:"script_urls"`
}

func newRenderResponse(key string, result render.RenderResult) RenderResponse {
	return RenderResponse{Key: key, HTML: result.HTML, ScriptURLs: result.ScriptURLs}
}

// socketMessage is the envelope for everything sent over a surface socket.
// Servers send "document" and "event"; clients send "message".
type socketMessage struct {
	Type       string   `json:"type"`
	HTML       string   `json:"html,omitempty"`
	ScriptURLs []string `json:"script_urls,omitempty"`
	Handler    string   `json:"handler,omitempty"`
	Name       string   `json:"name,omitempty"`
	Body       string   `json:"body,omitempty"`
}

const (
	socketDocument      = "document"
	socketEvent         = "event"
	socketClientMessage = "message"
)
