package media

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/markup"
)

// IframeRewriter sizes embedded frames to the video width of the display.
type IframeRewriter struct {
	Metrics display.Metrics
}

func NewIframeRewriter(metrics display.Metrics) *IframeRewriter {
	return &IframeRewriter{Metrics: metrics}
}

func (r *IframeRewriter) Rewrite(tag, src string) string {
	attrs := markup.ParseAttrs(tag)
	width, height := attrs.Int("width"), attrs.Int("height")

	newWidth := r.Metrics.VideoWidthPx
	newHeight := r.Metrics.VideoHeightPx
	if width > 0 && height > 0 {
		newHeight = int(float64(newWidth) * float64(height) / float64(width))
	}

	return fmt.Sprintf("<iframe src='%s' frameborder='0' allowfullscreen='true' allowtransparency='true' width='%d' height='%d' />",
		html.EscapeString(src), r.Metrics.PxToDp(newWidth), r.Metrics.PxToDp(newHeight))
}

// RewriteAll rewrites every iframe tag in content in one pass.
func (r *IframeRewriter) RewriteAll(content string) string {
	buf := markup.NewBuffer(content)

	scanner := markup.NewScanner(content, markup.Iframe)
	for scanner.Next() {
		m := scanner.Match()
		if !buf.Replace(m, r.Rewrite(m.Tag, m.URL)) {
			slog.Warn("Iframe not found in buffer", "src", m.URL)
		}
	}

	return buf.Apply()
}
