package render

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/markup"
	"github.com/lysyi3m/reader-render/app/media"
	"github.com/lysyi3m/reader-render/app/theme"
)

const (
	documentTitle = "Reader Post"
	discoverLabel = "Visit %s"
)

var backgroundColorPattern = regexp.MustCompile(`\s*background-color\s*:\s*.+?\s*;\s*`)

// CSSURLProvider supplies the external base stylesheet of the document.
type CSSURLProvider interface {
	CSSURL() string
}

type StaticCSSURL string

func (u StaticCSSURL) CSSURL() string {
	return string(u)
}

// Assembler turns the content of an item into a complete document. Stages
// run in a fixed order; a stage that fails passes its input through.
type Assembler struct {
	metrics          display.Metrics
	resizer          media.URLResizer
	css              CSSURLProvider
	supportScriptURL string
	composer         StylesheetComposer

	// GalleryClass names the per-render class of gallery elements.
	GalleryClass func() string
}

func NewAssembler(metrics display.Metrics, resizer media.URLResizer, css CSSURLProvider, supportScriptURL string) *Assembler {
	return &Assembler{
		metrics:          metrics,
		resizer:          resizer,
		css:              css,
		supportScriptURL: supportScriptURL,
		GalleryClass:     NewGalleryClass,
	}
}

func (a *Assembler) Metrics() display.Metrics {
	return a.metrics
}

// Assemble renders item with tokens. The only error returned is the
// cancellation of ctx, checked between stages.
func (a *Assembler) Assemble(ctx context.Context, item ContentItem, tokens theme.Tokens) (RenderResult, error) {
	content := runStage("strip-styles", item.Body(), markup.StripInlineStyles)
	content = runStage("protocol-relative", content, fixProtocolRelativeURLs)
	if item.HasDiscoverTarget() {
		content += discoverBlock(item.Discover)
	}

	if err := ctx.Err(); err != nil {
		return RenderResult{}, fmt.Errorf("failed to assemble content: %w", err)
	}

	isRTL := markup.IsRTL(content)
	hasGallery := HasTiledGallery(content)

	if !(a.metrics.IsWideDisplay && hasGallery) {
		index := media.NewSizeIndex(item.Text, item.AttachmentsJSON)
		rewriter := media.NewImageRewriter(a.metrics, a.resizer, item.IsPrivate)
		content = runStage("images", content, func(c string) string {
			return rewriter.RewriteAll(c, index)
		})
	} else {
		slog.Debug("Skipping image pass for tiled gallery", "post_id", item.PostID)
	}

	if err := ctx.Err(); err != nil {
		return RenderResult{}, fmt.Errorf("failed to assemble content: %w", err)
	}

	content = runStage("iframes", content, media.NewIframeRewriter(a.metrics).RewriteAll)
	scripts := EmbedScripts(content)

	galleryClass := ""
	if hasGallery {
		galleryClass = a.GalleryClass()
	}

	document := a.compose(content, tokens, scripts, galleryClass, isRTL)

	slog.Debug("Assembled content",
		"post_id", item.PostID,
		"rtl", isRTL,
		"gallery", hasGallery,
		"scripts", len(scripts))

	return RenderResult{HTML: document, ScriptURLs: scripts}, nil
}

func (a *Assembler) compose(content string, tokens theme.Tokens, scripts []string, galleryClass string, isRTL bool) string {
	var sb strings.Builder

	if isRTL {
		sb.WriteString("<!DOCTYPE html><html dir='rtl' lang=''><head><meta charset='UTF-8' />")
	} else {
		sb.WriteString("<!DOCTYPE html><html><head><meta charset='UTF-8' />")
	}

	sb.WriteString("<title>" + documentTitle + "</title>")
	if a.css != nil {
		fmt.Fprintf(&sb, `<link rel="stylesheet" type="text/css" href="%s">`, html.EscapeString(a.css.CSSURL()))
	}
	sb.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1'>")

	sb.WriteString("<style type='text/css'>")
	sb.WriteString(a.composer.Compose(tokens, a.metrics, galleryClass))
	sb.WriteString("</style>")

	for _, script := range scripts {
		fmt.Fprintf(&sb, `<script src="%s" type="text/javascript" async></script>`, html.EscapeString(script))
	}

	sb.WriteString(`</head><body class="reader-full-post reader-full-post__story-content">`)
	if a.supportScriptURL != "" {
		fmt.Fprintf(&sb, `<script type="text/javascript" src="%s"></script>`, html.EscapeString(a.supportScriptURL))
	}

	body := runStage("background-color", content, func(c string) string {
		return backgroundColorPattern.ReplaceAllString(c, "")
	})
	body = runStage("gallery-class", body, func(c string) string {
		return TagGalleryElements(c, galleryClass)
	})

	sb.WriteString(body)
	sb.WriteString("</body></html>")

	return sb.String()
}

// runStage applies fn to input, returning input unchanged if fn panics.
func runStage(name, input string, fn func(string) string) (output string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Render stage failed", "stage", name, "error", fmt.Sprint(r))
			output = input
		}
	}()
	return fn(input)
}

// Some embeds, such as Vimeo, omit the scheme of their sources.
func fixProtocolRelativeURLs(content string) string {
	content = strings.ReplaceAll(content, `src="//`, `src="http://`)
	return strings.ReplaceAll(content, `src='//`, `src='http://`)
}

func discoverBlock(data DiscoverData) string {
	label := fmt.Sprintf(discoverLabel, data.BlogName)
	return fmt.Sprintf("<div id='discover'><a href='%s'>%s</a></div>",
		BlogPreviewURL(data.BlogID), html.EscapeString(label))
}

func BlogPreviewURL(blogID int64) string {
	return fmt.Sprintf("wordpress://blogpreview?blogId=%d", blogID)
}
