package render

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/theme"
)

// StylesheetComposer builds the inline stylesheet of a rendered document.
// Output is deterministic for equal inputs.
type StylesheetComposer struct{}

// Compose returns the stylesheet for tokens and metrics. Gallery rules are
// included only when galleryClass is set.
func (StylesheetComposer) Compose(tokens theme.Tokens, metrics display.Metrics, galleryClass string) string {
	sheet := css.NewStylesheet()
	margin := px(metrics.MarginMediumPx)
	galleryMode := galleryClass != ""

	sheet.Rules = append(sheet.Rules, colorVariables(tokens))

	textBlocks := "div"
	sizedBlocks := "div:not(.wp-story-container)"
	if galleryMode {
		textBlocks = "div:not(." + galleryClass + ")"
		sizedBlocks += ":not(.tiled-gallery)"
	}

	sheet.Rules = append(sheet.Rules,
		rule([]string{"body.reader-full-post__story-content"},
			decl("font-family", tokens.FontFamily),
			decl("font-weight", "400"),
			decl("font-size", px(tokens.FontSize)),
			decl("margin", "0px"),
			decl("padding", "0px"),
			decl("margin-right", "1px"),
		),
		rule([]string{"body", "p", "div"},
			important("max-width", "100%"),
			decl("word-wrap", "break-word"),
		),
		rule([]string{"p", textBlocks, "li"},
			decl("line-height", "1.6em"),
			decl("font-size", "100%"),
		),
		rule([]string{"h1", "h2", "h3"},
			decl("line-height", "1.6em"),
		),
		rule([]string{"p", sizedBlocks, "dl", "table"},
			important("width", "auto"),
			important("height", "auto"),
		),
		rule([]string{"body", "p", "div", "a"},
			decl("word-wrap", "break-word"),
		),
		rule([]string{".reader-full-post__story-content hr"},
			decl("background-color", "transparent"),
			decl("border-color", "var(--color-neutral-50)"),
		),
		rule([]string{"p"},
			decl("margin-top", margin),
			decl("margin-bottom", margin),
		),
		rule([]string{"p:first-child"},
			decl("margin-top", "0px"),
		),
		rule([]string{"pre"},
			decl("word-wrap", "break-word"),
			decl("white-space", "pre-wrap"),
			decl("background-color", "var(--color-neutral-20)"),
			decl("padding", margin),
			decl("line-height", "1.2em"),
			decl("font-size", "14px"),
		),
		rule([]string{".reader-full-post__story-content blockquote"},
			decl("color", "var(--color-neutral-0)"),
			decl("padding-left", "32px"),
			decl("margin-left", "0px"),
			decl("border-left", "3px solid var(--color-neutral-50)"),
		),
		rule([]string{"a"},
			decl("text-decoration", "underline"),
			decl("color", "var(--main-link-color)"),
		),
		rule([]string{"img"},
			decl("max-width", "100%"),
			decl("width", "auto"),
			decl("height", "auto"),
		),
		rule([]string{"img.size-none"},
			important("max-width", "100%"),
			important("height", "auto"),
		),
		rule([]string{"img.size-full", "img.size-large", "img.size-medium"},
			decl("display", "block"),
			decl("margin-left", "auto"),
			decl("margin-right", "auto"),
			decl("background-color", "var(--color-neutral-0)"),
			decl("margin-bottom", margin),
		),
	)

	if galleryMode {
		sheet.Rules = append(sheet.Rules, galleryRules()...)
	}

	sheet.Rules = append(sheet.Rules,
		rule([]string{".wp-caption img"},
			decl("margin-top", "0px"),
			decl("margin-bottom", "0px"),
		),
		rule([]string{".wp-caption .wp-caption-text"},
			decl("font-size", "smaller"),
			decl("line-height", "1.2em"),
			decl("margin", "0px"),
			decl("text-align", "center"),
			decl("padding", margin),
			decl("color", "var(--color-neutral-0)"),
		),
		rule([]string{"div#discover"},
			decl("margin-top", margin),
			decl("font-family", "sans-serif"),
		),
		rule([]string{"iframe"},
			decl("display", "block"),
			decl("margin", "0 auto"),
		),
		rule([]string{"figure"},
			decl("display", "block"),
			decl("margin-inline-start", "0px"),
			decl("margin-inline-end", "0px"),
		),
	)

	sheet.Rules = append(sheet.Rules, suppressionRules()...)

	return sheet.String()
}

func colorVariables(tokens theme.Tokens) *css.Rule {
	return rule([]string{":root"},
		decl("--color-text", tokens.TextColor),
		decl("--color-neutral-0", tokens.MutedColor),
		decl("--color-neutral-5", tokens.ExtraLightColor),
		decl("--color-neutral-10", tokens.DisabledColor),
		decl("--color-neutral-20", tokens.ExtraLightColor),
		decl("--color-neutral-50", tokens.LightColor),
		decl("--color-neutral-70", tokens.TextColor),
		decl("--main-link-color", tokens.LinkColor),
	)
}

// suppressionRules hide forms, legacy feed sharing links, related-post
// widgets and ad containers. Always emitted.
func suppressionRules() []*css.Rule {
	return []*css.Rule{
		rule([]string{"form", "input", "select", "button", "textarea"},
			decl("display", "none"),
		),
		rule([]string{"div.feedflare"},
			decl("display", "none"),
		),
		rule([]string{".sharedaddy", ".jp-relatedposts", ".mc4wp-form", ".wpcnt", ".OUTBRAIN", ".adsbygoogle"},
			decl("display", "none"),
		),
	}
}

func galleryRules() []*css.Rule {
	return []*css.Rule{
		rule([]string{".tiled-gallery"},
			decl("clear", "both"),
			decl("overflow", "hidden"),
		),
		rule([]string{".tiled-gallery img"},
			important("margin", "2px"),
		),
		rule([]string{".tiled-gallery .gallery-group"},
			decl("float", "left"),
			decl("position", "relative"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item"},
			decl("float", "left"),
			decl("margin", "0"),
			decl("position", "relative"),
			decl("width", "inherit"),
		),
		rule([]string{".tiled-gallery .gallery-row"},
			decl("position", "relative"),
			decl("left", "50%"),
			decl("-webkit-transform", "translateX(-50%)"),
			decl("-moz-transform", "translateX(-50%)"),
			decl("transform", "translateX(-50%)"),
			decl("overflow", "hidden"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item a"},
			decl("background", "transparent"),
			decl("border", "none"),
			decl("color", "inherit"),
			decl("margin", "0"),
			decl("padding", "0"),
			decl("text-decoration", "none"),
			decl("width", "auto"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item img", ".tiled-gallery .tiled-gallery-item img:hover"},
			decl("background", "none"),
			decl("border", "none"),
			decl("box-shadow", "none"),
			decl("max-width", "100%"),
			decl("padding", "0"),
			decl("vertical-align", "middle"),
		),
		rule([]string{".tiled-gallery-caption"},
			decl("background", "rgba(255, 255, 255, 0.8)"),
			decl("color", "#333"),
			decl("font-size", "13px"),
			decl("font-weight", "400"),
			decl("overflow", "hidden"),
			decl("padding", "10px 0"),
			decl("position", "absolute"),
			decl("bottom", "0"),
			decl("text-indent", "10px"),
			decl("text-overflow", "ellipsis"),
			decl("width", "100%"),
			decl("white-space", "nowrap"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item-small .tiled-gallery-caption"},
			decl("font-size", "11px"),
		),
		rule([]string{".widget-gallery .tiled-gallery-unresized"},
			decl("visibility", "hidden"),
			decl("height", "0px"),
			decl("overflow", "hidden"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item img.grayscale"},
			decl("position", "absolute"),
			decl("left", "0"),
			decl("top", "0"),
		),
		rule([]string{".tiled-gallery .tiled-gallery-item img.grayscale:hover"},
			decl("opacity", "0"),
		),
		rule([]string{".tiled-gallery.type-circle .tiled-gallery-item img"},
			important("border-radius", "50%"),
		),
		rule([]string{".tiled-gallery.type-circle .tiled-gallery-caption"},
			decl("display", "none"),
			decl("opacity", "0"),
		),
	}
}

func rule(selectors []string, declarations ...*css.Declaration) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	r.Selectors = selectors
	r.Declarations = declarations
	return r
}

func decl(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: strings.TrimSpace(value)}
}

func important(property, value string) *css.Declaration {
	d := decl(property, value)
	d.Important = true
	return d
}

func px(n int) string {
	return fmt.Sprintf("%dpx", n)
}
