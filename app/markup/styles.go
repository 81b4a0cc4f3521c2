package markup

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var styledElements = cascadia.MustCompile("[style]")

// StripInlineStyles removes every style attribute from content, parsed as a
// body fragment. On any parse or render failure the content is returned
// unmodified. The result is stable: stripping it again yields the same text.
func StripInlineStyles(content string) (result string) {
	if content == "" {
		return content
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Failed to strip inline styles", "error", fmt.Sprint(r))
			result = content
		}
	}()

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		slog.Error("Failed to parse content fragment", "error", err)
		return content
	}
	for _, node := range nodes {
		body.AppendChild(node)
	}

	doc := goquery.NewDocumentFromNode(body)
	doc.FindMatcher(styledElements).RemoveAttr("style")

	stripped, err := doc.Html()
	if err != nil {
		slog.Error("Failed to render content fragment", "error", err)
		return content
	}

	return stripped
}
