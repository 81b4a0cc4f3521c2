package source

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-shiori/go-readability"

	"github.com/lysyi3m/reader-render/app/render"
)

type ArticleExtractor struct{}

func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// Run extracts the readable article of a full HTML page. pageURL, when
// set, resolves relative links and images in the article.
func (e *ArticleExtractor) Run(data []byte, pageURL string) (render.ContentItem, error) {
	if len(data) == 0 {
		return render.ContentItem{}, fmt.Errorf("HTML data is empty")
	}

	var base *url.URL
	if pageURL != "" {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return render.ContentItem{}, fmt.Errorf("failed to parse page URL: %w", err)
		}
		base = parsed
	}

	article, err := readability.FromReader(bytes.NewReader(data), base)
	if err != nil {
		return render.ContentItem{}, fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return render.ContentItem{}, fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(article.Content))

	return render.ContentItem{
		URL:     pageURL,
		Text:    article.Content,
		Excerpt: article.Excerpt,
	}, nil
}
