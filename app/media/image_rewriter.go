package media

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/markup"
)

const (
	ClassFull   = "size-full"
	ClassMedium = "size-medium"
	ClassNone   = "size-none"
)

type ImageRewriter struct {
	Metrics   display.Metrics
	Resizer   URLResizer
	Resolver  Resolver
	IsPrivate bool
}

func NewImageRewriter(metrics display.Metrics, resizer URLResizer, isPrivate bool) *ImageRewriter {
	return &ImageRewriter{
		Metrics:   metrics,
		Resizer:   resizer,
		IsPrivate: isPrivate,
	}
}

// KeepOriginal reports whether an image must keep its original markup.
func KeepOriginal(tag, imageURL string) bool {
	return strings.Contains(imageURL, "wpcom-smileys") || strings.Contains(tag, "wp-story")
}

// Classify returns the size tier of an image with the given resolved size.
func (r *ImageRewriter) Classify(size *ImageSize) string {
	if size == nil || !size.HasWidth() {
		return ClassNone
	}
	switch {
	case size.Width >= r.Metrics.MinFullSizeWidthDp():
		return ClassFull
	case size.Width >= r.Metrics.MinMidSizeWidthDp():
		return ClassMedium
	default:
		return ClassNone
	}
}

// Rewrite builds the replacement tag for an image.
func (r *ImageRewriter) Rewrite(imageURL string, size *ImageSize) string {
	if size == nil || !size.HasWidth() {
		return fmt.Sprintf("<img class='%s' src='%s' />", ClassNone, html.EscapeString(imageURL))
	}

	class := r.Classify(size)
	width, height := size.Width, size.Height
	if class == ClassFull {
		width, height = r.fitFullSize(width, height)
	}

	return r.imageTag(class, imageURL, width, height)
}

func (r *ImageRewriter) fitFullSize(width, height int) (int, int) {
	bound := r.Metrics.FullSizeImageWidthPx
	if width <= 0 || height <= 0 {
		return bound, 0
	}
	if height > width {
		return int(float64(bound) * float64(width) / float64(height)), bound
	}
	return bound, int(float64(bound) * float64(height) / float64(width))
}

func (r *ImageRewriter) imageTag(class, imageURL string, width, height int) string {
	// The embedded viewer never goes through the private proxy.
	resized := imageURL
	if r.Resizer != nil {
		resized = r.Resizer.ResizeURL(imageURL, width, height, r.IsPrivate, false)
	}
	src := html.EscapeString(resized)

	if height > 0 {
		return fmt.Sprintf("<img class='%s' src='%s' width='%d' height='%d' />",
			class, src, r.Metrics.PxToDp(width), r.Metrics.PxToDp(height))
	}
	return fmt.Sprintf("<img class='%s' src='%s' width='%d' />", class, src, r.Metrics.PxToDp(width))
}

// RewriteAll rewrites every image tag in content in one pass.
func (r *ImageRewriter) RewriteAll(content string, index *SizeIndex) string {
	buf := markup.NewBuffer(content)

	scanner := markup.NewScanner(content, markup.Image)
	for scanner.Next() {
		m := scanner.Match()
		if KeepOriginal(m.Tag, m.URL) {
			continue
		}

		size := r.Resolver.Resolve(m.Tag, m.URL, index)
		if !buf.Replace(m, r.Rewrite(m.URL, size)) {
			slog.Warn("Image not found in buffer", "url", m.URL)
		}
	}

	return buf.Apply()
}
