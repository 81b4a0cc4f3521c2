package render

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	galleryClassPrefix = "gallery-only-class"
	galleryClassBound  = 1000
)

var (
	tiledGalleryPattern = regexp.MustCompile(`(?i)tiled-gallery[\s"']`)
	classAttrPattern    = regexp.MustCompile(`(\sclass\s*=\s*)("[^"]*"|'[^']*')`)
	galleryClassPattern = regexp.MustCompile(galleryClassPrefix + `\d+`)
)

var galleryElementClasses = map[string]bool{
	"tiled-gallery":      true,
	"gallery-row":        true,
	"gallery-group":      true,
	"tiled-gallery-item": true,
}

func HasTiledGallery(content string) bool {
	return tiledGalleryPattern.MatchString(content)
}

// NewGalleryClass returns a per-render class name for gallery elements.
func NewGalleryClass() string {
	return fmt.Sprintf("%s%d", galleryClassPrefix, rand.Intn(galleryClassBound))
}

// ReplaceGalleryClass swaps the gallery class of a finished document for
// class, in its stylesheet and its elements alike.
func ReplaceGalleryClass(document, class string) string {
	if class == "" {
		return document
	}
	return galleryClassPattern.ReplaceAllLiteralString(document, class)
}

// TagGalleryElements adds class to every class attribute that carries one
// of the gallery element classes, right after that class.
func TagGalleryElements(content, class string) string {
	if class == "" {
		return content
	}

	return classAttrPattern.ReplaceAllStringFunc(content, func(attr string) string {
		parts := classAttrPattern.FindStringSubmatch(attr)
		prefix, quoted := parts[1], parts[2]
		quote := quoted[:1]
		classes := strings.Fields(quoted[1 : len(quoted)-1])

		tagged := make([]string, 0, len(classes)+1)
		changed := false
		for i, c := range classes {
			tagged = append(tagged, c)
			if galleryElementClasses[c] && !containsClass(classes[i+1:], class) {
				tagged = append(tagged, class)
				changed = true
			}
		}
		if !changed {
			return attr
		}

		return prefix + quote + strings.Join(tagged, " ") + quote
	})
}

func containsClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}
