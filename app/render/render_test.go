package render

import (
	"fmt"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/theme"
)

const (
	testCSSURL           = "https://s0.wp.com/wp-content/themes/h4/global.css"
	testSupportScriptURL = "file:///android_asset/reader_text_events.js"
	testGalleryClass     = "gallery-only-class7"
)

type fakeResizer struct{}

func (fakeResizer) ResizeURL(imageURL string, width, height int, isPrivate, useProxy bool) string {
	return fmt.Sprintf("https://cdn.test/%dx%d", width, height)
}

func testTokens() theme.Tokens {
	return theme.NewRegistry(theme.Light, "serif", 16).Resolve(theme.Preferences{})
}

// narrowMetrics is a 411dp phone display.
func narrowMetrics() display.Metrics {
	return display.NewMetrics(1080, 2.625, 16, 24, 32)
}

// wideMetrics is a 1024dp tablet display.
func wideMetrics() display.Metrics {
	return display.NewMetrics(2048, 2, 16, 24, 32)
}

func newTestAssembler(metrics display.Metrics) *Assembler {
	a := NewAssembler(metrics, fakeResizer{}, StaticCSSURL(testCSSURL), testSupportScriptURL)
	a.GalleryClass = func() string { return testGalleryClass }
	return a
}
