package media

import (
	"fmt"

	"github.com/lysyi3m/reader-render/app/display"
)

type resizeCall struct {
	url       string
	width     int
	height    int
	isPrivate bool
	useProxy  bool
}

type fakeResizer struct {
	calls []resizeCall
}

func (f *fakeResizer) ResizeURL(imageURL string, width, height int, isPrivate, useProxy bool) string {
	f.calls = append(f.calls, resizeCall{imageURL, width, height, isPrivate, useProxy})
	return fmt.Sprintf("https://cdn.test/%dx%d", width, height)
}

var _ URLResizer = (*fakeResizer)(nil)
var _ URLResizer = (*PhotonResizer)(nil)

// testMetrics gives a full-size budget of 1200px at density 1, so the
// full-size threshold is 400dp and the medium threshold 200dp.
func testMetrics() display.Metrics {
	return display.NewMetrics(1200, 1, 16, 24, 0)
}
