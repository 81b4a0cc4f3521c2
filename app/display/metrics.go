// Package display derives the per-render resource metrics used to size
// images and videos for the content viewer.
package display

import "math"

const (
	// MinWideDisplayWidthDp is the width from which a display counts as wide.
	MinWideDisplayWidthDp = 641

	ratio16x9 = 0.5625
)

// Metrics holds device-derived constants. A value is computed once per render
// and never mutated.
type Metrics struct {
	DisplayWidthPx int
	Density        float64
	IsWideDisplay  bool

	MarginMediumPx int
	MarginLargePx  int
	DetailMarginPx int

	// FullSizeImageWidthPx is the display width minus the detail margin on
	// both sides.
	FullSizeImageWidthPx int

	VideoWidthPx  int
	VideoHeightPx int
}

func NewMetrics(displayWidthPx int, density float64, marginMediumPx, marginLargePx, detailMarginPx int) Metrics {
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		density = 1
	}

	m := Metrics{
		DisplayWidthPx: displayWidthPx,
		Density:        density,
		MarginMediumPx: marginMediumPx,
		MarginLargePx:  marginLargePx,
		DetailMarginPx: detailMarginPx,
	}

	m.IsWideDisplay = m.PxToDp(displayWidthPx) >= MinWideDisplayWidthDp
	m.FullSizeImageWidthPx = max(displayWidthPx-(detailMarginPx*2), 0)
	m.VideoWidthPx = max(m.FullSizeImageWidthPx-(marginLargePx*2), 0)
	m.VideoHeightPx = int(float64(m.VideoWidthPx) * ratio16x9)

	return m
}

// PxToDp converts raw pixels to device-independent pixels. Zero stays zero.
func (m Metrics) PxToDp(px int) int {
	if px == 0 {
		return 0
	}
	density := m.Density
	if density <= 0 || math.IsNaN(density) || math.IsInf(density, 0) {
		density = 1
	}
	return int(math.Round(float64(px) / density))
}

// MinFullSizeWidthDp is the smallest width rendered as a full-size image.
func (m Metrics) MinFullSizeWidthDp() int {
	return m.PxToDp(m.FullSizeImageWidthPx / 3)
}

func (m Metrics) MinMidSizeWidthDp() int {
	return m.MinFullSizeWidthDp() / 2
}
