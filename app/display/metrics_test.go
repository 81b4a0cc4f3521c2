package display

import (
	"math"
	"testing"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics(1080, 2.625, 16, 24, 32)

	if m.FullSizeImageWidthPx != 1016 {
		t.Errorf("Expected full size image width 1016, got %d", m.FullSizeImageWidthPx)
	}
	if m.VideoWidthPx != 968 {
		t.Errorf("Expected video width 968, got %d", m.VideoWidthPx)
	}
	if m.VideoHeightPx != 544 {
		t.Errorf("Expected video height 544, got %d", m.VideoHeightPx)
	}
	// 1080 / 2.625 = 411dp
	if m.IsWideDisplay {
		t.Error("Expected a 411dp display not to be wide")
	}
}

func TestNewMetricsWideDisplay(t *testing.T) {
	tests := []struct {
		widthPx int
		density float64
		wide    bool
	}{
		{640, 1, false},
		{641, 1, true},
		{1282, 2, true},
		{1280, 2, false},
		{2560, 2, true},
	}

	for _, tt := range tests {
		m := NewMetrics(tt.widthPx, tt.density, 0, 0, 0)
		if m.IsWideDisplay != tt.wide {
			t.Errorf("NewMetrics(%d, %v).IsWideDisplay = %v, want %v", tt.widthPx, tt.density, m.IsWideDisplay, tt.wide)
		}
	}
}

func TestPxToDp(t *testing.T) {
	m := NewMetrics(1000, 2, 0, 0, 0)

	tests := []struct {
		px, dp int
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{800, 400},
		{801, 401},
	}
	for _, tt := range tests {
		if got := m.PxToDp(tt.px); got != tt.dp {
			t.Errorf("PxToDp(%d) = %d, want %d", tt.px, got, tt.dp)
		}
	}
}

func TestSizeThresholds(t *testing.T) {
	m := NewMetrics(1200, 1, 0, 0, 0)

	if m.MinFullSizeWidthDp() != 400 {
		t.Errorf("Expected min full size width 400, got %d", m.MinFullSizeWidthDp())
	}
	if m.MinMidSizeWidthDp() != 200 {
		t.Errorf("Expected min mid size width 200, got %d", m.MinMidSizeWidthDp())
	}
}

func TestNewMetricsInvalidDensity(t *testing.T) {
	tests := []struct {
		name    string
		density float64
	}{
		{"zero", 0},
		{"negative", -2},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(1080, tt.density, 16, 24, 32)
			if m.Density != 1 {
				t.Errorf("Expected density to fall back to 1, got %v", m.Density)
			}
			if m.PxToDp(1080) != 1080 {
				t.Errorf("Expected 1080dp, got %d", m.PxToDp(1080))
			}
		})
	}
}
