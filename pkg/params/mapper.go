// Package params implements the bidirectional non-linear mapping between the
// UI-slider domain [0, 100] and application values (scale, zoom), plus the
// snapping helpers applied on gesture release.
//
// Both maps are piecewise-linear with a knee at slider position 50: the lower
// half covers the fine range up to 1.0 and the upper half the coarse range
// above it, so small values get most of the slider travel.
package params

import "math"

// Slider domain bounds.
const (
	SliderMin = 0.0
	SliderMax = 100.0
	sliderMid = 50.0
)

// ScaleFromSlider converts a slider position to a pattern scale in [0.05, 5.0].
func ScaleFromSlider(s float64) float64 {
	s = clampSlider(s)
	if s <= sliderMid {
		return 0.05 + (s/sliderMid)*0.95
	}
	return 1.0 + ((s-sliderMid)/sliderMid)*4.0
}

// SliderFromScale is the inverse of ScaleFromSlider. For any slider position
// s, SliderFromScale(ScaleFromSlider(s)) is within one slider unit of s.
func SliderFromScale(v float64) float64 {
	v = math.Min(5.0, math.Max(0.05, v))
	if v <= 1.0 {
		return (v - 0.05) / 0.95 * sliderMid
	}
	return sliderMid + (v-1.0)/4.0*sliderMid
}

// ZoomFromSlider converts a slider position to a viewport zoom in [0.01, 8.0].
func ZoomFromSlider(s float64) float64 {
	s = clampSlider(s)
	if s <= sliderMid {
		return (1 + (s/sliderMid)*99) / 100
	}
	return (100 + ((s-sliderMid)/sliderMid)*700) / 100
}

// SliderFromZoom is the inverse of ZoomFromSlider.
func SliderFromZoom(v float64) float64 {
	v = math.Min(8.0, math.Max(0.01, v))
	if v <= 1.0 {
		return (v*100 - 1) / 99 * sliderMid
	}
	return sliderMid + (v*100-100)/700*sliderMid
}

// Snap rounds v to the nearest multiple of step.
func Snap(v, step float64) float64 {
	return math.Round(v/step) * step
}

// SnapScale snaps a scale value on gesture release: quarter steps at or
// above 0.25, hundredth steps below, never under the 0.05 floor.
func SnapScale(v float64) float64 {
	if v >= 0.25 {
		return Snap(v, 0.25)
	}
	return math.Max(0.05, Snap(v, 0.01))
}

// SnapZoomPercent snaps a zoom value expressed as a percentage: steps of 25
// at or above 25%, whole percents below, never under 1%.
func SnapZoomPercent(v float64) float64 {
	if v >= 25 {
		return Snap(v, 25)
	}
	return math.Max(1, math.Round(v))
}

// SnapOffsetPercent snaps a tile offset percentage to steps of 10.
func SnapOffsetPercent(v float64) float64 {
	return Snap(v, 10)
}

func clampSlider(s float64) float64 {
	return math.Min(SliderMax, math.Max(SliderMin, s))
}
