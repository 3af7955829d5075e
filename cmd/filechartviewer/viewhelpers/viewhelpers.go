// Package viewhelpers holds the pure chart-geometry math used by the
// viewer, kept widget-free so it stays unit-testable.
package viewhelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions clamps a desired raw width (e.g. the window
// canvas width) into the width/height the chart images are rendered at.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	h := int(float32(w) * 0.45)
	if h < 280 {
		h = 280
	}
	if h > 560 {
		h = 560
	}
	return w, h
}

// NiceAxisBounds expands [min,max] by a small margin and rounds both
// ends to the span's order of magnitude for readable axis labels.
func NiceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// Zoom scales [min,max] around its midpoint. factor < 1 zooms in,
// factor > 1 zooms out.
func Zoom(min, max, factor float64) (float64, float64) {
	if max <= min || factor <= 0 {
		return min, max
	}
	mid := (min + max) / 2
	half := (max - min) / 2 * factor
	return mid - half, mid + half
}

// CategoryTickStep returns the label stride that keeps at most
// maxLabels category labels on the X axis.
func CategoryTickStep(n, maxLabels int) int {
	if maxLabels < 1 {
		maxLabels = 1
	}
	step := 1
	for n/step > maxLabels {
		step++
	}
	return step
}

// FormatTick formats an axis value compactly, dropping decimals as
// magnitude grows.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// FiniteExtent returns the min and max of all finite values across
// the given slices, and whether any finite value was seen at all.
func FiniteExtent(seriesData ...[]float64) (float64, float64, bool) {
	min := math.MaxFloat64
	max := -math.MaxFloat64
	seen := false
	for _, data := range seriesData {
		for _, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			seen = true
		}
	}
	if !seen {
		return 0, 0, false
	}
	return min, max, true
}
