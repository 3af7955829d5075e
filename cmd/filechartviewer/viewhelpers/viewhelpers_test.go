package viewhelpers

import (
	"math"
	"testing"
)

func TestComputeChartDimensions(t *testing.T) {
	cases := []struct{ raw, w, hMin, hMax int }{
		{100, 640, 280, 560},
		{1000, 1000, 280, 560},
		{2000, 2000, 280, 560},
	}
	for _, tc := range cases {
		w, h := ComputeChartDimensions(tc.raw)
		if w != tc.w {
			t.Errorf("width for %d = %d, want %d", tc.raw, w, tc.w)
		}
		if h < tc.hMin || h > tc.hMax {
			t.Errorf("height for %d = %d, outside [%d,%d]", tc.raw, h, tc.hMin, tc.hMax)
		}
	}
}

func TestNiceAxisBounds(t *testing.T) {
	a, b := NiceAxisBounds(12, 87)
	if a > 12 || b < 87 {
		t.Errorf("bounds [%v,%v] do not contain the data", a, b)
	}
	// degenerate span still produces a non-empty range
	a, b = NiceAxisBounds(5, 5)
	if !(b > a) {
		t.Errorf("degenerate bounds [%v,%v]", a, b)
	}
}

func TestZoom(t *testing.T) {
	min, max := Zoom(0, 10, 0.5)
	if min != 2.5 || max != 7.5 {
		t.Errorf("zoom in = [%v,%v], want [2.5,7.5]", min, max)
	}
	min, max = Zoom(2.5, 7.5, 2)
	if min != 0 || max != 10 {
		t.Errorf("zoom out = [%v,%v], want [0,10]", min, max)
	}
	// invalid inputs pass through
	min, max = Zoom(3, 3, 0.5)
	if min != 3 || max != 3 {
		t.Errorf("degenerate zoom changed range: [%v,%v]", min, max)
	}
}

func TestCategoryTickStep(t *testing.T) {
	if got := CategoryTickStep(5, 12); got != 1 {
		t.Errorf("step(5,12) = %d, want 1", got)
	}
	if got := CategoryTickStep(24, 12); got != 2 {
		t.Errorf("step(24,12) = %d, want 2", got)
	}
	step := CategoryTickStep(1000, 12)
	if 1000/step > 12 {
		t.Errorf("step(1000,12) = %d leaves too many labels", step)
	}
}

func TestFormatTick(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{1234, "1234"},
		{56.78, "56.8"},
		{1.234, "1.23"},
		{0, "0.00"},
	}
	for _, tc := range cases {
		if got := FormatTick(tc.v); got != tc.want {
			t.Errorf("FormatTick(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFiniteExtent(t *testing.T) {
	min, max, ok := FiniteExtent([]float64{1, math.NaN(), 3}, []float64{-2})
	if !ok || min != -2 || max != 3 {
		t.Errorf("extent = (%v,%v,%v), want (-2,3,true)", min, max, ok)
	}
	if _, _, ok := FiniteExtent([]float64{math.NaN()}); ok {
		t.Error("all-NaN input should report no extent")
	}
}
