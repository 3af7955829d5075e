package series

import (
	"math"
	"testing"
)

func base(name string, data ...float64) Series {
	return Series{Name: name, Data: data, MarkerEnabled: true}
}

// equalValues compares with NaN == NaN.
func equalValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) != math.IsNaN(b[i]) {
			return false
		}
		if !math.IsNaN(a[i]) && a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSMAWindow(t *testing.T) {
	got := Statistic{Kind: SMA, Period: 3}.Apply(base("v", 1, 2, 3, 4, 5))
	want := []float64{math.NaN(), math.NaN(), 2, 3, 4}
	if !equalValues(got.Data, want) {
		t.Errorf("SMA data = %v, want %v", got.Data, want)
	}
	if got.Name != "v (SMA 3)" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Style != Dashed || got.MarkerEnabled {
		t.Errorf("style = %v marker=%v, want dashed without markers", got.Style, got.MarkerEnabled)
	}
}

// Gaps inside the window count as zero but the divisor stays the full
// period. Changing this changes numeric output for existing users.
func TestSMAGapCountsAsZero(t *testing.T) {
	got := Statistic{Kind: SMA, Period: 2}.Apply(base("v", 4, math.NaN(), 6))
	want := []float64{math.NaN(), 2, 3}
	if !equalValues(got.Data, want) {
		t.Errorf("SMA data = %v, want %v", got.Data, want)
	}
}

func TestEMASmoothing(t *testing.T) {
	got := Statistic{Kind: EMA, Period: 3}.Apply(base("v", 10, 20))
	want := []float64{10, 15}
	if !equalValues(got.Data, want) {
		t.Errorf("EMA data = %v, want %v", got.Data, want)
	}
	if got.Style != Dotted {
		t.Errorf("style = %v, want dotted", got.Style)
	}
}

func TestEMACarriesGapsForward(t *testing.T) {
	got := Statistic{Kind: EMA, Period: 3}.Apply(base("v", 10, math.NaN(), 20))
	// gap keeps the previous value; the next sample smooths from it
	want := []float64{10, 10, 15}
	if !equalValues(got.Data, want) {
		t.Errorf("EMA data = %v, want %v", got.Data, want)
	}
}

// A gap at index 0 seeds the series with NaN, which then propagates.
// Known edge case, kept as-is.
func TestEMAGapSeed(t *testing.T) {
	got := Statistic{Kind: EMA, Period: 3}.Apply(base("v", math.NaN(), 20))
	if !math.IsNaN(got.Data[0]) || !math.IsNaN(got.Data[1]) {
		t.Errorf("EMA data = %v, want NaN seed propagation", got.Data)
	}
}

func TestFlatOverlaysSkipGaps(t *testing.T) {
	b := base("v", 1, math.NaN(), 3)
	maxS := Statistic{Kind: Max}.Apply(b)
	if !equalValues(maxS.Data, []float64{3, 3, 3}) {
		t.Errorf("Max data = %v, want flat 3", maxS.Data)
	}
	minS := Statistic{Kind: Min}.Apply(b)
	if !equalValues(minS.Data, []float64{1, 1, 1}) {
		t.Errorf("Min data = %v, want flat 1", minS.Data)
	}
	avgS := Statistic{Kind: Average}.Apply(b)
	if !equalValues(avgS.Data, []float64{2, 2, 2}) {
		t.Errorf("Average data = %v, want flat 2", avgS.Data)
	}
}

func TestFlatOverlayAllGaps(t *testing.T) {
	got := Statistic{Kind: Max}.Apply(base("v", math.NaN(), math.NaN()))
	if !math.IsNaN(got.Data[0]) || !math.IsNaN(got.Data[1]) {
		t.Errorf("all-gap Max = %v, want NaN line", got.Data)
	}
}

func TestPeriodDefaulting(t *testing.T) {
	for _, p := range []int{0, -5} {
		got := Statistic{Kind: SMA, Period: p}.Apply(base("v", 1, 2))
		if got.Name != "v (SMA 20)" {
			t.Errorf("period %d: name = %q, want default 20", p, got.Name)
		}
	}
}

// Extend keeps the base-then-its-overlays grouping and reads overlays
// only from base series, never from other overlays.
func TestExtendGroupingAndSnapshot(t *testing.T) {
	bases := []Series{base("a", 1, 2), base("b", 3, 4)}
	stats := []Statistic{{Kind: Max}, {Kind: EMA, Period: 3}}
	out := Extend(bases, stats)
	wantNames := []string{"a", "a (Max)", "a (EMA 3)", "b", "b (Max)", "b (EMA 3)"}
	if len(out) != len(wantNames) {
		t.Fatalf("len = %d, want %d", len(out), len(wantNames))
	}
	for i, n := range wantNames {
		if out[i].Name != n {
			t.Errorf("out[%d].Name = %q, want %q", i, out[i].Name, n)
		}
	}
	// b's Max must come from b alone, not from a's overlays
	if !equalValues(out[4].Data, []float64{4, 4}) {
		t.Errorf("b (Max) = %v, want flat 4", out[4].Data)
	}
}

func TestExtendPureAndIdempotent(t *testing.T) {
	bases := []Series{base("a", 1, math.NaN(), 3)}
	stats := []Statistic{{Kind: Average}, {Kind: SMA, Period: 2}}
	first := Extend(bases, stats)
	second := Extend(bases, stats)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || !equalValues(first[i].Data, second[i].Data) {
			t.Errorf("run mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}
	// the input bases must be untouched
	if !equalValues(bases[0].Data, []float64{1, math.NaN(), 3}) {
		t.Errorf("base mutated: %v", bases[0].Data)
	}
	// and mutating the output must not alias the input
	first[0].Data[0] = 99
	if bases[0].Data[0] != 1 {
		t.Error("output aliases the base backing array")
	}
}
