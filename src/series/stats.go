package series

import (
	"fmt"
	"math"
)

// StatKind names a derived statistic.
type StatKind string

const (
	Max     StatKind = "Max"
	Min     StatKind = "Min"
	Average StatKind = "Average"
	SMA     StatKind = "SMA"
	EMA     StatKind = "EMA"
)

// Kinds lists every statistic in presentation order.
var Kinds = []StatKind{Max, Min, Average, SMA, EMA}

// DefaultPeriod is used when a moving-average period is missing or
// not a positive integer.
const DefaultPeriod = 20

// Statistic is one requested overlay. Period only applies to SMA and
// EMA; other kinds ignore it.
type Statistic struct {
	Kind   StatKind
	Period int
}

// Windowed reports whether the kind takes a period.
func (k StatKind) Windowed() bool { return k == SMA || k == EMA }

func (s Statistic) period() int {
	if s.Period < 1 {
		return DefaultPeriod
	}
	return s.Period
}

// Apply derives one overlay series from base. The base is never
// modified. Gap handling differs per kind and is contractual:
//
//   - Max/Min/Average skip gaps entirely and render a flat line.
//   - SMA counts gaps as zero inside its window but still divides by
//     the full period, biasing windows with gaps toward zero.
//   - EMA carries the previous value forward across gaps; a gap at
//     index 0 seeds the whole series with NaN.
func (s Statistic) Apply(base Series) Series {
	switch s.Kind {
	case Max, Min, Average:
		return flatOverlay(base, s.Kind)
	case SMA:
		return smaOverlay(base, s.period())
	case EMA:
		return emaOverlay(base, s.period())
	default:
		return Series{Name: base.Name + " (?)", Data: make([]float64, len(base.Data))}
	}
}

// Extend returns the full rendering list: each base series followed
// immediately by its overlays in request order. Overlays are computed
// from the base snapshot only, never from other overlays.
func Extend(bases []Series, stats []Statistic) []Series {
	out := make([]Series, 0, len(bases)*(1+len(stats)))
	for _, b := range bases {
		out = append(out, b.Clone())
		for _, st := range stats {
			out = append(out, st.Apply(b))
		}
	}
	return out
}

func flatOverlay(base Series, kind StatKind) Series {
	scalar := math.NaN()
	count := 0
	sum := 0.0
	for _, v := range base.Data {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case count == 0:
			scalar = v
		case kind == Max && v > scalar:
			scalar = v
		case kind == Min && v < scalar:
			scalar = v
		}
		sum += v
		count++
	}
	if kind == Average && count > 0 {
		scalar = sum / float64(count)
	}
	data := make([]float64, len(base.Data))
	for i := range data {
		data[i] = scalar
	}
	return Series{
		Name:  fmt.Sprintf("%s (%s)", base.Name, kind),
		Data:  data,
		Style: Dashed,
	}
}

func smaOverlay(base Series, period int) Series {
	data := make([]float64, len(base.Data))
	for i := range base.Data {
		if i < period-1 {
			data[i] = math.NaN()
			continue
		}
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			if v := base.Data[j]; !math.IsNaN(v) {
				sum += v
			}
		}
		data[i] = sum / float64(period)
	}
	return Series{
		Name:  fmt.Sprintf("%s (SMA %d)", base.Name, period),
		Data:  data,
		Style: Dashed,
	}
}

func emaOverlay(base Series, period int) Series {
	data := make([]float64, len(base.Data))
	if len(base.Data) == 0 {
		return Series{Name: fmt.Sprintf("%s (EMA %d)", base.Name, period), Style: Dotted}
	}
	k := 2.0 / float64(period+1)
	data[0] = base.Data[0]
	for i := 1; i < len(base.Data); i++ {
		v := base.Data[i]
		if math.IsNaN(v) {
			data[i] = data[i-1]
			continue
		}
		data[i] = v*k + data[i-1]*(1-k)
	}
	return Series{
		Name:  fmt.Sprintf("%s (EMA %d)", base.Name, period),
		Data:  data,
		Style: Dotted,
	}
}
