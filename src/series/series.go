// Package series converts selected table columns into numeric series
// and derives statistic overlays (Max, Min, Average, SMA, EMA) from
// them. Gaps are carried as NaN so they render as missing points, not
// as zeroes.
package series

import (
	"math"
	"strconv"

	"github.com/manueljmv/filechart/src/tabular"
)

// LineStyle is a rendering hint attached to a series. The core never
// interprets it; the rendering surface maps it to stroke styles.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
	Dotted
)

// Series is one named numeric column, aligned with the category rows.
// NaN entries mark cells that did not parse as numbers.
type Series struct {
	Name          string
	Data          []float64
	Style         LineStyle
	MarkerEnabled bool
}

// Clone returns a deep copy so overlays and renderers can never
// mutate a caller's series through a shared backing array.
func (s Series) Clone() Series {
	out := s
	out.Data = append([]float64(nil), s.Data...)
	return out
}

// Build produces the category labels and one base series per selected
// column after the first. Categories are the raw first-column strings;
// rows shorter than the selection simply yield gaps.
func Build(t *tabular.Table, selection []int) (categories []string, bases []Series) {
	categories = make([]string, len(t.Rows))
	for i := range t.Rows {
		categories[i], _ = t.Cell(i, 0)
	}
	if len(selection) < 2 {
		return categories, nil
	}
	for _, col := range selection[1:] {
		name := ""
		if col >= 0 && col < len(t.Headers) {
			name = t.Headers[col]
		}
		data := make([]float64, len(t.Rows))
		for i := range t.Rows {
			data[i] = parseCell(t, i, col)
		}
		bases = append(bases, Series{Name: name, Data: data, MarkerEnabled: true})
	}
	return categories, bases
}

func parseCell(t *tabular.Table, row, col int) float64 {
	field, ok := t.Cell(row, col)
	if !ok {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(trimCell(field), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// trimCell strips surrounding spaces before numeric parsing. Data
// fields keep their raw text in the table, but "  1.5 " should still
// chart as 1.5.
func trimCell(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}
