package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	png "image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/manueljmv/filechart/cmd/filechartviewer/viewhelpers"
	"github.com/manueljmv/filechart/src/chartstate"
	"github.com/manueljmv/filechart/src/pipeline"
	"github.com/manueljmv/filechart/src/series"
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorGreen,
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorCyan,
	chart.ColorAlternateGray,
}

// seriesStyle maps the core's rendering hints onto go-chart strokes.
func seriesStyle(s series.Series, kind string, slot int) chart.Style {
	col := palette[slot%len(palette)]
	st := chart.Style{StrokeColor: col, StrokeWidth: 2}
	switch s.Style {
	case series.Dashed:
		st.StrokeDashArray = []float64{6, 4}
	case series.Dotted:
		st.StrokeDashArray = []float64{2, 3}
	}
	if s.MarkerEnabled {
		st.DotWidth = 3
		st.DotColor = col
	}
	// overlays keep their line style regardless of chart kind
	if s.Style == series.Solid {
		switch kind {
		case "scatter":
			st.StrokeWidth = 0
			st.DotWidth = 4
		case "area":
			st.FillColor = col.WithAlpha(60)
		}
	}
	return st
}

// renderChart draws the request with the given view state applied:
// zoom ranges override the automatic axis bounds, and series whose
// visibility flag is off are skipped while keeping palette slots
// stable.
func renderChart(req *pipeline.RenderRequest, st chartstate.State, w, h int) (image.Image, error) {
	n := len(req.Categories)
	if n == 0 {
		return nil, fmt.Errorf("no rows to chart")
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}

	step := viewhelpers.CategoryTickStep(n, 12)
	ticks := make([]chart.Tick, 0, n/step+2)
	for i := 0; i < n; i += step {
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: req.Categories[i]})
	}

	var chSeries []chart.Series
	var visibleData [][]float64
	for i, s := range req.Series {
		if !st.Visible(i) {
			continue
		}
		ys := s.Data
		sx := xs
		if n == 1 {
			// go-chart needs a non-zero X delta
			sx = []float64{1, 2}
			ys = []float64{s.Data[0], s.Data[0]}
		}
		chSeries = append(chSeries, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: sx,
			YValues: ys,
			Style:   seriesStyle(s, req.Kind, i),
		})
		visibleData = append(visibleData, s.Data)
	}
	if len(chSeries) == 0 {
		return nil, fmt.Errorf("all series hidden")
	}

	xRange := &chart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5}
	if n == 1 {
		xRange.Max = 2.5
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
	}
	if st.XRange != nil {
		xRange = &chart.ContinuousRange{Min: st.XRange.Min, Max: st.XRange.Max}
	}

	var yRange *chart.ContinuousRange
	if st.YRange != nil {
		yRange = &chart.ContinuousRange{Min: st.YRange.Min, Max: st.YRange.Max}
	} else if min, max, ok := viewhelpers.FiniteExtent(visibleData...); ok {
		nMin, nMax := viewhelpers.NiceAxisBounds(min, max)
		yRange = &chart.ContinuousRange{Min: nMin, Max: nMax}
	}

	ch := chart.Chart{
		Title:      req.Title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		Width:      w,
		Height:     h,
		XAxis:      chart.XAxis{Ticks: ticks, Range: xRange},
		YAxis:      chart.YAxis{Range: yRange, ValueFormatter: yTickFormatter},
		Series:     chSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart png: %w", err)
	}
	return img, nil
}

func yTickFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return viewhelpers.FormatTick(f)
}

func writePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// blank returns a dark placeholder image shown before the first
// successful render and after render failures.
func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}
	return img
}

// drawHint draws a small text banner near the bottom-left of the
// chart image.
func drawHint(img image.Image, text string) image.Image {
	if img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
