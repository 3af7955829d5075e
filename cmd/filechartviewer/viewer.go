package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/manueljmv/filechart/cmd/filechartviewer/viewhelpers"
	"github.com/manueljmv/filechart/src/chartstate"
	"github.com/manueljmv/filechart/src/pipeline"
	"github.com/manueljmv/filechart/src/tabular"
)

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// viewerApp owns the two process-wide stores and the open panels.
// Panels are keyed by chart identity: invoking the flow again for a
// document whose panel exists reveals that panel instead of spawning
// a duplicate.
type viewerApp struct {
	app      fyne.App
	main     fyne.Window
	states   *chartstate.Store
	lastUsed *pipeline.LastUsedStore
	bridge   *chartstate.Bridge
	panels   map[string]*chartPanel

	showHints bool
}

type chartPanel struct {
	va    *viewerApp
	id    string
	win   fyne.Window
	img   *canvas.Image
	req   *pipeline.RenderRequest
	state chartstate.State
}

func runViewer(paths []string) error {
	a := app.NewWithID("com.filechart.viewer")
	a.Settings().SetTheme(&darkTheme{})
	va := &viewerApp{
		app:      a,
		states:   chartstate.NewStore(),
		lastUsed: pipeline.NewLastUsedStore(),
		panels:   map[string]*chartPanel{},
	}
	va.bridge = chartstate.NewBridge(va.states, func(chartID, msg string) {
		fmt.Printf("[filechart] runtime error on %s: %s\n", chartID, msg)
		fyne.Do(func() {
			dialog.ShowError(errors.New(msg), va.main)
		})
	})
	va.showHints = a.Preferences().BoolWithFallback("showHints", false)

	va.main = a.NewWindow("filechart")
	va.main.Resize(fyne.NewSize(520, 360))
	va.main.SetContent(va.buildMainContent())
	va.buildMenus()

	for _, p := range paths {
		va.openDocument(p)
	}
	va.main.ShowAndRun()
	va.bridge.Close()
	return nil
}

func (va *viewerApp) buildMainContent() fyne.CanvasObject {
	hintsChk := widget.NewCheck("Hints", func(b bool) {
		va.showHints = b
		va.app.Preferences().SetBool("showHints", b)
		for _, p := range va.panels {
			p.redraw()
		}
	})
	hintsChk.SetChecked(va.showHints)

	recent := widget.NewList(
		func() int { return len(va.recentFiles()) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			files := va.recentFiles()
			if i < len(files) {
				o.(*widget.Label).SetText(truncatePath(files[i], 56))
			}
		},
	)
	recent.OnSelected = func(i widget.ListItemID) {
		files := va.recentFiles()
		if i < len(files) {
			va.openDocument(files[i])
		}
		recent.UnselectAll()
	}

	top := container.NewHBox(
		widget.NewButton("Open…", func() { va.openFileDialog() }),
		hintsChk,
	)
	return container.NewBorder(top, nil, nil, nil,
		container.NewBorder(widget.NewLabel("Recent files"), nil, nil, nil, recent))
}

func (va *viewerApp) buildMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { va.openFileDialog() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { va.main.Close() }),
	)
	va.main.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (va *viewerApp) openFileDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		va.openDocument(rc.URI().Path())
	}, va.main)
	d.Show()
}

// openDocument runs the pipeline for path, or reveals the existing
// panel when one is already open for that document.
func (va *viewerApp) openDocument(path string) {
	path = filepath.Clean(path)
	chartID := pipeline.ChartID(path)
	if p, ok := va.panels[chartID]; ok {
		p.reveal()
		return
	}

	doc, err := loadDocument(path, renderSheet)
	if err != nil {
		dialog.ShowError(err, va.main)
		return
	}
	va.addRecentFile(path)

	pr := &dialogPrompter{win: va.main}
	go func() {
		req, err := pipeline.Run(doc, pr, va.lastUsed)
		switch {
		case errors.Is(err, pipeline.ErrCancelled):
			return // silent abort, nothing was shown
		case err != nil:
			fyne.Do(func() { dialog.ShowError(err, va.main) })
			return
		}
		fyne.Do(func() { va.showPanel(req) })
	}()
}

// loadDocument reads path into a pipeline document. Spreadsheets go
// through the xlsx importer, everything else is treated as delimited
// text.
func loadDocument(path, sheet string) (pipeline.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		tbl, err := tabular.ParseXLSX(path, sheet)
		if err != nil {
			return pipeline.Document{}, err
		}
		return pipeline.Document{ID: path, Table: tbl}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return pipeline.Document{ID: path, Text: string(raw)}, nil
}

// showPanel creates the chart window for a finished pipeline run,
// restoring any persisted view state for this chart identity.
func (va *viewerApp) showPanel(req *pipeline.RenderRequest) {
	st, ok := va.states.Get(req.ChartID)
	if !ok {
		st = chartstate.State{SeriesVisibility: make([]bool, len(req.Series))}
		for i := range st.SeriesVisibility {
			st.SeriesVisibility[i] = true
		}
	}
	p := &chartPanel{
		va:    va,
		id:    req.ChartID,
		win:   va.app.NewWindow(filepath.Base(req.Title)),
		img:   canvas.NewImageFromImage(blank(900, 400)),
		req:   req,
		state: st,
	}
	p.img.FillMode = canvas.ImageFillContain
	p.img.SetMinSize(fyne.NewSize(900, 400))
	va.panels[req.ChartID] = p

	if req.DelimiterGuessed {
		fmt.Printf("[filechart] no delimiter detected in %s, assuming tab\n", req.Title)
	}

	p.win.SetContent(p.buildContent())
	// Closing the window hides the panel; state survives for the next
	// reveal. Teardown happens through the Close Panel button.
	p.win.SetCloseIntercept(func() { p.win.Hide() })
	p.win.Resize(fyne.NewSize(960, 560))
	p.redraw()
	p.win.Show()
}

func (p *chartPanel) buildContent() fyne.CanvasObject {
	// legend toggles, one per rendered series in series order
	toggles := container.NewHBox()
	for i, s := range p.req.Series {
		i := i
		chk := widget.NewCheck(s.Name, func(b bool) {
			p.state.SeriesVisibility[i] = b
			p.mutated()
		})
		chk.SetChecked(p.state.Visible(i))
		toggles.Add(chk)
	}

	zoomRow := container.NewHBox(
		widget.NewLabel("X:"),
		widget.NewButton("+", func() { p.zoomX(0.5) }),
		widget.NewButton("-", func() { p.zoomX(2) }),
		widget.NewLabel("Y:"),
		widget.NewButton("+", func() { p.zoomY(0.5) }),
		widget.NewButton("-", func() { p.zoomY(2) }),
		widget.NewButton("Reset", func() {
			p.state.XRange = nil
			p.state.YRange = nil
			p.mutated()
		}),
		widget.NewButton("Export PNG…", func() { p.exportPNG() }),
		widget.NewButton("Close Panel", func() { p.teardown() }),
	)

	return container.NewBorder(
		container.NewVBox(zoomRow, container.NewHScroll(toggles)),
		nil, nil, nil,
		p.img,
	)
}

func (p *chartPanel) currentXRange() (float64, float64) {
	if p.state.XRange != nil {
		return p.state.XRange.Min, p.state.XRange.Max
	}
	return 0.5, float64(len(p.req.Categories)) + 0.5
}

func (p *chartPanel) currentYRange() (float64, float64) {
	if p.state.YRange != nil {
		return p.state.YRange.Min, p.state.YRange.Max
	}
	var data [][]float64
	for i, s := range p.req.Series {
		if p.state.Visible(i) {
			data = append(data, s.Data)
		}
	}
	min, max, ok := viewhelpers.FiniteExtent(data...)
	if !ok {
		return 0, 1
	}
	return viewhelpers.NiceAxisBounds(min, max)
}

func (p *chartPanel) zoomX(factor float64) {
	min, max := p.currentXRange()
	min, max = viewhelpers.Zoom(min, max, factor)
	p.state.XRange = &chartstate.Range{Min: min, Max: max}
	p.mutated()
}

func (p *chartPanel) zoomY(factor float64) {
	min, max := p.currentYRange()
	min, max = viewhelpers.Zoom(min, max, factor)
	p.state.YRange = &chartstate.Range{Min: min, Max: max}
	p.mutated()
}

// mutated reports the whole replacement state to the store and
// redraws. Every zoom, reset and legend toggle lands here.
func (p *chartPanel) mutated() {
	p.va.bridge.Report(chartstate.StateUpdated{ChartID: p.id, State: p.state})
	p.redraw()
}

// reveal shows an existing panel again with its persisted view state.
func (p *chartPanel) reveal() {
	if st, ok := p.va.states.Get(p.id); ok {
		p.state = st
	}
	p.redraw()
	p.win.Show()
	p.win.RequestFocus()
}

func (p *chartPanel) redraw() {
	w, h := viewhelpers.ComputeChartDimensions(int(p.win.Canvas().Size().Width))
	img, err := renderChart(p.req, p.state, w, h)
	if err != nil {
		// surfaced once, panel stays up with its previous image
		p.va.bridge.Report(chartstate.RuntimeError{ChartID: p.id, Message: err.Error()})
		return
	}
	if p.va.showHints {
		img = drawHint(img, "Hint: toggle series below; +/- zooms, Reset restores auto axes.")
	}
	p.img.Image = img
	p.img.Refresh()
}

// teardown permanently closes the panel and discards its state.
func (p *chartPanel) teardown() {
	p.va.states.Delete(p.id)
	delete(p.va.panels, p.id)
	p.win.Close()
}

func (p *chartPanel) exportPNG() {
	if p.img.Image == nil {
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := writePNG(wc, p.img.Image); err != nil {
			p.va.bridge.Report(chartstate.RuntimeError{ChartID: p.id, Message: err.Error()})
		}
	}, p.win)
	fs.SetFileName(filepath.Base(p.req.Title) + ".png")
	fs.Show()
}

// recent files, newest first, capped at ten
func (va *viewerApp) recentFiles() []string {
	raw := va.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (va *viewerApp) addRecentFile(path string) {
	list := va.recentFiles()
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < 10 {
			filtered = append(filtered, f)
		}
	}
	va.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
