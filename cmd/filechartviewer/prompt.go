package main

import (
	"fmt"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/manueljmv/filechart/src/series"
)

// dialogPrompter implements pipeline.Prompter with modal fyne dialogs.
// The pipeline runs on its own goroutine and blocks on a channel at
// each prompt, so dialogs must be shown via fyne.Do; user answers are
// delivered through the channel. A dismissed dialog counts as
// cancellation.
type dialogPrompter struct {
	win fyne.Window
}

type answer[T any] struct {
	value T
	ok    bool
}

func (p *dialogPrompter) PickColumns(headers []string, preselected []int) ([]string, bool) {
	res := make(chan answer[[]string], 1)
	fyne.Do(func() {
		// index 0 is the category column and is always included
		options := append([]string(nil), headers[1:]...)
		group := widget.NewCheckGroup(options, nil)
		marks := make([]string, 0, len(preselected))
		for _, i := range preselected {
			if i > 0 && i < len(headers) {
				marks = append(marks, headers[i])
			}
		}
		group.SetSelected(marks)
		scroll := container.NewVScroll(group)
		scroll.SetMinSize(fyne.NewSize(320, 280))
		d := dialog.NewCustomConfirm("Select columns to chart", "Next", "Cancel", scroll, func(ok bool) {
			if !ok {
				res <- answer[[]string]{}
				return
			}
			res <- answer[[]string]{value: group.Selected, ok: true}
		}, p.win)
		d.Show()
	})
	a := <-res
	return a.value, a.ok
}

func (p *dialogPrompter) PickChartKind(kinds []string) (string, bool) {
	res := make(chan answer[string], 1)
	fyne.Do(func() {
		group := widget.NewRadioGroup(kinds, nil)
		if len(kinds) > 0 {
			group.SetSelected(kinds[0])
		}
		d := dialog.NewCustomConfirm("Chart kind", "Next", "Cancel", group, func(ok bool) {
			if !ok || group.Selected == "" {
				res <- answer[string]{}
				return
			}
			res <- answer[string]{value: group.Selected, ok: true}
		}, p.win)
		d.Show()
	})
	a := <-res
	return a.value, a.ok
}

func (p *dialogPrompter) PickStatistics(kinds []series.StatKind) ([]series.StatKind, bool) {
	res := make(chan answer[[]series.StatKind], 1)
	fyne.Do(func() {
		labels := make([]string, len(kinds))
		for i, k := range kinds {
			labels[i] = string(k)
		}
		group := widget.NewCheckGroup(labels, nil)
		d := dialog.NewCustomConfirm("Add statistics", "Chart", "Cancel", group, func(ok bool) {
			if !ok {
				res <- answer[[]series.StatKind]{}
				return
			}
			picked := make([]series.StatKind, 0, len(group.Selected))
			for _, k := range kinds {
				for _, sel := range group.Selected {
					if string(k) == sel {
						picked = append(picked, k)
					}
				}
			}
			res <- answer[[]series.StatKind]{value: picked, ok: true}
		}, p.win)
		d.Show()
	})
	a := <-res
	return a.value, a.ok
}

func (p *dialogPrompter) PickPeriod(kind series.StatKind, fallback int) (string, bool) {
	res := make(chan answer[string], 1)
	fyne.Do(func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder(fmt.Sprintf("%d", fallback))
		form := container.NewVBox(
			widget.NewLabel(fmt.Sprintf("%s period (positive integer)", kind)),
			entry,
		)
		d := dialog.NewCustomConfirm(fmt.Sprintf("%s period", kind), "OK", "Cancel", form, func(ok bool) {
			if !ok {
				res <- answer[string]{}
				return
			}
			res <- answer[string]{value: entry.Text, ok: true}
		}, p.win)
		d.Show()
	})
	a := <-res
	return a.value, a.ok
}

// flagPrompter answers every prompt from command-line flags for the
// headless render subcommand. Nothing can be cancelled; an empty
// columns flag means "all columns", matching the interactive default.
type flagPrompter struct {
	columns []string
	kind    string
	stats   []series.Statistic
}

// parseStatsFlag parses "Max,SMA:14,EMA" into statistics.
func parseStatsFlag(raw string) ([]series.Statistic, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []series.Statistic
	for _, tok := range strings.Split(raw, ",") {
		name, period, _ := strings.Cut(strings.TrimSpace(tok), ":")
		var kind series.StatKind
		for _, k := range series.Kinds {
			if strings.EqualFold(name, string(k)) {
				kind = k
			}
		}
		if kind == "" {
			return nil, fmt.Errorf("unknown statistic %q", name)
		}
		st := series.Statistic{Kind: kind}
		if period != "" {
			st.Period = parseIntOr(period, 0)
		}
		out = append(out, st)
	}
	return out, nil
}

func parseIntOr(s string, fallback int) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return fallback
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return fallback
	}
	return n
}

func (p *flagPrompter) PickColumns(headers []string, preselected []int) ([]string, bool) {
	if len(p.columns) > 0 {
		return p.columns, true
	}
	return append([]string(nil), headers[1:]...), true
}

func (p *flagPrompter) PickChartKind(kinds []string) (string, bool) {
	if p.kind != "" {
		return p.kind, true
	}
	return kinds[0], true
}

func (p *flagPrompter) PickStatistics(kinds []series.StatKind) ([]series.StatKind, bool) {
	out := make([]series.StatKind, len(p.stats))
	for i, st := range p.stats {
		out[i] = st.Kind
	}
	return out, true
}

func (p *flagPrompter) PickPeriod(kind series.StatKind, fallback int) (string, bool) {
	for _, st := range p.stats {
		if st.Kind == kind && st.Period > 0 {
			return fmt.Sprintf("%d", st.Period), true
		}
	}
	return "", true
}
