// Package pipeline runs the interactive charting flow: parse the
// document, let the user pick columns, a chart kind and statistics,
// then assemble the series list for a rendering surface. Each user
// interaction is a suspension point behind the Prompter interface;
// a cancelled prompt aborts the remaining steps with ErrCancelled so
// no partial chart is ever produced.
package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manueljmv/filechart/src/series"
	"github.com/manueljmv/filechart/src/tabular"
)

var (
	// ErrNoContent means the document had no parsable lines. Callers
	// show a message and abort with no side effects.
	ErrNoContent = errors.New("document contains no chartable data")
	// ErrCancelled means the user backed out at a prompt. Callers
	// abort silently.
	ErrCancelled = errors.New("selection cancelled")
)

// Document is the input buffer plus the identity it is keyed under.
type Document struct {
	ID   string
	Text string
	// Table may be pre-parsed (xlsx import); when set, Text is ignored.
	Table *tabular.Table
}

// Prompter is the host's side of every suspension point. Each method
// blocks until the user answers or cancels; the bool return is false
// on cancellation. Prompts may stay pending indefinitely.
type Prompter interface {
	PickColumns(headers []string, preselected []int) ([]string, bool)
	PickChartKind(kinds []string) (string, bool)
	PickStatistics(kinds []series.StatKind) ([]series.StatKind, bool)
	PickPeriod(kind series.StatKind, fallback int) (string, bool)
}

// ChartKinds are the tokens offered at the chart-kind prompt. The
// pipeline passes the chosen token through without interpreting it.
var ChartKinds = []string{"line", "area", "scatter"}

// RenderRequest is everything a rendering surface needs to draw the
// chart: plain data, no widget types.
type RenderRequest struct {
	ChartID    string
	Title      string
	Kind       string
	Categories []string
	Series     []series.Series
	// DelimiterGuessed signals the non-fatal sniffing warning so the
	// host can mention it alongside the chart.
	DelimiterGuessed bool
}

// ChartID derives the stable panel/state key from a document identity.
func ChartID(docID string) string {
	return "filechart:" + docID
}

// ParsePeriod turns the raw period answer into a positive integer,
// falling back to the default when missing or invalid.
func ParsePeriod(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return series.DefaultPeriod
	}
	return n
}

// Run drives the full flow for one document. The prompter is called
// sequentially; there is no concurrency inside a run. Returns
// ErrNoContent or ErrCancelled as described above.
func Run(doc Document, pr Prompter, lastUsed *LastUsedStore) (*RenderRequest, error) {
	tbl := doc.Table
	if tbl == nil {
		var err error
		tbl, err = tabular.Parse(doc.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoContent, doc.ID)
		}
	}
	if tbl.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, doc.ID)
	}

	prior, _ := lastUsed.Get(doc.ID)
	picked, ok := pr.PickColumns(tbl.Headers, DefaultMarks(tbl.Headers, prior))
	if !ok {
		picked = nil
	}
	selection, ok := Resolve(tbl.Headers, picked, prior)
	if !ok {
		return nil, ErrCancelled
	}
	if len(picked) > 0 {
		lastUsed.Put(doc.ID, selection)
	}

	kind, ok := pr.PickChartKind(ChartKinds)
	if !ok {
		return nil, ErrCancelled
	}

	statKinds, ok := pr.PickStatistics(series.Kinds)
	if !ok {
		return nil, ErrCancelled
	}
	stats := make([]series.Statistic, 0, len(statKinds))
	for _, k := range statKinds {
		st := series.Statistic{Kind: k}
		if k.Windowed() {
			raw, ok := pr.PickPeriod(k, series.DefaultPeriod)
			if !ok {
				return nil, ErrCancelled
			}
			st.Period = ParsePeriod(raw)
		}
		stats = append(stats, st)
	}

	categories, bases := series.Build(tbl, selection)
	return &RenderRequest{
		ChartID:          ChartID(doc.ID),
		Title:            doc.ID,
		Kind:             kind,
		Categories:       categories,
		Series:           series.Extend(bases, stats),
		DelimiterGuessed: tbl.DelimiterGuessed,
	}, nil
}
