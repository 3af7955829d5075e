// Package tabular turns raw delimited text into a header row plus a
// row-major cell matrix. The delimiter is sniffed from the first
// non-empty line only; there is no quoting or escaping support.
package tabular

import (
	"errors"
	"strings"
)

// ErrNoData indicates the content had no usable lines after filtering.
var ErrNoData = errors.New("no usable lines in content")

// Table is the parsed form of a delimited buffer. Rows are lenient:
// a row may carry fewer or more fields than Headers, so positional
// access must go through Cell.
type Table struct {
	Headers []string
	Rows    [][]string

	// Delimiter is the rune the content was split on.
	Delimiter rune
	// DelimiterGuessed is true when the header line contained none of
	// the known delimiters and the tab fallback was used.
	DelimiterGuessed bool
}

// Cell returns the field at (row, col). The second return is false
// when the row is shorter than col+1 or the coordinates are out of
// range entirely.
func (t *Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return "", false
	}
	r := t.Rows[row]
	if col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Empty reports whether the table holds no headers and no rows.
func (t *Table) Empty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// Sniff picks the delimiter from a header line. Precedence is tab,
// then ';', then '|'. The second return is false when none of them
// occur and tab is returned as a fallback.
func Sniff(line string) (rune, bool) {
	switch {
	case strings.ContainsRune(line, '\t'):
		return '\t', true
	case strings.ContainsRune(line, ';'):
		return ';', true
	case strings.ContainsRune(line, '|'):
		return '|', true
	default:
		return '\t', false
	}
}

// Parse splits text into non-empty lines, sniffs the delimiter from
// the first line and builds a Table. Header fields are trimmed; data
// row fields are kept verbatim (the asymmetry is intentional, editors
// produce padded headers far more often than padded cells and
// downstream numeric parsing tolerates spaces anyway). Returns
// ErrNoData when nothing but blank lines remain.
func Parse(text string) (*Table, error) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSuffix(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return &Table{}, ErrNoData
	}

	delim, found := Sniff(lines[0])
	sep := string(delim)

	headers := strings.Split(lines[0], sep)
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, ln := range lines[1:] {
		rows = append(rows, strings.Split(ln, sep))
	}

	return &Table{
		Headers:          headers,
		Rows:             rows,
		Delimiter:        delim,
		DelimiterGuessed: !found,
	}, nil
}
