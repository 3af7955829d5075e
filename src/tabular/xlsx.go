package tabular

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads one sheet of an xlsx workbook into the same Table
// shape Parse produces, so spreadsheet files can feed the pipeline
// without a separate code path. An empty sheet name selects the first
// sheet. Header cells are trimmed like Parse does; data cells are
// passed through as excelize formats them.
func ParseXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// Drop rows that are entirely blank, mirroring the blank-line
	// filtering of the text parser.
	rows := raw[:0]
	for _, r := range raw {
		blank := true
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return &Table{}, ErrNoData
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return &Table{
		Headers:   headers,
		Rows:      rows[1:],
		Delimiter: '\t',
	}, nil
}
