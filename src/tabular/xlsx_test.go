package tabular

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	for ref, v := range cells {
		if err := f.SetCellValue("Sheet1", ref, v); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string]any{
		"A1": " Date ", "B1": "Value",
		"A2": "01", "B2": 10,
		"A3": "02", "B3": 11,
	})
	tbl, err := ParseXLSX(path, "")
	if err != nil {
		t.Fatalf("ParseXLSX returned error: %v", err)
	}
	if got, want := tbl.Headers, []string{"Date", "Value"}; !reflect.DeepEqual(got, want) {
		t.Errorf("headers = %v, want %v", got, want)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if v, ok := tbl.Cell(0, 1); !ok || v != "10" {
		t.Errorf("Cell(0,1) = (%q,%v)", v, ok)
	}
}

func TestParseXLSXEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseXLSX(path, ""); err != ErrNoData {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestParseXLSXMissingFile(t *testing.T) {
	if _, err := ParseXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), ""); err == nil {
		t.Error("expected an error for a missing workbook")
	}
}
