package series

import (
	"math"
	"reflect"
	"testing"

	"github.com/manueljmv/filechart/src/tabular"
)

func mustParse(t *testing.T, text string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return tbl
}

func TestBuildCategoriesAndSeries(t *testing.T) {
	tbl := mustParse(t, "Date;Open;Close\n01;10;20\n02;11;21\n03;12;22\n")
	cats, bases := Build(tbl, []int{0, 2})
	if got, want := cats, []string{"01", "02", "03"}; !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
	if len(bases) != 1 {
		t.Fatalf("bases = %d, want 1", len(bases))
	}
	if bases[0].Name != "Close" {
		t.Errorf("series name = %q, want Close", bases[0].Name)
	}
	if got, want := bases[0].Data, []float64{20, 21, 22}; !reflect.DeepEqual(got, want) {
		t.Errorf("data = %v, want %v", got, want)
	}
}

func TestBuildNonNumericCellBecomesGap(t *testing.T) {
	tbl := mustParse(t, "x;y\n1;10\n2;abc\n3;\n4;12\n")
	_, bases := Build(tbl, []int{0, 1})
	d := bases[0].Data
	if !math.IsNaN(d[1]) || !math.IsNaN(d[2]) {
		t.Errorf("expected gaps at rows 1 and 2, got %v", d)
	}
	if d[0] != 10 || d[3] != 12 {
		t.Errorf("numeric cells mangled: %v", d)
	}
}

func TestBuildShortRowYieldsGap(t *testing.T) {
	tbl := mustParse(t, "x|a|b\n1|2|3\n4|5\n")
	_, bases := Build(tbl, []int{0, 2})
	d := bases[0].Data
	if d[0] != 3 {
		t.Errorf("data[0] = %v, want 3", d[0])
	}
	if !math.IsNaN(d[1]) {
		t.Errorf("missing field should be a gap, got %v", d[1])
	}
}

func TestBuildParsesPaddedNumbers(t *testing.T) {
	tbl := mustParse(t, "x;v\na; 1.5 \n")
	_, bases := Build(tbl, []int{0, 1})
	if bases[0].Data[0] != 1.5 {
		t.Errorf("padded cell = %v, want 1.5", bases[0].Data[0])
	}
}

func TestBuildCategoryOnlySelection(t *testing.T) {
	tbl := mustParse(t, "x;v\na;1\n")
	cats, bases := Build(tbl, []int{0})
	if len(cats) != 1 || bases != nil {
		t.Errorf("got cats=%v bases=%v, want one category and no series", cats, bases)
	}
}
