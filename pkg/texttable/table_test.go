package texttable

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewNeedsColumns(t *testing.T) {
	if _, err := New("."); !errors.Is(err, ErrNoColumns) {
		t.Errorf("New() = %v, want ErrNoColumns", err)
	}
}

func TestAddRowFillsAndDrops(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3, 4) // extra value dropped
	tbl.AddRow(5)          // missing values render empty

	want := [][]any{
		{1, 2, 3},
		{5, nil, nil},
	}
	if diff := cmp.Diff(want, tbl.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%v", diff)
	}
}

func TestAttributeInheritanceOnInsert(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow("a", "b", "c")

	attr := DefaultAttribute()
	attr.Align = BottomRight
	attr.Split = true
	if err := tbl.SetAttr(At(0), At(1), attr); err != nil {
		t.Fatalf("SetAttr() = %v", err)
	}

	// The next row copies each cell attribute from the row above.
	tbl.AddRow("d", "e", "f")
	got, err := tbl.Attr(At(1), At(1))
	if err != nil {
		t.Fatalf("Attr() = %v", err)
	}
	if diff := cmp.Diff(attr, got); diff != "" {
		t.Errorf("inherited attr diff (-want +got):\n%v", diff)
	}

	// Inserting at the top falls back to the baseline instead.
	tbl.InsertRow(0, Descriptor{}, []any{"x", "y", "z"})
	got, err = tbl.Attr(At(0), At(1))
	if err != nil {
		t.Fatalf("Attr() = %v", err)
	}
	if diff := cmp.Diff(DefaultAttribute(), got); diff != "" {
		t.Errorf("baseline attr diff (-want +got):\n%v", diff)
	}
}

func TestColumnInheritanceOnInsert(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow("a", "b", "c")
	attr := DefaultAttribute()
	attr.Align = CenterRight
	if err := tbl.SetAttr(At(0), At(0), attr); err != nil {
		t.Fatalf("SetAttr() = %v", err)
	}

	tbl.InsertCol(1, Col("x", "X"), []any{"v"})
	got, err := tbl.Attr(At(0), At(1))
	if err != nil {
		t.Fatalf("Attr() = %v", err)
	}
	if diff := cmp.Diff(attr, got); diff != "" {
		t.Errorf("new column cell attr diff (-want +got):\n%v", diff)
	}
}

func TestInsertDeleteRowRoundTrip(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3)
	tbl.AddRow(4, 5, 6)
	before := tbl.Values()

	tbl.InsertRow(1, Descriptor{Key: "tmp", Title: "tmp"}, []any{7, 8, 9})
	tbl.DeleteRow(1)

	if diff := cmp.Diff(before, tbl.Values()); diff != "" {
		t.Errorf("values after round trip diff (-want +got):\n%v", diff)
	}
	if got := tbl.NumRows(); got != 2 {
		t.Errorf("NumRows() = %d, want 2", got)
	}
}

func TestInsertDeleteColRoundTrip(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3)
	beforeValues := tbl.Values()
	beforeHeader := tbl.Header()

	tbl.InsertCol(1, Col("x", "X"), []any{"v"})
	tbl.DeleteCol(1)

	if diff := cmp.Diff(beforeValues, tbl.Values()); diff != "" {
		t.Errorf("values after round trip diff (-want +got):\n%v", diff)
	}
	if diff := cmp.Diff(beforeHeader, tbl.Header()); diff != "" {
		t.Errorf("header after round trip diff (-want +got):\n%v", diff)
	}
	if _, err := resolve(tbl.cols, Key("b")); err != nil {
		t.Errorf("key lookup after round trip = %v", err)
	}
}

// Deleting the last column leaves a synthetic fallback column so the layout
// algorithms always have at least one column to work with.
func TestDeleteLastColInstallsFallback(t *testing.T) {
	tbl, err := New(".", Col("only", "Only"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tbl.AddRow("x")
	tbl.DeleteCol(0)

	if got := tbl.NumCols(); got != 1 {
		t.Fatalf("NumCols() = %d, want 1", got)
	}
	if diff := cmp.Diff([]string{"Title1"}, tbl.Header()); diff != "" {
		t.Errorf("Header() diff (-want +got):\n%v", diff)
	}
	if _, err := resolve(tbl.cols, Key("title1")); err != nil {
		t.Errorf("fallback key lookup = %v", err)
	}
	if diff := cmp.Diff([][]any{{nil}}, tbl.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%v", diff)
	}
}

func TestSwapRowsAndCols(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3)
	tbl.AddRow(4, 5, 6)

	tbl.SwapRows(0, 1)
	if diff := cmp.Diff([][]any{{4, 5, 6}, {1, 2, 3}}, tbl.Values()); diff != "" {
		t.Errorf("values after SwapRows diff (-want +got):\n%v", diff)
	}

	tbl.SwapCols(0, 2)
	if diff := cmp.Diff([]string{"C", "B", "A"}, tbl.Header()); diff != "" {
		t.Errorf("header after SwapCols diff (-want +got):\n%v", diff)
	}
	if diff := cmp.Diff([][]any{{6, 5, 4}, {3, 2, 1}}, tbl.Values()); diff != "" {
		t.Errorf("values after SwapCols diff (-want +got):\n%v", diff)
	}
}

func TestSetRange(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(0, 0, 0)
	tbl.AddRow(0, 0, 0)

	err := tbl.SetRange(Span(At(0), At(2)), Span(Key("b"), Key("c")), [][]any{
		{1, 2},
		{3, 4},
	})
	if err != nil {
		t.Fatalf("SetRange() = %v", err)
	}
	want := [][]any{
		{0, 1, 2},
		{0, 3, 4},
	}
	if diff := cmp.Diff(want, tbl.Values()); diff != "" {
		t.Errorf("Values() diff (-want +got):\n%v", diff)
	}
}

func TestSetRangeShapeMismatch(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(0, 0, 0)
	before := tbl.Values()

	err := tbl.SetRange(All, All, [][]any{{1, 2}})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("SetRange() = %v, want ErrShapeMismatch", err)
	}
	if diff := cmp.Diff(before, tbl.Values()); diff != "" {
		t.Errorf("table mutated by failed SetRange (-want +got):\n%v", diff)
	}
}

func TestUpdateKey(t *testing.T) {
	tbl := threeCols(t)
	if err := tbl.UpdateKey("b", "beta"); err != nil {
		t.Fatalf("UpdateKey() = %v", err)
	}
	pos, err := resolve(tbl.cols, Key("beta"))
	if err != nil || pos != 1 {
		t.Errorf("resolve(Key(beta)) = %d, %v, want 1, nil", pos, err)
	}
	if err := tbl.UpdateKey("a", "c"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("UpdateKey(a, c) = %v, want ErrDuplicateKey", err)
	}
}

func TestRowAndColumnReaders(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3)
	tbl.AddRow(4, 5, 6)

	row, err := tbl.Row(At(1))
	if err != nil {
		t.Fatalf("Row() = %v", err)
	}
	if diff := cmp.Diff([]any{4, 5, 6}, row); diff != "" {
		t.Errorf("Row() diff (-want +got):\n%v", diff)
	}

	col, err := tbl.Column(Key("b"))
	if err != nil {
		t.Fatalf("Column() = %v", err)
	}
	if diff := cmp.Diff([]any{2, 5}, col); diff != "" {
		t.Errorf("Column() diff (-want +got):\n%v", diff)
	}
}

func TestValueAccessors(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow("x", "y", "z")

	if err := tbl.SetValue(At(0), Key("c"), "zz"); err != nil {
		t.Fatalf("SetValue() = %v", err)
	}
	got, err := tbl.Value(At(0), At(2))
	if err != nil {
		t.Fatalf("Value() = %v", err)
	}
	if got != "zz" {
		t.Errorf("Value() = %v, want zz", got)
	}
}

func TestSetColAlign(t *testing.T) {
	tbl := threeCols(t)
	tbl.AddRow(1, 2, 3)
	tbl.AddRow(4, 5, 6)

	if err := tbl.SetColAlign(Key("b"), TopRight); err != nil {
		t.Fatalf("SetColAlign() = %v", err)
	}
	for i := 0; i < 2; i++ {
		attr, err := tbl.Attr(At(i), At(1))
		if err != nil {
			t.Fatalf("Attr() = %v", err)
		}
		if attr.Align != TopRight {
			t.Errorf("row %d align = %+v, want TopRight", i, attr.Align)
		}
	}
}
