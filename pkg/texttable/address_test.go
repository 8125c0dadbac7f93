package texttable

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func threeCols(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(".", Col("a", "A"), Col("b", "B"), Col("c", "C"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return tbl
}

func TestResolveKey(t *testing.T) {
	tbl := threeCols(t)
	pos, err := resolve(tbl.cols, Key("b"))
	if err != nil {
		t.Fatalf("resolve(Key) = %v", err)
	}
	if pos != 1 {
		t.Errorf("resolve(Key(b)) = %d, want 1", pos)
	}
}

func TestResolveKeyNotFound(t *testing.T) {
	tbl := threeCols(t)
	if _, err := resolve(tbl.cols, Key("missing")); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("resolve(Key(missing)) = %v, want ErrKeyNotFound", err)
	}
}

// Resolving any key fails while a duplicate exists anywhere in the sequence,
// even when the looked-up key is unambiguous.
func TestDuplicateKeyPoisonsLookup(t *testing.T) {
	tbl, err := New(".", Col("a", "A"), Col("dup", "B"), Col("dup", "C"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := resolve(tbl.cols, Key("a")); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("resolve(Key(a)) = %v, want ErrDuplicateKey", err)
	}
	// Positional access is unaffected.
	if pos, err := resolve(tbl.cols, At(2)); err != nil || pos != 2 {
		t.Errorf("resolve(At(2)) = %d, %v, want 2, nil", pos, err)
	}
}

func TestInvalidKeyTypePoisonsLookup(t *testing.T) {
	tbl, err := New(".", Col("a", "A"), Col(42, "B"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := resolve(tbl.cols, Key("a")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("resolve(Key(a)) = %v, want ErrInvalidKey", err)
	}
}

func TestUnkeyedDescriptorsAreSkipped(t *testing.T) {
	tbl, err := New(".", Descriptor{Title: "A"}, Col("b", "B"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	pos, err := resolve(tbl.cols, Key("b"))
	if err != nil {
		t.Fatalf("resolve(Key(b)) = %v", err)
	}
	if pos != 1 {
		t.Errorf("resolve(Key(b)) = %d, want 1", pos)
	}
}

func TestSpanResolution(t *testing.T) {
	tbl := threeCols(t)
	for _, tc := range []struct {
		name string
		addr Address
		want []int
	}{
		{"all", All, []int{0, 1, 2}},
		{"single position", At(1), []int{1}},
		{"single key", Key("c"), []int{2}},
		{"open bounds", Span(All, All), []int{0, 1, 2}},
		{"integer end is exclusive", Span(At(0), At(2)), []int{0, 1}},
		{"key end is inclusive", Span(Key("a"), Key("b")), []int{0, 1}},
		{"open start", Span(All, Key("b")), []int{0, 1}},
		{"open end", Span(At(1), All), []int{1, 2}},
		{"empty span", Span(At(2), At(2)), []int{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := positions(tbl.cols, tc.addr)
			if err != nil {
				t.Fatalf("positions() = %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("positions() diff (-want +got):\n%v", diff)
			}
		})
	}
}

func TestSpanRejectsNestedRange(t *testing.T) {
	tbl := threeCols(t)
	if _, _, err := resolveSpan(tbl.cols, Span(Span(All, All), All)); !errors.Is(err, ErrBadAddress) {
		t.Errorf("resolveSpan(nested) = %v, want ErrBadAddress", err)
	}
}

func TestResolveRejectsRange(t *testing.T) {
	tbl := threeCols(t)
	if _, err := resolve(tbl.cols, Span(All, All)); !errors.Is(err, ErrBadAddress) {
		t.Errorf("resolve(Span) = %v, want ErrBadAddress", err)
	}
}
