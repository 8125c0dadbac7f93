package texttable

import (
	"fmt"

	"github.com/samber/lo"
)

// Table is a labeled two-dimensional grid of cells. Columns are described by
// an ordered sequence of Descriptors; rows carry a symmetric descriptor
// sequence (the row index), which is only rendered when enabled. The
// descriptor sequences and the cell grid always agree on dimensions.
//
// A Table is a plain mutable structure with no synchronization. It assumes
// exclusive ownership by one caller during any mutate-then-render sequence;
// rendering is read-only and may run alongside other readers, never
// alongside a mutator.
type Table struct {
	sep       string
	cols      []Descriptor
	rows      []Descriptor
	cells     [][]Cell
	showIndex bool
}

// New builds a table with the given separator string and initial columns.
// Column descriptors with a zero attribute take the previous column's
// attribute (the first takes the baseline). At least one column is required:
// the layout algorithms assume a non-empty column set.
func New(sep string, cols ...Descriptor) (*Table, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	t := &Table{sep: sep}
	for _, d := range cols {
		if d.Attr.isZero() {
			if n := len(t.cols); n > 0 {
				d.Attr = t.cols[n-1].Attr
			} else {
				d.Attr = DefaultAttribute()
			}
		}
		t.cols = append(t.cols, d)
	}
	return t, nil
}

// Separator returns the string used to split titles and values into
// vertical segments.
func (t *Table) Separator() string {
	return t.sep
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// ShowIndex controls whether rendering prepends the row index column built
// from the row descriptors' titles.
func (t *Table) ShowIndex(show bool) {
	t.showIndex = show
}

// IndexVisible reports whether the row index column is rendered.
func (t *Table) IndexVisible() bool {
	return t.showIndex
}

// inheritedRowAttrs returns the cell attributes a row inserted at pos would
// receive: a copy of the previous row's attributes, or the baseline when the
// new row has no predecessor.
func (t *Table) inheritedRowAttrs(pos int) []Attribute {
	attrs := make([]Attribute, len(t.cols))
	if pos > 0 {
		for j := range attrs {
			attrs[j] = t.cells[pos-1][j].Attr
		}
		return attrs
	}
	for j := range attrs {
		attrs[j] = DefaultAttribute()
	}
	return attrs
}

// AddRow appends a data row with an unkeyed, untitled index descriptor.
// Values beyond the column count are dropped; missing values render empty.
func (t *Table) AddRow(values ...any) {
	t.InsertRow(len(t.rows), Descriptor{}, values)
}

// InsertRow inserts a data row at pos (0 ≤ pos ≤ NumRows, panics otherwise).
// Unspecified cell attributes copy from the previous row's corresponding
// cells; the first row takes the baseline attribute. A zero descriptor
// attribute inherits the same way from the previous row's descriptor.
func (t *Table) InsertRow(pos int, desc Descriptor, values []any) {
	if desc.Attr.isZero() {
		if pos > 0 {
			desc.Attr = t.rows[pos-1].Attr
		} else {
			desc.Attr = DefaultAttribute()
		}
	}
	attrs := t.inheritedRowAttrs(pos)
	row := make([]Cell, len(t.cols))
	for j := range row {
		row[j] = Cell{Attr: attrs[j]}
		if j < len(values) {
			row[j].Value = values[j]
		}
	}
	t.rows = append(t.rows, Descriptor{})
	copy(t.rows[pos+1:], t.rows[pos:])
	t.rows[pos] = desc

	t.cells = append(t.cells, nil)
	copy(t.cells[pos+1:], t.cells[pos:])
	t.cells[pos] = row
}

// DeleteRow removes the data row at pos along with its index descriptor.
func (t *Table) DeleteRow(pos int) {
	t.rows = append(t.rows[:pos], t.rows[pos+1:]...)
	t.cells = append(t.cells[:pos], t.cells[pos+1:]...)
}

// SwapRows exchanges two data rows, descriptors included.
func (t *Table) SwapRows(i, j int) {
	t.rows[i], t.rows[j] = t.rows[j], t.rows[i]
	t.cells[i], t.cells[j] = t.cells[j], t.cells[i]
}

// AddCol appends a column. Values fill the existing rows top-down; missing
// values render empty, extras are dropped.
func (t *Table) AddCol(desc Descriptor, values ...any) {
	t.InsertCol(len(t.cols), desc, values)
}

// InsertCol inserts a column at pos (0 ≤ pos ≤ NumCols, panics otherwise).
// Each row's new cell copies its attribute from the cell to the left; cells
// in the first column take the baseline. A zero descriptor attribute
// inherits from the previous column's descriptor.
func (t *Table) InsertCol(pos int, desc Descriptor, values []any) {
	if desc.Attr.isZero() {
		if pos > 0 {
			desc.Attr = t.cols[pos-1].Attr
		} else {
			desc.Attr = DefaultAttribute()
		}
	}
	t.cols = append(t.cols, Descriptor{})
	copy(t.cols[pos+1:], t.cols[pos:])
	t.cols[pos] = desc

	for i := range t.cells {
		attr := DefaultAttribute()
		if pos > 0 {
			attr = t.cells[i][pos-1].Attr
		}
		cell := Cell{Attr: attr}
		if i < len(values) {
			cell.Value = values[i]
		}
		t.cells[i] = append(t.cells[i], Cell{})
		copy(t.cells[i][pos+1:], t.cells[i][pos:])
		t.cells[i][pos] = cell
	}
}

// DeleteCol removes the column at pos. Deleting the last remaining column
// installs a synthetic fallback column instead of leaving the table empty:
// the layout algorithms assume at least one column exists.
func (t *Table) DeleteCol(pos int) {
	t.cols = append(t.cols[:pos], t.cols[pos+1:]...)
	for i := range t.cells {
		t.cells[i] = append(t.cells[i][:pos], t.cells[i][pos+1:]...)
	}
	if len(t.cols) == 0 {
		t.cols = []Descriptor{Col("title1", "Title1")}
		for i := range t.cells {
			t.cells[i] = []Cell{{Attr: DefaultAttribute()}}
		}
	}
}

// SwapCols exchanges two columns, descriptors included.
func (t *Table) SwapCols(i, j int) {
	t.cols[i], t.cols[j] = t.cols[j], t.cols[i]
	for r := range t.cells {
		t.cells[r][i], t.cells[r][j] = t.cells[r][j], t.cells[r][i]
	}
}

// locate resolves a (row, col) address pair to grid coordinates.
func (t *Table) locate(row, col Address) (int, int, error) {
	r, err := resolve(t.rows, row)
	if err != nil {
		return 0, 0, fmt.Errorf("row: %w", err)
	}
	c, err := resolve(t.cols, col)
	if err != nil {
		return 0, 0, fmt.Errorf("column: %w", err)
	}
	return r, c, nil
}

// Value returns the raw value of one cell.
func (t *Table) Value(row, col Address) (any, error) {
	r, c, err := t.locate(row, col)
	if err != nil {
		return nil, err
	}
	return t.cells[r][c].Value, nil
}

// SetValue replaces the raw value of one cell, leaving its attribute alone.
func (t *Table) SetValue(row, col Address, v any) error {
	r, c, err := t.locate(row, col)
	if err != nil {
		return err
	}
	t.cells[r][c].Value = v
	return nil
}

// Attr returns the attribute of one cell.
func (t *Table) Attr(row, col Address) (Attribute, error) {
	r, c, err := t.locate(row, col)
	if err != nil {
		return Attribute{}, err
	}
	return t.cells[r][c].Attr, nil
}

// SetAttr replaces the attribute of one cell.
func (t *Table) SetAttr(row, col Address, a Attribute) error {
	r, c, err := t.locate(row, col)
	if err != nil {
		return err
	}
	t.cells[r][c].Attr = a
	return nil
}

// SetRange bulk-assigns values over the addressed row and column ranges.
// The value grid must match the addressed range exactly; on mismatch the
// table is left untouched and ErrShapeMismatch is returned.
func (t *Table) SetRange(rows, cols Address, values [][]any) error {
	rs, err := positions(t.rows, rows)
	if err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	cs, err := positions(t.cols, cols)
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	if len(values) != len(rs) {
		return fmt.Errorf("%w: %d value rows for %d addressed rows", ErrShapeMismatch, len(values), len(rs))
	}
	for i, vr := range values {
		if len(vr) != len(cs) {
			return fmt.Errorf("%w: value row %d has %d entries for %d addressed columns", ErrShapeMismatch, i, len(vr), len(cs))
		}
	}
	for i, r := range rs {
		for j, c := range cs {
			t.cells[r][c].Value = values[i][j]
		}
	}
	return nil
}

// SetRowAlign applies one alignment to every cell of the addressed rows.
func (t *Table) SetRowAlign(row Address, a Alignment) error {
	rs, err := positions(t.rows, row)
	if err != nil {
		return err
	}
	for _, r := range rs {
		for c := range t.cells[r] {
			t.cells[r][c].Attr.Align = a
		}
	}
	return nil
}

// SetColAlign applies one alignment to every cell of the addressed columns.
// The header title keeps its own alignment; use SetHeaderAlign for that.
func (t *Table) SetColAlign(col Address, a Alignment) error {
	cs, err := positions(t.cols, col)
	if err != nil {
		return err
	}
	for _, c := range cs {
		for r := range t.cells {
			t.cells[r][c].Attr.Align = a
		}
	}
	return nil
}

// SetHeaderAlign applies one alignment to the titles of the addressed
// columns.
func (t *Table) SetHeaderAlign(col Address, a Alignment) error {
	cs, err := positions(t.cols, col)
	if err != nil {
		return err
	}
	for _, c := range cs {
		t.cols[c].Attr.Align = a
	}
	return nil
}

// ColDescriptor returns the descriptor of one column.
func (t *Table) ColDescriptor(col Address) (Descriptor, error) {
	c, err := resolve(t.cols, col)
	if err != nil {
		return Descriptor{}, err
	}
	return t.cols[c], nil
}

// SetColDescriptor replaces the descriptor of one column.
func (t *Table) SetColDescriptor(col Address, d Descriptor) error {
	c, err := resolve(t.cols, col)
	if err != nil {
		return err
	}
	t.cols[c] = d
	return nil
}

// RowDescriptor returns the index descriptor of one row.
func (t *Table) RowDescriptor(row Address) (Descriptor, error) {
	r, err := resolve(t.rows, row)
	if err != nil {
		return Descriptor{}, err
	}
	return t.rows[r], nil
}

// SetRowDescriptor replaces the index descriptor of one row.
func (t *Table) SetRowDescriptor(row Address, d Descriptor) error {
	r, err := resolve(t.rows, row)
	if err != nil {
		return err
	}
	t.rows[r] = d
	return nil
}

// SetTitle replaces the title of one column.
func (t *Table) SetTitle(col Address, title string) error {
	c, err := resolve(t.cols, col)
	if err != nil {
		return err
	}
	t.cols[c].Title = title
	return nil
}

// SetColWidth fixes (or, with 0, un-fixes) the content width of one column.
func (t *Table) SetColWidth(col Address, width int) error {
	c, err := resolve(t.cols, col)
	if err != nil {
		return err
	}
	t.cols[c].Width = width
	return nil
}

// UpdateKey rekeys the column currently keyed oldKey. It fails when newKey
// is a string that already resolves to another column.
func (t *Table) UpdateKey(oldKey string, newKey any) error {
	c, err := resolve(t.cols, Key(oldKey))
	if err != nil {
		return err
	}
	if k, ok := newKey.(string); ok {
		if _, err := resolve(t.cols, Key(k)); err == nil {
			return fmt.Errorf("%w: %q already names a column", ErrDuplicateKey, k)
		}
	}
	t.cols[c].Key = newKey
	return nil
}

// Header returns the column titles in order.
func (t *Table) Header() []string {
	return lo.Map(t.cols, func(d Descriptor, _ int) string {
		return d.Title
	})
}

// Values returns a copy of the grid's raw values.
func (t *Table) Values() [][]any {
	return lo.Map(t.cells, func(row []Cell, _ int) []any {
		return lo.Map(row, func(c Cell, _ int) any {
			return c.Value
		})
	})
}

// Row returns the raw values of one data row.
func (t *Table) Row(row Address) ([]any, error) {
	r, err := resolve(t.rows, row)
	if err != nil {
		return nil, err
	}
	return lo.Map(t.cells[r], func(c Cell, _ int) any {
		return c.Value
	}), nil
}

// Column returns the raw values of one column, top-down.
func (t *Table) Column(col Address) ([]any, error) {
	c, err := resolve(t.cols, col)
	if err != nil {
		return nil, err
	}
	return lo.Map(t.cells, func(row []Cell, _ int) any {
		return row[c].Value
	}), nil
}
