package texttable

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
)

// Glyphs holds the literal characters used to draw borders and dividers.
// Zero runes fall back to the defaults at render time.
type Glyphs struct {
	// Top is the horizontal rule character of the top border.
	Top rune
	// Bottom is the horizontal rule character of every other divider:
	// the header divider, interior row dividers, and the bottom border.
	Bottom rune
	// Cross is the corner/junction character where rules meet.
	Cross rune
	// Side is the vertical rule character between cells.
	Side rune
}

// DefaultGlyphs returns the classic +-| drawing set.
func DefaultGlyphs() Glyphs {
	return Glyphs{Top: '-', Bottom: '-', Cross: '+', Side: '|'}
}

func (g Glyphs) fill() Glyphs {
	def := DefaultGlyphs()
	if g.Top == 0 {
		g.Top = def.Top
	}
	if g.Bottom == 0 {
		g.Bottom = def.Bottom
	}
	if g.Cross == 0 {
		g.Cross = def.Cross
	}
	if g.Side == 0 {
		g.Side = def.Side
	}
	return g
}

// Style is the global rendering configuration. Start from DefaultStyle: the
// zero value suppresses every outer border edge.
type Style struct {
	// RowDividerInterval inserts an interior divider before every
	// (k+1)-th data row. 0 means no interior dividers.
	RowDividerInterval int
	// ShowPartial truncates overflowing segments to width-1 characters plus
	// a ">" marker. When unset, overflowing segments soft-wrap onto
	// continuation lines indented to the column's content offset.
	ShowPartial bool
	// Glyphs are the border drawing characters.
	Glyphs Glyphs
	// AlwaysCorner draws the cross glyph at every column boundary of a
	// divider, even when no adjoining cell declares the touching edge.
	AlwaysCorner bool
	// LeftShift prepends this many literal spaces to every emitted line.
	LeftShift int
	// Outer enables the table's outer edges. A disabled top/bottom edge
	// drops that border line; a disabled left/right edge drops the leading
	// or trailing glyph column.
	Outer Border
}

// DefaultStyle returns the style used for plain bordered output.
func DefaultStyle() Style {
	return Style{Glyphs: DefaultGlyphs(), Outer: BorderAll()}
}

// Selection restricts rendering to a subset of rows and columns. The zero
// value selects the whole table.
type Selection struct {
	Rows Address
	Cols Address
}

// colGeom is the resolved horizontal geometry of one rendered column. The
// column's box (its span between two vertical rules) is padL+width+padR;
// per-cell padding insets content within that fixed box.
type colGeom struct {
	width int
	padL  int
	padR  int
}

func (g colGeom) box() int {
	return g.padL + g.width + g.padR
}

// blockCell is one cell of a logical output block (the header line or one
// data row) after attribute resolution and segment splitting.
type blockCell struct {
	segs []string
	attr Attribute
}

type renderer struct {
	style Style
	geoms []colGeom
	lines []string
}

// Render produces the table's literal output lines: top border, header
// block, header divider, data row blocks with interior dividers per the
// configured interval, and bottom border. It is read-only over the table
// and deterministic: the same table, selection and style always yield the
// same lines.
func (t *Table) Render(sel Selection, style Style) ([]string, error) {
	style.Glyphs = style.Glyphs.fill()

	rowIdx, err := positions(t.rows, sel.Rows)
	if err != nil {
		return nil, fmt.Errorf("row selection: %w", err)
	}
	colIdx, err := positions(t.cols, sel.Cols)
	if err != nil {
		return nil, fmt.Errorf("column selection: %w", err)
	}
	if len(colIdx) == 0 {
		return nil, fmt.Errorf("%w: column selection is empty", ErrNoColumns)
	}

	r := &renderer{style: style}

	// Resolved geometry, index column first when shown.
	widths := t.inferWidths(rowIdx, colIdx)
	if t.showIndex {
		r.geoms = append(r.geoms, colGeom{width: t.inferIndexWidth(rowIdx), padL: 1, padR: 1})
	}
	for n, j := range colIdx {
		a := t.cols[j].Attr
		r.geoms = append(r.geoms, colGeom{width: widths[n], padL: a.PadLeft, padR: a.PadRight})
	}

	header := t.headerBlock(colIdx)
	headerAttrs := blockAttrs(header)

	if style.Outer.Top {
		r.divider(nil, headerAttrs, style.Glyphs.Top)
	}
	if err := r.block(header); err != nil {
		return nil, err
	}

	blocks := make([][]blockCell, 0, len(rowIdx))
	for _, row := range rowIdx {
		b, err := t.rowBlock(row, colIdx)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	// The header divider is always emitted, interval or not. With no data
	// rows it doubles as the bottom border.
	if len(blocks) == 0 {
		r.divider(headerAttrs, nil, style.Glyphs.Bottom)
		return r.finish(), nil
	}
	r.divider(headerAttrs, blockAttrs(blocks[0]), style.Glyphs.Bottom)

	prevAttrs := headerAttrs
	for i, b := range blocks {
		attrs := blockAttrs(b)
		if k := style.RowDividerInterval; k > 0 && i > 0 && i%k == 0 {
			r.divider(prevAttrs, attrs, style.Glyphs.Bottom)
		}
		if err := r.block(b); err != nil {
			return nil, err
		}
		prevAttrs = attrs
	}

	if style.Outer.Bottom {
		r.divider(prevAttrs, nil, style.Glyphs.Bottom)
	}
	return r.finish(), nil
}

// finish applies the line-level style (left shift) to the emitted lines.
func (r *renderer) finish() []string {
	if r.style.LeftShift > 0 {
		for i := range r.lines {
			r.lines[i] = indent.String(r.lines[i], uint(r.style.LeftShift))
		}
	}
	return r.lines
}

// RenderTo renders the table and writes one terminated line at a time to w.
// Lines already written stay written when rendering fails partway; callers
// needing atomic output should render to a buffer first.
func (t *Table) RenderTo(w io.Writer, sel Selection, style Style) error {
	lines, err := t.Render(sel, style)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// inferWidths computes the content width of each selected column: the fixed
// descriptor width when set, floored by the longest header title segment,
// and grown by the longest cell segment only while the width is unset.
func (t *Table) inferWidths(rowIdx, colIdx []int) []int {
	widths := make([]int, len(colIdx))
	for n, j := range colIdx {
		d := t.cols[j]
		w := d.Width
		if tw := longestSegment(d.titleSegments(t.sep)); tw > w {
			w = tw
		}
		if d.Width == 0 {
			for _, row := range rowIdx {
				c := t.cells[row][j]
				if cw := longestSegment(c.Attr.segments(t.sep, c.Value)); cw > w {
					w = cw
				}
			}
		}
		widths[n] = w
	}
	return widths
}

// inferIndexWidth sizes the index column from the selected row descriptors.
func (t *Table) inferIndexWidth(rowIdx []int) int {
	w := 0
	for _, row := range rowIdx {
		d := t.rows[row]
		if d.Width > w {
			w = d.Width
		}
		if d.Width == 0 {
			if tw := longestSegment(d.titleSegments(t.sep)); tw > w {
				w = tw
			}
		}
	}
	return w
}

func longestSegment(segs []string) int {
	return lo.Max(lo.Map(segs, func(s string, _ int) int {
		return runewidth.StringWidth(s)
	}))
}

// headerBlock assembles the header line's cells, with a blank corner cell
// for the index column when shown.
func (t *Table) headerBlock(colIdx []int) []blockCell {
	cells := make([]blockCell, 0, len(colIdx)+1)
	if t.showIndex {
		cells = append(cells, blockCell{segs: []string{""}, attr: DefaultAttribute()})
	}
	for _, j := range colIdx {
		d := t.cols[j]
		cells = append(cells, blockCell{segs: d.titleSegments(t.sep), attr: d.Attr})
	}
	return cells
}

// rowBlock assembles one data row's cells with alignment inheritance
// applied: a cell's unset anchors take the column descriptor's.
func (t *Table) rowBlock(row int, colIdx []int) ([]blockCell, error) {
	cells := make([]blockCell, 0, len(colIdx)+1)
	if t.showIndex {
		d := t.rows[row]
		cells = append(cells, blockCell{segs: d.titleSegments(t.sep), attr: d.Attr})
	}
	for _, j := range colIdx {
		c := t.cells[row][j]
		attr := c.Attr
		attr.Align = attr.Align.Inherit(t.cols[j].Attr.Align)
		if !attr.Align.Resolved() {
			return nil, fmt.Errorf("%w: cell at row %d, column %d", ErrUnresolvedAlignment, row, j)
		}
		cells = append(cells, blockCell{segs: c.Attr.segments(t.sep, c.Value), attr: attr})
	}
	return cells, nil
}

func blockAttrs(cells []blockCell) []Attribute {
	return lo.Map(cells, func(c blockCell, _ int) Attribute {
		return c.attr
	})
}

// block emits the physical lines of one logical block. M is the tallest
// cell's segment count; every cell's segments occupy the vertical sub-range
// of those M lines selected by its vertical anchor, with blank padded lines
// outside it.
func (r *renderer) block(cells []blockCell) error {
	m := lo.Max(lo.Map(cells, func(c blockCell, _ int) int {
		return len(c.segs)
	}))
	if m < 1 {
		m = 1
	}
	forced := m > 1

	for line := 0; line < m; line++ {
		var sb strings.Builder
		offset := 0
		if r.style.Outer.Left {
			sb.WriteRune(r.sideGlyph(cells[0].attr.Border.Left))
			offset++
		}
		for j, c := range cells {
			if j > 0 {
				sb.WriteRune(r.sideGlyph(cells[j-1].attr.Border.Right || c.attr.Border.Left))
				offset++
			}
			s, err := r.cellLine(c, j, line, m, offset, forced)
			if err != nil {
				return err
			}
			sb.WriteString(s)
			offset += r.geoms[j].box()
		}
		if r.style.Outer.Right {
			sb.WriteRune(r.sideGlyph(cells[len(cells)-1].attr.Border.Right))
		}
		r.lines = append(r.lines, sb.String())
	}
	return nil
}

func (r *renderer) sideGlyph(on bool) rune {
	if on {
		return r.style.Glyphs.Side
	}
	return ' '
}

// cellLine renders one physical line of one cell: the segment that the
// vertical anchor places on this line (or blank), justified horizontally
// into the cell's available width. offset is the visual start of the cell's
// box, used to indent soft-wrap continuations.
func (r *renderer) cellLine(c blockCell, j, line, m, offset int, forced bool) (string, error) {
	if !c.attr.Align.Resolved() {
		return "", fmt.Errorf("%w: column %d", ErrUnresolvedAlignment, j)
	}
	g := r.geoms[j]
	padL, padR := c.attr.PadLeft, c.attr.PadRight
	avail := g.box() - padL - padR
	if avail < 0 {
		avail = 0
	}

	n := len(c.segs)
	start := 0
	switch c.attr.Align.V {
	case VBottom:
		start = m - n
	case VCenter:
		start = (m - n) / 2
	}
	seg := ""
	if line >= start && line < start+n {
		seg = c.segs[line-start]
	}

	content := r.fit(seg, avail, c.attr.Align.H, offset+padL, forced)
	return strings.Repeat(" ", padL) + content + strings.Repeat(" ", padR), nil
}

// fit justifies a segment into avail columns. An overflowing segment is
// truncated with a ">" marker when partial display is on, or when the block
// is already multi-segment (its vertical geometry is fixed by the other
// cells, so wrapping cannot be reconciled). Otherwise it soft-wraps: chunked
// at the available width, every continuation chunk on its own physical
// line, indented back to the cell's content offset.
func (r *renderer) fit(seg string, avail int, h HAnchor, offset int, forced bool) string {
	if runewidth.StringWidth(seg) <= avail {
		return justify(seg, avail, h)
	}
	if r.style.ShowPartial || forced {
		return clip(seg, avail)
	}
	limit := avail
	if limit < 1 {
		limit = 1
	}
	chunks := strings.Split(wrap.String(seg, limit), "\n")
	pad := strings.Repeat(" ", offset)
	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(pad)
		}
		if i == len(chunks)-1 {
			sb.WriteString(justify(chunk, avail, h))
		} else {
			sb.WriteString(chunk)
		}
	}
	return sb.String()
}

// clip truncates a segment to avail-1 columns plus the ">" marker.
func clip(seg string, avail int) string {
	if avail < 1 {
		return ""
	}
	return truncate.StringWithTail(seg, uint(avail), ">")
}

func justify(s string, width int, h HAnchor) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	switch h {
	case HRight:
		return runewidth.FillLeft(s, width)
	case HCenter:
		gap := width - w
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return runewidth.FillRight(s, width)
	}
}

// divider emits one horizontal rule. above and below are the cell
// attributes of the adjacent blocks (nil at the table's outer edges). A
// column's rule is drawn when either adjacent cell enables the touching
// horizontal edge; a junction is drawn when either adjacent cell of either
// block enables the touching vertical edge, or AlwaysCorner is set.
// Suppressed glyphs render as spaces so the line keeps its full width.
func (r *renderer) divider(above, below []Attribute, glyph rune) {
	n := len(r.geoms)

	horiz := func(j int) bool {
		return (above != nil && above[j].Border.Bottom) || (below != nil && below[j].Border.Top)
	}
	rightEdge := func(j int) bool {
		return (above != nil && above[j].Border.Right) || (below != nil && below[j].Border.Right)
	}
	leftEdge := func(j int) bool {
		return (above != nil && above[j].Border.Left) || (below != nil && below[j].Border.Left)
	}
	corner := func(left, right int) rune {
		on := r.style.AlwaysCorner
		if left >= 0 {
			on = on || rightEdge(left)
		}
		if right < n {
			on = on || leftEdge(right)
		}
		if on {
			return r.style.Glyphs.Cross
		}
		return ' '
	}

	var sb strings.Builder
	if r.style.Outer.Left {
		sb.WriteRune(corner(-1, 0))
	}
	for j := 0; j < n; j++ {
		if j > 0 {
			sb.WriteRune(corner(j-1, j))
		}
		if horiz(j) {
			sb.WriteString(strings.Repeat(string(glyph), r.geoms[j].box()))
		} else {
			sb.WriteString(strings.Repeat(" ", r.geoms[j].box()))
		}
	}
	if r.style.Outer.Right {
		sb.WriteRune(corner(n-1, n))
	}
	r.lines = append(r.lines, sb.String())
}
