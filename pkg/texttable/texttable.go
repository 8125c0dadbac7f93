// Package texttable implements a library for building and rendering labeled
// monospace text tables.
//
// A Table holds an ordered set of column descriptors, an optional row index,
// and a grid of cells. Cells and descriptors carry per-entry formatting
// attributes (alignment, borders, padding, a format template, and a
// separator-split flag for multi-line content). Render turns the table into
// a sequence of literal output lines suitable for any line-oriented sink.
package texttable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoColumns indicates that a table was constructed with no columns.
	ErrNoColumns = errors.New("table needs at least 1 column")
	// ErrDuplicateKey indicates that two descriptors share a key, making key lookup ambiguous.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidKey indicates that a descriptor carries a non-string key, which cannot be looked up.
	ErrInvalidKey = errors.New("key is not a string")
	// ErrKeyNotFound indicates that no descriptor carries the requested key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrBadAddress indicates that an address of the wrong shape was used (e.g. a range where
	// a single position is required).
	ErrBadAddress = errors.New("bad address")
	// ErrShapeMismatch indicates that a bulk assignment's value grid does not match the
	// dimensions of the addressed range.
	ErrShapeMismatch = errors.New("value grid does not match addressed range")
	// ErrUnresolvedAlignment indicates that an unset alignment survived attribute resolution
	// all the way into rendering. This is a bug in the caller's attribute handling, not a
	// recoverable input error.
	ErrUnresolvedAlignment = errors.New("unresolved alignment")
)

// VAnchor is the vertical half of an Alignment.
type VAnchor int

const (
	// VUnset inherits the vertical anchor from context.
	VUnset VAnchor = iota
	// VTop anchors content to the first physical line of the cell.
	VTop
	// VCenter centers content vertically within the cell.
	VCenter
	// VBottom anchors content to the last physical line of the cell.
	VBottom
)

// HAnchor is the horizontal half of an Alignment.
type HAnchor int

const (
	// HUnset inherits the horizontal anchor from context.
	HUnset HAnchor = iota
	// HLeft justifies content against the left edge of the cell.
	HLeft
	// HCenter centers content horizontally within the cell.
	HCenter
	// HRight justifies content against the right edge of the cell.
	HRight
)

// Alignment combines a vertical and a horizontal anchor. The zero value is
// fully unset and means "inherit from context"; an alignment that is still
// unset on either axis when rendering begins is a fatal invariant violation.
type Alignment struct {
	V VAnchor
	H HAnchor
}

// The nine concrete alignments. Cells and descriptors may also carry a
// partially set alignment to inherit the other axis.
var (
	TopLeft      = Alignment{VTop, HLeft}
	TopCenter    = Alignment{VTop, HCenter}
	TopRight     = Alignment{VTop, HRight}
	CenterLeft   = Alignment{VCenter, HLeft}
	Center       = Alignment{VCenter, HCenter}
	CenterRight  = Alignment{VCenter, HRight}
	BottomLeft   = Alignment{VBottom, HLeft}
	BottomCenter = Alignment{VBottom, HCenter}
	BottomRight  = Alignment{VBottom, HRight}
)

// Resolved reports whether both anchors are set.
func (a Alignment) Resolved() bool {
	return a.V != VUnset && a.H != HUnset
}

// Inherit fills any unset anchor of a from parent and returns the result.
func (a Alignment) Inherit(parent Alignment) Alignment {
	if a.V == VUnset {
		a.V = parent.V
	}
	if a.H == HUnset {
		a.H = parent.H
	}
	return a
}

// Border describes which edges of a cell's bounding box participate in
// border and divider drawing. A suppressed edge still occupies its character
// position in the output; it renders as a space.
type Border struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
}

// BorderAll returns a Border with all four edges enabled.
func BorderAll() Border {
	return Border{Top: true, Bottom: true, Left: true, Right: true}
}

// BorderNone returns a Border with all four edges suppressed.
func BorderNone() Border {
	return Border{}
}

// Attribute describes how a single cell (or a descriptor's title) is
// formatted. The zero value means "unspecified": constructors and insert
// operations replace it with an inherited or baseline attribute.
type Attribute struct {
	// Align positions the cell's segments inside its box.
	Align Alignment
	// Split renders the formatted value as multiple stacked segments by
	// splitting it on the table's separator string.
	Split bool
	// Format is the fmt template applied to the raw value before splitting.
	// Empty means "%v".
	Format string
	// Border selects which edges of this cell are drawn.
	Border Border
	// PadLeft and PadRight are spaces inside the cell box around the content.
	PadLeft  int
	PadRight int
}

// DefaultAttribute returns the baseline attribute used for the first
// row/column when there is no prior attribute to inherit from: top-left
// alignment, all borders, no splitting, one space of padding on each side.
func DefaultAttribute() Attribute {
	return Attribute{
		Align:    TopLeft,
		Format:   "%v",
		Border:   BorderAll(),
		PadLeft:  1,
		PadRight: 1,
	}
}

func (a Attribute) isZero() bool {
	return a == Attribute{}
}

// render applies the format template to a raw value.
func (a Attribute) render(v any) string {
	f := a.Format
	if f == "" {
		f = "%v"
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf(f, v)
}

// segments formats v and, if splitting is enabled, splits the result on sep.
func (a Attribute) segments(sep string, v any) []string {
	s := a.render(v)
	if a.Split && sep != "" {
		return strings.Split(s, sep)
	}
	return []string{s}
}

// Descriptor is the metadata record for one column, or for one row of the
// row index: an optional lookup key, a display title, a fixed width, and the
// title's own formatting attribute.
type Descriptor struct {
	// Key identifies the descriptor for lookup by key. Only string keys
	// participate in lookup; nil means unkeyed. A non-string, non-nil key
	// poisons every lookup over the sequence containing it.
	Key any
	// Title is the text rendered in the header block (or index column).
	Title string
	// Width fixes the column's content width. 0 means auto-size from the
	// title and the visible cell contents.
	Width int
	// Attr formats the title and provides the inheritance context for the
	// cells under this descriptor.
	Attr Attribute
}

// Col is shorthand for a keyed, auto-sized column descriptor with the
// baseline attribute.
func Col(key any, title string) Descriptor {
	return Descriptor{Key: key, Title: title, Attr: DefaultAttribute()}
}

// titleSegments splits the descriptor's title per its own attribute.
func (d Descriptor) titleSegments(sep string) []string {
	if d.Attr.Split && sep != "" {
		return strings.Split(d.Title, sep)
	}
	return []string{d.Title}
}

// Cell pairs one grid value with its formatting attribute.
type Cell struct {
	Value any
	Attr  Attribute
}
