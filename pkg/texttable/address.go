package texttable

import "fmt"

type addrKind int

const (
	addrAll addrKind = iota
	addrPos
	addrKey
	addrSpan
)

// Address names one position or a contiguous range of positions in a
// descriptor sequence (columns, or rows of the index). The zero value
// addresses the whole sequence.
//
// An Address is either a literal integer position, a string key resolved
// against the descriptors' keys, or a half-open range of the two. Integer
// positions pass through unvalidated; out-of-range positions surface as
// panics from the grid, exactly like slice indexing.
type Address struct {
	kind       addrKind
	pos        int
	key        string
	from, upto *Address
}

// All addresses every position in the sequence. It is also the zero value
// of Address, and stands for an open bound inside Span.
var All = Address{}

// At addresses a single integer position.
func At(pos int) Address {
	return Address{kind: addrPos, pos: pos}
}

// Key addresses the single position whose descriptor carries the given key.
func Key(key string) Address {
	return Address{kind: addrKey, key: key}
}

// Span addresses the half-open range [from, upto). Either bound may be All
// to default to the start or end of the sequence. An integer upper bound is
// exclusive; a key upper bound is inclusive of the keyed position, so
// Span(Key("a"), Key("c")) covers column "c" itself. This asymmetry is
// deliberate: a caller naming an end key almost always wants that column
// included, while integer ranges keep the usual slice convention.
func Span(from, upto Address) Address {
	return Address{kind: addrSpan, from: &from, upto: &upto}
}

// keyMap builds the key→position index over a full descriptor sequence. The
// descriptors are the single source of truth; the map is derived on demand
// and never cached, so a mutation can never leave a stale index behind.
// Building fails on the first duplicate or non-string key, even when the
// caller's lookup does not touch the faulty descriptor.
func keyMap(descs []Descriptor) (map[string]int, error) {
	m := make(map[string]int, len(descs))
	for i, d := range descs {
		if d.Key == nil {
			continue
		}
		k, ok := d.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: descriptor %d has key of type %T", ErrInvalidKey, i, d.Key)
		}
		if prev, dup := m[k]; dup {
			return nil, fmt.Errorf("%w: %q names descriptors %d and %d", ErrDuplicateKey, k, prev, i)
		}
		m[k] = i
	}
	return m, nil
}

// resolve turns an Address naming a single position into that position.
func resolve(descs []Descriptor, a Address) (int, error) {
	switch a.kind {
	case addrPos:
		return a.pos, nil
	case addrKey:
		m, err := keyMap(descs)
		if err != nil {
			return 0, err
		}
		pos, ok := m[a.key]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, a.key)
		}
		return pos, nil
	}
	return 0, fmt.Errorf("%w: a single position is required", ErrBadAddress)
}

// resolveSpan turns any Address into the half-open range [start, end) it
// covers over the given descriptors.
func resolveSpan(descs []Descriptor, a Address) (start, end int, err error) {
	switch a.kind {
	case addrAll:
		return 0, len(descs), nil
	case addrPos:
		return a.pos, a.pos + 1, nil
	case addrKey:
		pos, err := resolve(descs, a)
		if err != nil {
			return 0, 0, err
		}
		return pos, pos + 1, nil
	case addrSpan:
		start, end = 0, len(descs)
		if a.from != nil && a.from.kind != addrAll {
			if a.from.kind == addrSpan {
				return 0, 0, fmt.Errorf("%w: range bounds cannot nest ranges", ErrBadAddress)
			}
			if start, err = resolve(descs, *a.from); err != nil {
				return 0, 0, err
			}
		}
		if a.upto != nil && a.upto.kind != addrAll {
			switch a.upto.kind {
			case addrPos:
				end = a.upto.pos
			case addrKey:
				pos, err := resolve(descs, *a.upto)
				if err != nil {
					return 0, 0, err
				}
				// A key upper bound includes the keyed position.
				end = pos + 1
			default:
				return 0, 0, fmt.Errorf("%w: range bounds cannot nest ranges", ErrBadAddress)
			}
		}
		return start, end, nil
	}
	return 0, 0, fmt.Errorf("%w: unknown address kind %d", ErrBadAddress, a.kind)
}

// positions expands an Address into the ordered list of positions it covers.
func positions(descs []Descriptor, a Address) ([]int, error) {
	start, end, err := resolveSpan(descs, a)
	if err != nil {
		return nil, err
	}
	if end < start {
		end = start
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out, nil
}
