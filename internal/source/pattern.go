package source

import (
	"fmt"
	"io"

	"github.com/roach88/scancmdr/internal/geometry"
)

// Pattern is a list of 1-based lattice indices in visiting order.
type Pattern struct {
	// Dims is the lattice size from the header, zero if the header omits it.
	Dims    geometry.Pixel
	Indices []geometry.Pixel
}

// Points maps the indices onto a lattice anchored at start. Index (1,1) is
// start; columns advance +X and rows advance -Y by spacing.
func (p Pattern) Points(start, spacing geometry.Pixel) []geometry.Pixel {
	out := make([]geometry.Pixel, len(p.Indices))
	for i, idx := range p.Indices {
		out[i] = geometry.Pixel{
			X: start.X + (idx.X-1)*spacing.X,
			Y: start.Y - (idx.Y-1)*spacing.Y,
		}
	}
	return out
}

// ParsePattern reads a pattern from r. The header declares the point count,
// optionally followed by the lattice dimensions; exactly that many index
// lines must follow. Lines after the last declared point are ignored.
func ParsePattern(r io.Reader) (Pattern, error) {
	sc := newScanner(r)
	rec, ok, err := sc.next()
	if err != nil {
		return Pattern{}, err
	}
	if !ok {
		return Pattern{}, &Error{Code: ErrCodeHeader, Message: "missing header"}
	}

	var p Pattern
	var count int
	switch len(rec.fields) {
	case 1:
		v, err := rec.ints(1)
		if err != nil {
			return Pattern{}, err
		}
		count = v[0]
	case 3:
		v, err := rec.ints(3)
		if err != nil {
			return Pattern{}, err
		}
		count = v[0]
		p.Dims = geometry.Pixel{X: v[1], Y: v[2]}
	default:
		return Pattern{}, &Error{
			Code:    ErrCodeHeader,
			Line:    rec.line,
			Message: fmt.Sprintf("header needs 1 or 3 fields, got %d", len(rec.fields)),
		}
	}
	if count < 0 {
		return Pattern{}, &Error{Code: ErrCodeHeader, Line: rec.line, Message: "negative point count"}
	}

	p.Indices = make([]geometry.Pixel, 0, count)
	for len(p.Indices) < count {
		rec, ok, err := sc.next()
		if err != nil {
			return Pattern{}, err
		}
		if !ok {
			return Pattern{}, short(len(p.Indices), count, "pattern points")
		}
		v, err := rec.ints(2)
		if err != nil {
			return Pattern{}, err
		}
		p.Indices = append(p.Indices, geometry.Pixel{X: v[0], Y: v[1]})
	}
	return p, nil
}

// ReadPattern reads a pattern from the named file.
func ReadPattern(path string) (Pattern, error) {
	f, err := open(path)
	if err != nil {
		return Pattern{}, err
	}
	defer f.Close()

	p, err := ParsePattern(f)
	return p, withPath(err, path)
}
