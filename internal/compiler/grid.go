package compiler

import (
	"math"

	"github.com/roach88/scancmdr/internal/geometry"
	"github.com/roach88/scancmdr/internal/protocol"
)

// sweep holds the device-space start and step deltas of a lattice walk.
//
// A column step moves by (-dx1, -dx2); a row step moves by (-dy1, +dy2) and
// then returns to the first column by (dx1, dx2) times the column count.
// Unrotated lattices have dx2 = dy1 = 0 and skip those moves entirely.
type sweep struct {
	start   geometry.Device
	rotated bool
	dx1     int64
	dx2     int64
	dy1     int64
	dy2     int64
}

func newSweep(g Lattice, f Frame) sweep {
	if f.Rotation == 0 {
		return sweep{
			start: geometry.ToDevice(g.Start, f.Scale, f.Center, 0),
			dx1:   int64(g.Spacing.X) * f.Scale,
			dy2:   int64(g.Spacing.Y) * f.Scale,
		}
	}

	corners := geometry.GridCorners(g.Start, g.Spacing, g.Dims)
	start := geometry.Rotate(g.Start, geometry.Centroid(corners[:]), f.Rotation)
	sin, cos := math.Sincos(f.Rotation)
	sx, sy := float64(g.Spacing.X), float64(g.Spacing.Y)

	return sweep{
		start:   geometry.ToDevice(start, f.Scale, f.Center, 0),
		rotated: true,
		dx1:     int64(math.Round(sx*cos)) * f.Scale,
		dx2:     int64(math.Round(sx*sin)) * f.Scale,
		dy1:     int64(math.Round(sy*sin)) * f.Scale,
		dy2:     int64(math.Round(sy*cos)) * f.Scale,
	}
}

// column advances one column at cycle c.
func (w sweep) column(l *protocol.List, c uint32) {
	l.Relative(c, protocol.PositionX, -w.dx1)
	if w.rotated {
		l.Relative(c, protocol.PositionY, -w.dx2)
	}
}

// row advances one row at cycle c and returns to the first column.
func (w sweep) row(l *protocol.List, c uint32, cols int64) {
	if w.rotated {
		l.Relative(c, protocol.PositionX, -w.dy1)
	}
	l.Relative(c, protocol.PositionY, w.dy2)
	l.Relative(c, protocol.PositionX, w.dx1*cols)
	if w.rotated {
		l.Relative(c, protocol.PositionY, w.dx2*cols)
	}
}

// BuildGrid compiles a protocol that sweeps a lattice, one full episode per
// cell.
//
// A non-zero rotation turns the lattice about the centroid of its four
// corners.
func (c *Compiler) BuildGrid(t Timing, g Lattice, f Frame, trig Trigger) (string, error) {
	const kind = "grid"
	s := c.prepare(kind, t, t.Pulses)
	w := newSweep(g, f)

	cols, rows := uint32(g.Dims.X), uint32(g.Dims.Y)
	slot := s.slot()
	es := uint32(EpisodeOffset)
	rowEnd := es + cols*slot
	body := es + rows*cols*slot

	l := c.newList()
	l.LoopStart(0, int64(s.reps))
	moveTo(l, 0, w.start)
	l.LoopStart(es, int64(rows))
	l.LoopStart(es, int64(cols))
	s.episode(l, es, trig)
	w.column(l, es+slot)
	l.LoopEnd(rowEnd, int64(cols))
	w.row(l, rowEnd, int64(cols))
	l.LoopEnd(body, int64(rows))
	l.LoopEnd(s.masterEnd(body), int64(s.reps))

	return c.finish(kind, l)
}

// BuildRapidGrid compiles a lattice sweep with a single pulse per cell,
// stepping at the pulse interval. The trigger event opens the sweep rather
// than each cell, and Pulses and Iterations are ignored.
func (c *Compiler) BuildRapidGrid(t Timing, g Lattice, f Frame, trig Trigger) (string, error) {
	const kind = "rapid-grid"
	cols, rows := uint32(g.Dims.X), uint32(g.Dims.Y)
	s := c.prepare(kind, t, cols*rows)
	w := newSweep(g, f)

	es := uint32(EpisodeOffset)
	rowEnd := es + cols*s.isi

	l := c.newList()
	l.LoopStart(0, int64(s.reps))
	moveTo(l, 0, w.start)
	trigger(l, es, trig)
	l.LoopStart(es, int64(rows))
	l.LoopStart(es, int64(cols))
	s.pulse(l, es+s.baseline)
	w.column(l, es+s.isi)
	l.LoopEnd(rowEnd, int64(cols))
	w.row(l, rowEnd, int64(cols))
	l.LoopEnd(es+rows*cols*s.isi, int64(rows))
	l.LoopEnd(s.masterEnd(es+s.period), int64(s.reps))

	return c.finish(kind, l)
}
