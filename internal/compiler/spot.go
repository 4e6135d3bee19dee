package compiler

import "github.com/roach88/scancmdr/internal/geometry"

// BuildSpot compiles a protocol that stimulates a single position.
//
// The mirrors are positioned before the master loop opens, and the episode
// starts at cycle 0. Rotation in f is ignored.
func (c *Compiler) BuildSpot(t Timing, pos geometry.Pixel, f Frame, trig Trigger) (string, error) {
	const kind = "spot"
	s := c.prepare(kind, t, t.Pulses)
	d := geometry.ToDevice(pos, f.Scale, f.Center, 0)

	l := c.newList()
	moveTo(l, 0, d)
	l.LoopStart(0, int64(s.reps))
	s.episode(l, 0, trig)
	l.LoopEnd(s.masterEnd(s.slot()), int64(s.reps))

	return c.finish(kind, l)
}
