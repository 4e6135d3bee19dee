package compiler

import (
	"github.com/roach88/scancmdr/internal/geometry"
	"github.com/roach88/scancmdr/internal/source"
)

// BuildTarget compiles a protocol that visits points in order, one full
// episode per point. A non-zero rotation turns the point set about its
// centroid before conversion.
func (c *Compiler) BuildTarget(t Timing, points []geometry.Pixel, f Frame, trig Trigger) (string, error) {
	return c.buildTargets("target", t, points, f, trig)
}

// BuildPattern maps the pattern's indices onto the lattice given by start
// and spacing, then compiles the result like BuildTarget.
func (c *Compiler) BuildPattern(t Timing, p source.Pattern, start, spacing geometry.Pixel, f Frame, trig Trigger) (string, error) {
	return c.buildTargets("pattern", t, p.Points(start, spacing), f, trig)
}

func (c *Compiler) buildTargets(kind string, t Timing, points []geometry.Pixel, f Frame, trig Trigger) (string, error) {
	s := c.prepare(kind, t, t.Pulses)
	devs := f.toDevice(points)
	slot := s.slot()

	l := c.newList()
	l.LoopStart(0, int64(s.reps))
	for k, d := range devs {
		e := EpisodeOffset + uint32(k)*slot
		moveTo(l, e, d)
		s.episode(l, e, trig)
	}
	body := EpisodeOffset + uint32(len(devs))*slot
	l.LoopEnd(s.masterEnd(body), int64(s.reps))

	return c.finish(kind, l)
}

// BuildRapidTarget compiles a protocol that visits points back to back, one
// pulse each, at the pulse interval. The trigger event opens the sweep, and
// Pulses and Iterations are ignored.
func (c *Compiler) BuildRapidTarget(t Timing, points []geometry.Pixel, f Frame, trig Trigger) (string, error) {
	const kind = "rapid-target"
	s := c.prepare(kind, t, uint32(len(points)))
	devs := f.toDevice(points)

	es := uint32(EpisodeOffset)
	first := es + s.baseline

	l := c.newList()
	l.LoopStart(0, int64(s.reps))
	trigger(l, es, trig)
	for m, d := range devs {
		p := first + uint32(m)*s.isi
		moveTo(l, p, d)
		s.pulse(l, p)
	}
	l.LoopEnd(s.masterEnd(es+s.period), int64(s.reps))

	return c.finish(kind, l)
}
