package compiler

import (
	"github.com/roach88/scancmdr/internal/geometry"
	"github.com/roach88/scancmdr/internal/protocol"
)

// trigger emits the pre-episode event at cycle e.
func trigger(l *protocol.List, e uint32, trig Trigger) {
	switch trig {
	case TriggerIn:
		l.WaitTrigger(e, protocol.Rising)
	case TriggerOut:
		l.Output(e, protocol.TriggerHigh)
		l.Output(e+TriggerWidth, protocol.Low)
	}
}

// pulse opens the shutter at cycle p for the pulse width.
func (s schedule) pulse(l *protocol.List, p uint32) {
	l.Output(p, protocol.ShutterHigh)
	l.Output(p+s.width, protocol.Low)
}

// train emits the pulses of one episode starting at cycle p. A single pulse
// is written inline; longer trains use a loop.
func (s schedule) train(l *protocol.List, p uint32) {
	if s.pulses == 1 {
		s.pulse(l, p)
		return
	}
	l.LoopStart(p, int64(s.pulses))
	s.pulse(l, p)
	l.LoopEnd(p+s.pulses*s.isi, int64(s.pulses))
}

// episode emits one full episode at cycle e: the optional iteration loop,
// the trigger event and the pulse train.
func (s schedule) episode(l *protocol.List, e uint32, trig Trigger) {
	if s.iterations > 1 {
		l.LoopStart(e, int64(s.iterations))
	}
	trigger(l, e, trig)
	s.train(l, e+s.baseline)
	if s.iterations > 1 {
		l.LoopEnd(e+s.iterations*s.period, int64(s.iterations))
	}
}

// moveTo sets both axes at cycle c.
func moveTo(l *protocol.List, c uint32, d geometry.Device) {
	l.Move(protocol.PositionX, c, d.X)
	l.Move(protocol.PositionY, c, d.Y)
}
