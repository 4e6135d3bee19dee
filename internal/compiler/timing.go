package compiler

// CyclesPerMs is the number of DSP cycles in one millisecond.
const CyclesPerMs = 100

const (
	// TriggerWidth is the length of a trigger-out pulse in cycles.
	TriggerWidth = 10

	// EpisodeOffset delays the first episode of grid and target protocols so
	// that the initial moves settle.
	EpisodeOffset = 10

	// ProtocolTail is appended to every master loop iteration.
	ProtocolTail = 50
)

// Timing holds the millisecond timing parameters of a protocol.
type Timing struct {
	Baseline   uint32 `json:"baseline" yaml:"baseline"`       // episode start to first pulse
	PulseWidth uint32 `json:"pulse_width" yaml:"pulse_width"` // shutter open time
	Pulses     uint32 `json:"pulses" yaml:"pulses"`
	ISI        uint32 `json:"isi" yaml:"isi"` // pulse start to pulse start
	Iterations uint32 `json:"iterations" yaml:"iterations"`
	Period     uint32 `json:"period" yaml:"period"` // one episode
	Reps       uint32 `json:"reps" yaml:"reps"`
}

// Coerce applies the timing policy for a protocol with slots pulse slots per
// episode and reports whether anything changed.
//
// The interval is raised to at least the pulse width, then the period is
// raised to at least Baseline + slots*ISI.
func Coerce(t Timing, slots uint32) (Timing, bool) {
	changed := false
	if t.ISI < t.PulseWidth {
		t.ISI = t.PulseWidth
		changed = true
	}
	if floor := t.Baseline + slots*t.ISI; t.Period < floor {
		t.Period = floor
		changed = true
	}
	return t, changed
}

// schedule is a coerced Timing in cycles.
type schedule struct {
	baseline   uint32
	width      uint32
	pulses     uint32
	isi        uint32
	iterations uint32
	period     uint32 // a single episode
	reps       uint32
}

func toCycles(t Timing) schedule {
	it := t.Iterations
	if it == 0 {
		it = 1
	}
	return schedule{
		baseline:   t.Baseline * CyclesPerMs,
		width:      t.PulseWidth * CyclesPerMs,
		pulses:     t.Pulses,
		isi:        t.ISI * CyclesPerMs,
		iterations: it,
		period:     t.Period * CyclesPerMs,
		reps:       t.Reps,
	}
}

// slot is the time one point occupies, including repeated iterations.
func (s schedule) slot() uint32 {
	return s.period * s.iterations
}

// masterEnd is the end cycle of a master loop whose single iteration runs
// for body cycles.
func (s schedule) masterEnd(body uint32) uint32 {
	return s.reps * (body + ProtocolTail)
}
