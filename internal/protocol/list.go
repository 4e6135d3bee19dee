package protocol

import (
	"errors"
	"fmt"
)

// DefaultMaxCommands is the number of lines the DSP can hold in one protocol.
const DefaultMaxCommands = 10000

// ErrCapacity is returned when a list would grow past its command limit.
var ErrCapacity = errors.New("protocol: command limit exceeded")

// List is an append-only command list owned by a single compilation.
//
// Append methods never fail individually. The first failure is recorded and
// every later append becomes a no-op; Err and Serialize report it. This keeps
// the compilers free of per-line error checks while guaranteeing that a
// failed build never renders partial text.
type List struct {
	cmds  []Command
	limit int
	err   error
}

// New returns an empty list that refuses to grow past limit commands.
// A limit of zero or less disables the check.
func New(limit int) *List {
	return &List{limit: limit}
}

// Len returns the number of commands appended so far.
func (l *List) Len() int { return len(l.cmds) }

// Err returns the first append failure, if any.
func (l *List) Err() error { return l.err }

// Commands returns a copy of the list contents in append order.
func (l *List) Commands() []Command {
	out := make([]Command, len(l.cmds))
	copy(out, l.cmds)
	return out
}

// Release drops the list contents. The list can be reused afterwards.
func (l *List) Release() {
	l.cmds = nil
	l.err = nil
}

// Append adds c verbatim. Compilers use the typed helpers below instead.
func (l *List) Append(c Command) {
	if l.err != nil {
		return
	}
	if l.limit > 0 && len(l.cmds) >= l.limit {
		l.err = fmt.Errorf("%w: limit is %d", ErrCapacity, l.limit)
		return
	}
	l.cmds = append(l.cmds, c)
}

func (l *List) add(scan ScanKind, cycle uint32, ch Channel, value int64) {
	l.Append(Command{Control: Add, Scan: scan, Cycle: cycle, Channel: ch, Value: value})
}

// Move sets an axis to an absolute position.
func (l *List) Move(ch Channel, cycle uint32, position int64) {
	l.add(SetValue, cycle, ch, position)
}

// LoopStart opens a loop of n iterations.
func (l *List) LoopStart(cycle uint32, n int64) {
	l.add(LoopStart, cycle, Loop, n)
}

// LoopEnd closes the innermost open loop. n repeats the iteration count.
func (l *List) LoopEnd(cycle uint32, n int64) {
	l.add(LoopEnd, cycle, Loop, n)
}

// Output sets the digital output lines.
func (l *List) Output(cycle uint32, level Level) {
	l.add(SetValue, cycle, Digital, int64(level))
}

// WaitTrigger blocks until the trigger input shows edge.
func (l *List) WaitTrigger(cycle uint32, edge Edge) {
	scan := WaitRising
	if edge == Falling {
		scan = WaitFalling
	}
	l.add(scan, cycle, Digital, 0)
}

// Relative moves a channel by delta from its current value.
func (l *List) Relative(cycle uint32, ch Channel, delta int64) {
	l.add(SetRelative, cycle, ch, delta)
}

// Offset switches the position offset of a channel.
func (l *List) Offset(cycle uint32, ch Channel, value int64) {
	l.add(SetOffset, cycle, ch, value)
}

// Increment sets the per-cycle increment of a channel.
func (l *List) Increment(cycle uint32, ch Channel, value int64) {
	l.add(SetIncrement, cycle, ch, value)
}

// Wait appends a no-op that keeps the DSP busy until cycle.
func (l *List) Wait(cycle uint32) {
	l.add(NoOp, cycle, ChannelNone, 0)
}
