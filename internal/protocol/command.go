package protocol

import (
	"fmt"
	"strconv"
)

// ControlKind is the DSP control character of a command line.
type ControlKind byte

// Add appends a scan command to the DSP's list. It is the only control kind a
// compiled protocol contains.
const Add ControlKind = 'A'

// ScanKind is the scan command character of a command line.
type ScanKind byte

const (
	SetValue     ScanKind = 'V' // set channel to value
	SetRelative  ScanKind = 'R' // add value to the channel's current value
	SetIncrement ScanKind = 'I' // add value to the channel every cycle
	SetOffset    ScanKind = 'O' // toggle the position offset
	LoopStart    ScanKind = 'S'
	LoopEnd      ScanKind = 'E'
	WaitRising   ScanKind = 'U' // block until the trigger input rises
	WaitFalling  ScanKind = 'D' // block until the trigger input falls
	NoOp         ScanKind = '0'
)

var scanNames = map[ScanKind]string{
	SetValue:     "set",
	SetRelative:  "relative",
	SetIncrement: "increment",
	SetOffset:    "offset",
	LoopStart:    "loop-start",
	LoopEnd:      "loop-end",
	WaitRising:   "wait-rising",
	WaitFalling:  "wait-falling",
	NoOp:         "wait",
}

// Valid reports whether k is a scan kind the DSP understands.
func (k ScanKind) Valid() bool {
	_, ok := scanNames[k]
	return ok
}

// String implements fmt.Stringer.
func (k ScanKind) String() string {
	if name, ok := scanNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ScanKind(%q)", byte(k))
}

// Channel selects a DSP time slot.
type Channel int

const (
	ChannelNone Channel = 0
	PositionY   Channel = 3
	PositionX   Channel = 4
	Digital     Channel = 7
	// Loop is not read by the DSP; loop records use it for readability.
	Loop Channel = 9
)

// Level is a digital output configuration written to the Digital channel.
// The trigger line (T-OUT) signals other equipment; the shutter line (D-OUT)
// gates the laser.
type Level int64

const (
	Low         Level = 0
	TriggerHigh Level = 2
	ShutterHigh Level = 4
	BothHigh    Level = 6
)

// Edge selects which trigger input transition to wait for.
type Edge int

const (
	Rising Edge = iota + 1
	Falling
)

// Command is one line of a protocol.
type Command struct {
	Control ControlKind
	Scan    ScanKind
	Cycle   uint32
	Channel Channel
	Value   int64
}

// String renders the command without its line terminator.
func (c Command) String() string {
	return string(c.AppendText(nil))
}

// AppendText appends the wire form of c, without terminator, to dst.
func (c Command) AppendText(dst []byte) []byte {
	dst = append(dst, byte(c.Control), byte(c.Scan), ',')
	dst = strconv.AppendUint(dst, uint64(c.Cycle), 10)
	dst = append(dst, ',')
	dst = strconv.AppendInt(dst, int64(c.Channel), 10)
	dst = append(dst, ',')
	return strconv.AppendInt(dst, c.Value, 10)
}
