package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendHelpersSetFields(t *testing.T) {
	l := New(0)
	l.Move(PositionX, 1, -26600)
	l.LoopStart(2, 5)
	l.Output(3, ShutterHigh)
	l.WaitTrigger(4, Rising)
	l.WaitTrigger(5, Falling)
	l.Relative(6, PositionY, 250)
	l.Offset(7, PositionX, 1)
	l.Increment(8, PositionY, -3)
	l.Wait(9)
	l.LoopEnd(10, 5)

	want := []Command{
		{Add, SetValue, 1, PositionX, -26600},
		{Add, LoopStart, 2, Loop, 5},
		{Add, SetValue, 3, Digital, 4},
		{Add, WaitRising, 4, Digital, 0},
		{Add, WaitFalling, 5, Digital, 0},
		{Add, SetRelative, 6, PositionY, 250},
		{Add, SetOffset, 7, PositionX, 1},
		{Add, SetIncrement, 8, PositionY, -3},
		{Add, NoOp, 9, ChannelNone, 0},
		{Add, LoopEnd, 10, Loop, 5},
	}
	assert.Equal(t, want, l.Commands())
	assert.Equal(t, len(want), l.Len())
	assert.NoError(t, l.Err())
}

func TestAppendPreservesOrderAndDuplicates(t *testing.T) {
	l := New(0)
	l.Output(100, Low)
	l.Output(0, Low)
	l.Output(100, Low)

	cmds := l.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, uint32(100), cmds[0].Cycle)
	assert.Equal(t, uint32(0), cmds[1].Cycle)
	assert.Equal(t, cmds[0], cmds[2])
}

func TestCommandsReturnsCopy(t *testing.T) {
	l := New(0)
	l.Wait(1)

	cmds := l.Commands()
	cmds[0].Cycle = 99

	assert.Equal(t, uint32(1), l.Commands()[0].Cycle)
}

func TestCapacityLimit(t *testing.T) {
	l := New(2)
	l.Wait(1)
	l.Wait(2)
	l.Wait(3)
	l.Wait(4)

	assert.Equal(t, 2, l.Len())
	require.ErrorIs(t, l.Err(), ErrCapacity)

	text, err := l.Serialize()
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Empty(t, text, "a failed list must not render partial text")
}

func TestRelease(t *testing.T) {
	l := New(1)
	l.Wait(1)
	l.Wait(2)
	require.Error(t, l.Err())

	l.Release()
	assert.Equal(t, 0, l.Len())
	assert.NoError(t, l.Err())

	l.Wait(3)
	assert.Equal(t, 1, l.Len())
}

func TestScanKindString(t *testing.T) {
	assert.Equal(t, "loop-start", LoopStart.String())
	assert.True(t, NoOp.Valid())
	assert.False(t, ScanKind('J').Valid())
	assert.Contains(t, ScanKind('J').String(), "J")
}
