package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeEmpty(t *testing.T) {
	text, err := New(0).Serialize()
	require.NoError(t, err)
	assert.Equal(t, "C\n", text)
}

func TestSerializeFormat(t *testing.T) {
	l := New(0)
	l.Move(PositionX, 0, 26600)
	l.Move(PositionY, 0, -19400)
	l.LoopStart(0, 1)
	l.Output(40000, ShutterHigh)
	l.Output(60000, Low)
	l.LoopEnd(200050, 1)

	text, err := l.Serialize()
	require.NoError(t, err)

	want := "C\n" +
		"AV,0,4,26600\n" +
		"AV,0,3,-19400\n" +
		"AS,0,9,1\n" +
		"AV,40000,7,4\n" +
		"AV,60000,7,0\n" +
		"AE,200050,9,1\n"
	assert.Equal(t, want, text)
}

func TestSerializeExtremeValues(t *testing.T) {
	l := New(0)
	l.Append(Command{Control: Add, Scan: SetValue, Cycle: ^uint32(0), Channel: -1, Value: -1 << 63})

	text, err := l.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "C\nAV,4294967295,-1,-9223372036854775808\n", text)
}

func TestSerializeHasNoExecuteDirective(t *testing.T) {
	l := New(0)
	l.Wait(10)

	text, err := l.Serialize()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, Clear))
	assert.False(t, strings.Contains(text, "X"))
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestCommandString(t *testing.T) {
	c := Command{Control: Add, Scan: SetRelative, Cycle: 10, Channel: PositionX, Value: -5000}
	assert.Equal(t, "AR,10,4,-5000", c.String())
}
