package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	text := "C\nAV,0,4,26600\nAV,0,3,-19400\nAS,0,9,1\nAV,40000,7,4\nAV,60000,7,0\nAE,200050,9,1\n"

	l, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 6, l.Len())

	out, err := l.Serialize()
	require.NoError(t, err)
	assert.Equal(t, text, out)
}

func TestParseAlternateTerminators(t *testing.T) {
	l, err := Parse(strings.NewReader("C;AS,0,9,1000\rA0,10,0,0;AE,10000,9,1000\nX\n"))
	require.NoError(t, err)

	cmds := l.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, Command{Add, NoOp, 10, ChannelNone, 0}, cmds[1])
	assert.Equal(t, LoopEnd, cmds[2].Scan)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"too few fields", "C\nAV,0,4\n", "expected 4"},
		{"bad cycle", "C\nAV,-1,4,0\n", "cycle"},
		{"bad channel", "C\nAV,0,x,0\n", "channel"},
		{"bad value", "C\nAV,0,4,1.5\n", "value"},
		{"bad code", "C\nAVV,0,4,0\n", "two characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.text))
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 2, pe.Line)
			assert.Contains(t, pe.Error(), tt.msg)
		})
	}
}
