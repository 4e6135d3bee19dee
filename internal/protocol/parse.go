package protocol

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError reports a line of wire text that could not be read.
type ParseError struct {
	Line    int // 1-based
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
}

// Parse reads wire text back into a list. Lines may end in '\n', '\r' or
// ';'. A leading clear directive and a trailing execute directive are
// accepted and dropped. The returned list has no command limit.
func Parse(r io.Reader) (*List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading protocol: %w", err)
	}

	lines := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';'
	})

	l := New(0)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case line == "C" && l.Len() == 0:
			continue
		case line == "X" && i == len(lines)-1:
			continue
		}

		cmd, err := parseCommand(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Message: err.Error()}
		}
		l.Append(cmd)
	}
	return l, nil
}

func parseCommand(line string) (Command, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return Command{}, fmt.Errorf("expected 4 comma-separated fields, got %d", len(fields))
	}
	if len(fields[0]) != 2 {
		return Command{}, fmt.Errorf("command code must be two characters")
	}

	cycle, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Command{}, fmt.Errorf("cycle: %w", err)
	}
	channel, err := strconv.Atoi(fields[2])
	if err != nil {
		return Command{}, fmt.Errorf("channel: %w", err)
	}
	value, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("value: %w", err)
	}

	return Command{
		Control: ControlKind(fields[0][0]),
		Scan:    ScanKind(fields[0][1]),
		Cycle:   uint32(cycle),
		Channel: Channel(channel),
		Value:   value,
	}, nil
}
