package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// record is one non-blank line split into fields.
type record struct {
	line   int
	fields []string
}

// scanner yields non-blank records from r.
type scanner struct {
	s    *bufio.Scanner
	line int
}

func newScanner(r io.Reader) *scanner {
	return &scanner{s: bufio.NewScanner(r)}
}

// next returns the next record. ok is false at end of input; err is set only
// for read failures.
func (sc *scanner) next() (rec record, ok bool, err error) {
	for sc.s.Scan() {
		sc.line++
		fields := strings.Fields(sc.s.Text())
		if len(fields) == 0 {
			continue
		}
		return record{line: sc.line, fields: fields}, true, nil
	}
	if err := sc.s.Err(); err != nil {
		return record{}, false, &Error{Code: ErrCodeOpen, Message: "read failed", Err: err}
	}
	return record{}, false, nil
}

func (r record) malformed(msg string, err error) *Error {
	return &Error{Code: ErrCodeMalformed, Line: r.line, Message: msg, Err: err}
}

func (r record) ints(want int) ([]int, error) {
	if len(r.fields) != want {
		return nil, r.malformed(fmt.Sprintf("expected %d integer fields, got %d", want, len(r.fields)), nil)
	}
	out := make([]int, want)
	for i, f := range r.fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, r.malformed(fmt.Sprintf("field %d is not an integer", i+1), err)
		}
		out[i] = v
	}
	return out, nil
}

func (r record) floats(want int) ([]float64, error) {
	if len(r.fields) != want {
		return nil, r.malformed(fmt.Sprintf("expected %d numeric fields, got %d", want, len(r.fields)), nil)
	}
	out := make([]float64, want)
	for i, f := range r.fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, r.malformed(fmt.Sprintf("field %d is not a number", i+1), err)
		}
		out[i] = v
	}
	return out, nil
}
