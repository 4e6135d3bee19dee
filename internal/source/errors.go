package source

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes source failures.
type ErrorCode string

const (
	// ErrCodeOpen indicates the file could not be opened or read.
	ErrCodeOpen ErrorCode = "SOURCE_OPEN"

	// ErrCodeMalformed indicates a line with the wrong field count or a
	// field that is not a number.
	ErrCodeMalformed ErrorCode = "SOURCE_MALFORMED"

	// ErrCodeShort indicates fewer records than requested or declared.
	ErrCodeShort ErrorCode = "SOURCE_SHORT"

	// ErrCodeHeader indicates an unusable pattern header.
	ErrCodeHeader ErrorCode = "SOURCE_HEADER"
)

// Error describes a coordinate source that could not be used.
type Error struct {
	Code    ErrorCode
	Path    string // empty for readers
	Line    int    // 1-based, 0 when not tied to a line
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, where, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, where, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error { return e.Err }

// IsShort reports whether err is a source that ended early.
func IsShort(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeShort
}

// IsMalformed reports whether err is a source with an unreadable line.
func IsMalformed(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Code == ErrCodeMalformed
}

// withPath fills in the path of a reader error.
func withPath(err error, path string) error {
	var se *Error
	if errors.As(err, &se) && se.Path == "" {
		se.Path = path
	}
	return err
}
