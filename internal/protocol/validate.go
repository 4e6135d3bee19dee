package protocol

import "fmt"

// Validation error codes (E200-E299)
const (
	ErrUnknownScan      = "E200" // scan kind not understood by the DSP
	ErrUnknownControl   = "E201" // control kind other than Add
	ErrLoopUnderflow    = "E202" // loop end without a matching start
	ErrLoopUnclosed     = "E203" // loop start never closed
	ErrLoopCountChanged = "E204" // loop end count differs from its start
	ErrLoopEndsEarly    = "E205" // loop end cycle before its start cycle
	ErrTooManyCommands  = "E206" // list longer than the DSP can store
)

// ValidationError describes one problem found in a command list.
type ValidationError struct {
	Index   int    `json:"index"` // zero-based command position, -1 for whole-list problems
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("[%s] command %d: %s", e.Code, e.Index, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks cmds for the structural rules every protocol must obey.
// All problems are returned; an empty result means the list is well formed.
//
// Loops are read as a stack: a start pushes, an end pops. The stack must
// never underflow and must be empty at the end. Each end must repeat the
// iteration count of its start and must not run before it.
func Validate(cmds []Command) []ValidationError {
	var (
		errs  []ValidationError
		stack []int
	)

	if len(cmds) > DefaultMaxCommands {
		errs = append(errs, ValidationError{
			Index:   -1,
			Code:    ErrTooManyCommands,
			Message: fmt.Sprintf("%d commands exceed the DSP limit of %d", len(cmds), DefaultMaxCommands),
		})
	}

	for i, c := range cmds {
		if c.Control != Add {
			errs = append(errs, ValidationError{
				Index:   i,
				Code:    ErrUnknownControl,
				Message: fmt.Sprintf("unexpected control kind %q", byte(c.Control)),
			})
		}
		if !c.Scan.Valid() {
			errs = append(errs, ValidationError{
				Index:   i,
				Code:    ErrUnknownScan,
				Message: fmt.Sprintf("unknown scan kind %q", byte(c.Scan)),
			})
			continue
		}

		switch c.Scan {
		case LoopStart:
			stack = append(stack, i)
		case LoopEnd:
			if len(stack) == 0 {
				errs = append(errs, ValidationError{
					Index:   i,
					Code:    ErrLoopUnderflow,
					Message: "loop end without matching start",
				})
				continue
			}
			start := cmds[stack[len(stack)-1]]
			stack = stack[:len(stack)-1]
			if start.Value != c.Value {
				errs = append(errs, ValidationError{
					Index:   i,
					Code:    ErrLoopCountChanged,
					Message: fmt.Sprintf("loop end count %d does not match start count %d", c.Value, start.Value),
				})
			}
			if c.Cycle < start.Cycle {
				errs = append(errs, ValidationError{
					Index:   i,
					Code:    ErrLoopEndsEarly,
					Message: fmt.Sprintf("loop ends at cycle %d before it starts at %d", c.Cycle, start.Cycle),
				})
			}
		}
	}

	for _, idx := range stack {
		errs = append(errs, ValidationError{
			Index:   idx,
			Code:    ErrLoopUnclosed,
			Message: "loop start is never closed",
		})
	}

	return errs
}

// MaxDepth returns the deepest loop nesting reached by cmds. Unbalanced ends
// are ignored.
func MaxDepth(cmds []Command) int {
	depth, maxDepth := 0, 0
	for _, c := range cmds {
		switch c.Scan {
		case LoopStart:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case LoopEnd:
			if depth > 0 {
				depth--
			}
		}
	}
	return maxDepth
}
