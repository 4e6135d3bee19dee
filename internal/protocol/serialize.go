package protocol

// Wire directives that frame a protocol upload.
const (
	Clear   = "C\n"
	Execute = "X\n"
)

// approximate rendered width of one command line, used to presize buffers
const lineHint = 24

// Serialize renders the list in wire format, prefixed by the clear directive.
// If any append failed, Serialize returns the recorded error and no text.
func (l *List) Serialize() (string, error) {
	if l.err != nil {
		return "", l.err
	}
	return Render(l.cmds), nil
}

// Render renders cmds in wire format, prefixed by the clear directive.
func Render(cmds []Command) string {
	buf := make([]byte, 0, len(Clear)+len(cmds)*lineHint)
	buf = append(buf, Clear...)
	for _, c := range cmds {
		buf = c.AppendText(buf)
		buf = append(buf, '\n')
	}
	return string(buf)
}
