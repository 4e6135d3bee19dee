// Package protocol holds the scan-control DSP command list and its text wire
// format.
//
// A protocol is an ordered list of commands. Each command is one line:
//
//	<control><scan>,<cycle>,<channel>,<value>\n
//
// where control is always 'A' (add to the DSP's scan list), scan selects the
// operation, cycle is the absolute 10 µs cycle at which it runs, channel picks
// the output slot and value is the argument. A rendered protocol starts with a
// single "C" line that clears the DSP's previous list. Execution ("X") is left
// to whoever uploads the text.
//
// Loops are written as a start/end pair on channel 9. Both records carry the
// iteration count, and the end cycle is start + iterations * iteration length.
// Loops nest strictly: the most recently opened loop is the next one closed.
package protocol
