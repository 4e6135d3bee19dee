// Package source reads the coordinate files that feed the compilers.
//
// Three line-oriented formats are supported, fields separated by tabs or
// spaces:
//
//	calibration:  deviceX deviceY pixelX pixelY   (floats, one point per line)
//	targets:      x y                             (ints, visiting order)
//	pattern:      count [dimX dimY]               (header)
//	              ix iy                           (count lines of 1-based indices)
//
// Blank lines are skipped. A file that cannot be opened, a malformed line or
// a file shorter than requested is reported as *Error; partial data is never
// returned.
package source
