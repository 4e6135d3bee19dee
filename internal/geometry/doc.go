// Package geometry converts image (pixel) coordinates into scan-mirror
// device coordinates.
//
// Device positions are signed microcounts. The mirror axes are inverted
// relative to the image, so a positive pixel offset from the centre maps to a
// negative device position. All functions are pure and return values; there is
// no shared state, so they are safe for concurrent use.
package geometry
