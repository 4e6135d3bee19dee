// Package calibration derives the pixel-to-device scale factor from paired
// calibration measurements.
package calibration

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when fewer than two calibration points
	// are supplied.
	ErrTooFewPoints = errors.New("calibration: at least two points are required")

	// ErrDegenerate is returned when no pair of points differs on any axis
	// in both device and pixel space.
	ErrDegenerate = errors.New("calibration: all pairwise deltas are degenerate")
)

// Point pairs a known mirror position with the pixel where the spot was seen.
type Point struct {
	DeviceX float64
	DeviceY float64
	PixelX  float64
	PixelY  float64
}

// EstimateScale returns the device units per pixel implied by points.
//
// Every pair i<j contributes one slope per axis (X first, then Y) when the
// device and pixel positions both differ on that axis. Slopes are folded with
// a running pairwise average seeded by the first slope, so later pairs weigh
// more than earlier ones. The enumeration order is therefore part of the
// result.
func EstimateScale(points []Point) (int64, error) {
	if len(points) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	var (
		avg   float64
		found bool
	)
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			a, b := points[i], points[j]
			for _, s := range [2]struct{ dev, pix float64 }{
				{a.DeviceX - b.DeviceX, a.PixelX - b.PixelX},
				{a.DeviceY - b.DeviceY, a.PixelY - b.PixelY},
			} {
				if s.dev == 0 || s.pix == 0 {
					continue
				}
				est := math.Abs(s.dev) / math.Abs(s.pix)
				if !found {
					avg, found = est, true
					continue
				}
				avg = (avg + est) / 2
			}
		}
	}

	if !found {
		return 0, ErrDegenerate
	}
	return int64(math.Round(avg)), nil
}
