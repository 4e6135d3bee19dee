package geometry

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/golang/geo/r2"
)

// Pixel is a point in image space.
type Pixel struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String implements fmt.Stringer.
func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Device is a mirror position in microcounts.
type Device struct {
	X int64
	Y int64
}

// ToDevice maps a pixel onto the device grid.
//
// The pixel is taken relative to center, rotated by theta radians, multiplied
// by scale and negated on both axes:
//
//	t = scale * e^(i*theta) * (p - center)
//	Device{X: -round(Re t), Y: -round(Im t)}
func ToDevice(p Pixel, scale int64, center Pixel, theta float64) Device {
	z := complex(float64(p.X), float64(p.Y)) - complex(float64(center.X), float64(center.Y))
	t := complex(float64(scale), 0) * cmplx.Exp(complex(0, theta)) * z

	return Device{
		X: -int64(math.Round(real(t))),
		Y: -int64(math.Round(imag(t))),
	}
}

// Rotate rotates p about center by theta radians and rounds the result back
// onto the pixel grid.
func Rotate(p, center Pixel, theta float64) Pixel {
	if theta == 0 {
		return p
	}
	c := toPoint(center)
	d := toPoint(p).Sub(c)
	sin, cos := math.Sincos(theta)
	// d*cos + ortho(d)*sin is the counter-clockwise rotation of d.
	r := c.Add(d.Mul(cos)).Add(d.Ortho().Mul(sin))
	return fromPoint(r)
}

// RotateAll rotates every point about center. The input slice is not
// modified.
func RotateAll(points []Pixel, center Pixel, theta float64) []Pixel {
	out := make([]Pixel, len(points))
	for i, p := range points {
		out[i] = Rotate(p, center, theta)
	}
	return out
}

// Centroid returns the rounded mean of points. It panics if points is empty.
func Centroid(points []Pixel) Pixel {
	if len(points) == 0 {
		panic("geometry: centroid of empty point set")
	}
	var sum r2.Point
	for _, p := range points {
		sum = sum.Add(toPoint(p))
	}
	n := float64(len(points))
	return fromPoint(r2.Point{X: sum.X / n, Y: sum.Y / n})
}

// GridCorners returns the four corners of a dims.X by dims.Y lattice that
// starts at start and extends +X and -Y by spacing.
func GridCorners(start, spacing, dims Pixel) [4]Pixel {
	farX := start.X + spacing.X*(dims.X-1)
	farY := start.Y - spacing.Y*(dims.Y-1)
	return [4]Pixel{
		start,
		{X: farX, Y: start.Y},
		{X: farX, Y: farY},
		{X: start.X, Y: farY},
	}
}

func toPoint(p Pixel) r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

func fromPoint(p r2.Point) Pixel {
	return Pixel{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}
