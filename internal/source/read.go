package source

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/scancmdr/internal/calibration"
	"github.com/roach88/scancmdr/internal/geometry"
)

// open wraps os.Open failures as *Error.
func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeOpen, Path: path, Message: "cannot open", Err: err}
	}
	return f, nil
}

func short(got, want int, what string) *Error {
	return &Error{
		Code:    ErrCodeShort,
		Message: fmt.Sprintf("found %d %s, want %d", got, what, want),
	}
}

// ParseCalibration reads calibration points from r. With n > 0 exactly the
// first n points are read and fewer is an error; otherwise all points are
// read.
func ParseCalibration(r io.Reader, n int) ([]calibration.Point, error) {
	var pts []calibration.Point
	sc := newScanner(r)
	for n <= 0 || len(pts) < n {
		rec, ok, err := sc.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := rec.floats(4)
		if err != nil {
			return nil, err
		}
		pts = append(pts, calibration.Point{DeviceX: v[0], DeviceY: v[1], PixelX: v[2], PixelY: v[3]})
	}
	if n > 0 && len(pts) < n {
		return nil, short(len(pts), n, "calibration points")
	}
	return pts, nil
}

// ReadCalibration reads calibration points from the named file.
func ReadCalibration(path string, n int) ([]calibration.Point, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ParseCalibration(f, n)
	return pts, withPath(err, path)
}

// ParseTargets reads target pixels from r, with the same n rule as
// ParseCalibration.
func ParseTargets(r io.Reader, n int) ([]geometry.Pixel, error) {
	var pts []geometry.Pixel
	sc := newScanner(r)
	for n <= 0 || len(pts) < n {
		rec, ok, err := sc.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := rec.ints(2)
		if err != nil {
			return nil, err
		}
		pts = append(pts, geometry.Pixel{X: v[0], Y: v[1]})
	}
	if n > 0 && len(pts) < n {
		return nil, short(len(pts), n, "targets")
	}
	return pts, nil
}

// ReadTargets reads target pixels from the named file.
func ReadTargets(path string, n int) ([]geometry.Pixel, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ParseTargets(f, n)
	return pts, withPath(err, path)
}
