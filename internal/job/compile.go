package job

import (
	"errors"
	"fmt"

	"github.com/roach88/scancmdr/internal/calibration"
	"github.com/roach88/scancmdr/internal/compiler"
	"github.com/roach88/scancmdr/internal/geometry"
	"github.com/roach88/scancmdr/internal/source"
)

// ErrInvalid is returned by Compile for jobs that fail Validate.
var ErrInvalid = errors.New("invalid job")

// Result is a compiled job.
type Result struct {
	Job   *Job
	Scale int64 // scale actually used, estimated when the job gives a calibration file
	Text  string
}

// Compile validates j, reads its sources and runs the matching compiler.
func Compile(j *Job, c *compiler.Compiler) (*Result, error) {
	if errs := Validate(j); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, errs[0].Error())
	}

	trig, err := compiler.ParseTrigger(j.Trigger)
	if err != nil {
		return nil, err
	}
	frame, err := j.frame()
	if err != nil {
		return nil, err
	}

	var text string
	switch j.Kind {
	case KindSpot:
		text, err = c.BuildSpot(j.Timing, *j.Position, frame, trig)
	case KindGrid:
		text, err = c.BuildGrid(j.Timing, *j.Lattice, frame, trig)
	case KindRapidGrid:
		text, err = c.BuildRapidGrid(j.Timing, *j.Lattice, frame, trig)
	case KindTarget, KindRapidTarget:
		var points []geometry.Pixel
		points, err = j.targets()
		if err != nil {
			return nil, err
		}
		if j.Kind == KindTarget {
			text, err = c.BuildTarget(j.Timing, points, frame, trig)
		} else {
			text, err = c.BuildRapidTarget(j.Timing, points, frame, trig)
		}
	case KindPattern:
		var p source.Pattern
		p, err = source.ReadPattern(j.Pattern)
		if err != nil {
			return nil, err
		}
		text, err = c.BuildPattern(j.Timing, p, j.Lattice.Start, j.Lattice.Spacing, frame, trig)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Job: j, Scale: frame.Scale, Text: text}, nil
}

// frame resolves the scale, estimating it from the calibration file when no
// explicit scale is given.
func (j *Job) frame() (compiler.Frame, error) {
	f := compiler.Frame{
		Scale:    j.Frame.Scale,
		Center:   j.Frame.Center,
		Rotation: j.Frame.Rotation,
	}
	if f.Scale > 0 {
		return f, nil
	}

	pts, err := source.ReadCalibration(j.Frame.Calibration, j.Frame.CalibrationPoints)
	if err != nil {
		return compiler.Frame{}, err
	}
	scale, err := calibration.EstimateScale(pts)
	if err != nil {
		return compiler.Frame{}, fmt.Errorf("calibration %s: %w", j.Frame.Calibration, err)
	}
	f.Scale = scale
	return f, nil
}

func (j *Job) targets() ([]geometry.Pixel, error) {
	if len(j.Points) > 0 {
		return j.Points, nil
	}
	return source.ReadTargets(j.Targets, j.NumPoints)
}
