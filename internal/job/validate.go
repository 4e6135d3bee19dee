package job

import (
	"fmt"

	"github.com/roach88/scancmdr/internal/compiler"
)

// Validation error codes (E400-E499)
const (
	ErrJobName          = "E400" // name is required
	ErrJobKind          = "E401" // unknown kind
	ErrJobTrigger       = "E402" // unknown trigger
	ErrJobPosition      = "E403" // spot without position
	ErrJobLattice       = "E404" // lattice missing or incomplete
	ErrJobTargets       = "E405" // need exactly one of targets or points
	ErrJobPattern       = "E406" // pattern kind without pattern file
	ErrJobFrame         = "E407" // need scale or calibration
	ErrJobReps          = "E408" // reps must be at least 1
	ErrJobCalibrationN  = "E409" // calibration_points below 2
	ErrJobPointsIgnored = "E410" // points given to a kind that does not use them
)

// ValidationError describes one problem with a job.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks the cross-field rules the schema cannot express.
// Returns all errors found (does not fail-fast).
func Validate(j *Job) []ValidationError {
	var errs []ValidationError
	add := func(code, field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg, Code: code})
	}

	if j.Name == "" {
		add(ErrJobName, "name", "name is required")
	}
	if !j.Kind.Valid() {
		add(ErrJobKind, "kind", fmt.Sprintf("unknown kind %q", j.Kind))
	}
	if _, err := compiler.ParseTrigger(j.Trigger); err != nil {
		add(ErrJobTrigger, "trigger", err.Error())
	}
	if j.Timing.Reps < 1 {
		add(ErrJobReps, "timing.reps", "reps must be at least 1")
	}

	switch {
	case j.Frame.Scale > 0:
	case j.Frame.Calibration != "":
		if j.Frame.CalibrationPoints == 1 || j.Frame.CalibrationPoints < 0 {
			add(ErrJobCalibrationN, "frame.calibration_points", "at least two calibration points are required")
		}
	default:
		add(ErrJobFrame, "frame", "either scale or calibration is required")
	}

	switch j.Kind {
	case KindSpot:
		if j.Position == nil {
			add(ErrJobPosition, "position", "spot jobs need a position")
		}
	case KindGrid, KindRapidGrid:
		if j.Lattice == nil {
			add(ErrJobLattice, "lattice", "grid jobs need a lattice")
		} else if j.Lattice.Dims.X < 1 || j.Lattice.Dims.Y < 1 {
			add(ErrJobLattice, "lattice.dims", "grid dimensions must be at least 1x1")
		}
	case KindTarget, KindRapidTarget:
		if (j.Targets == "") == (len(j.Points) == 0) {
			add(ErrJobTargets, "targets", "give exactly one of targets or points")
		}
	case KindPattern:
		if j.Pattern == "" {
			add(ErrJobPattern, "pattern", "pattern jobs need a pattern file")
		}
		if j.Lattice == nil {
			add(ErrJobLattice, "lattice", "pattern jobs need lattice start and spacing")
		}
	}

	if j.Kind != KindTarget && j.Kind != KindRapidTarget && (len(j.Points) > 0 || j.Targets != "") {
		add(ErrJobPointsIgnored, "points", fmt.Sprintf("%s jobs do not use targets or points", j.Kind))
	}

	return errs
}
