package cli

import (
	"errors"

	"github.com/roach88/scancmdr/internal/calibration"
	"github.com/roach88/scancmdr/internal/job"
	"github.com/roach88/scancmdr/internal/protocol"
	"github.com/roach88/scancmdr/internal/source"
	"github.com/roach88/scancmdr/internal/store"
)

// classify maps an error from the job, source, compiler or store packages
// to an exit code and error code.
func classify(err error) (exit int, code string) {
	var (
		loadErr   *job.LoadError
		sourceErr *source.Error
		parseErr  *protocol.ParseError
	)
	switch {
	case errors.As(err, &loadErr):
		return ExitCommandError, loadErr.Code
	case errors.As(err, &sourceErr):
		return ExitCommandError, string(sourceErr.Code)
	case errors.As(err, &parseErr):
		return ExitFailure, ErrCodeParse
	case errors.Is(err, protocol.ErrCapacity):
		return ExitFailure, ErrCodeCapacity
	case errors.Is(err, calibration.ErrTooFewPoints), errors.Is(err, calibration.ErrDegenerate):
		return ExitFailure, ErrCodeCalibration
	case errors.Is(err, job.ErrInvalid):
		return ExitFailure, ErrCodeGeneric
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrAmbiguous):
		return ExitCommandError, ErrCodeNotFound
	}
	return ExitCommandError, ErrCodeGeneric
}

// fail reports err through f with the code classify picks for it.
func fail(f *OutputFormatter, err error) error {
	exit, code := classify(err)
	msg := err.Error()
	var loadErr *job.LoadError
	if errors.As(err, &loadErr) {
		msg = loadErr.Message
	}
	_ = f.Error(code, msg, nil)
	return WrapExitError(exit, code, err)
}
