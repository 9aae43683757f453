package montecarlo

import "errors"

var (
	// ErrNotImplemented is returned by a trial that has no concrete model.
	ErrNotImplemented = errors.New("simulate once not implemented")
	// ErrIllegalState is returned when results are requested before a run.
	ErrIllegalState = errors.New("run simulation must be executed first")
	// ErrInvalidArgument is returned for empty inputs and out of range parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)
