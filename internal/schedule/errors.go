package schedule

import "errors"

var (
	// ErrInvalidInput rejects malformed requests. It is the only error that
	// aborts a Build.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProjectionUnavailable marks a player/round pair without a price
	// projection. The player is skipped for that round only.
	ErrProjectionUnavailable = errors.New("projection unavailable")

	// ErrInsufficientRosterValue means the roster cannot raise enough cash
	// within the horizon.
	ErrInsufficientRosterValue = errors.New("insufficient roster value")

	// ErrEngineInvariantViolation indicates an internally inconsistent
	// schedule.
	ErrEngineInvariantViolation = errors.New("engine invariant violation")
)
