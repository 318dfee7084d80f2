package cubie

import "errors"

// Sentinel errors for the cubie package.
var (
	// Protocol errors: the caller drove the machine out of order.
	ErrNoPointer    = errors.New("cubie: grab requires an origin pointer position")
	ErrNoGrabPoint  = errors.New("cubie: slice grab requires a grabbed point")
	ErrUnknownState = errors.New("cubie: unknown state")

	ErrInvalidTransition = errors.New("cubie: invalid state transition")

	// Command errors
	ErrBusy        = errors.New("cubie: machine is not still")
	ErrInvalidMove = errors.New("cubie: invalid move notation")
)
