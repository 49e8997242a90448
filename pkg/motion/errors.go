package motion

import "errors"

var (
	// ErrInvalidGeometry is returned when a synthesis request carries a
	// target region without positive dimensions or a non-finite start
	// point. The pipeline rejects the request before any sampling.
	ErrInvalidGeometry = errors.New("motion: invalid geometry")

	// ErrInvalidClickMode is returned during click sequencing when the
	// requested mode is not one of the supported gestures, or when a
	// gesture would violate press/release ordering.
	ErrInvalidClickMode = errors.New("motion: invalid click mode")
)
