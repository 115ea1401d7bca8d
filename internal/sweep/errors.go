package sweep

import "errors"

var (
	// ErrNoPoints indicates a sweep configured with fewer than one sample.
	ErrNoPoints = errors.New("sweep: number of points must be positive")

	// ErrInvalidStep indicates a non-positive or non-finite energy step.
	ErrInvalidStep = errors.New("sweep: energy step must be positive")

	// ErrNoVariants indicates a multi-variant sweep with nothing to compute.
	ErrNoVariants = errors.New("sweep: no variants requested")
)
