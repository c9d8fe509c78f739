package aggregate

import "errors"

// Sentinel kinds for aggregation errors.
var (
	// ErrCohortCoercion is returned when a working row has a null or non-integer cohort.
	ErrCohortCoercion = errors.New("cohort cannot be coerced to an integer")
	// ErrInvalidRange is returned when the cohort range is inverted.
	ErrInvalidRange = errors.New("invalid cohort range")
)
