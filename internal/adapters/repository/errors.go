package repository

import "errors"

// Sentinel kinds for table loading errors.
var (
	ErrOpenTable     = errors.New("open table")
	ErrReadTable     = errors.New("read table")
	ErrMissingColumn = errors.New("missing required column")
)
