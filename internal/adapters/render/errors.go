package render

import "errors"

// Sentinel kinds for chart rendering errors.
var (
	ErrEmptySummary  = errors.New("summary has no cohorts")
	ErrInvalidColor  = errors.New("invalid hex color")
	ErrUnknownFormat = errors.New("unknown image format")
	ErrOutputDir     = errors.New("output directory unavailable")
	ErrWriteImage    = errors.New("write image")
)
