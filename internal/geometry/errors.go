package geometry

import "errors"

var (
	// ErrParallel is returned when a line never crosses the axes it is asked
	// to reach.
	ErrParallel = errors.New("geometry: line is parallel to the requested axes")

	// ErrAxisConflict is returned when both an x and a y axis are supplied
	// where exactly one is expected.
	ErrAxisConflict = errors.New("geometry: supply either an x or a y axis, not both")

	// ErrAxisMissing is returned when neither axis is supplied.
	ErrAxisMissing = errors.New("geometry: no axis supplied")

	// ErrSplitRatio is returned when a split ratio is outside the open interval (0, 1).
	ErrSplitRatio = errors.New("geometry: split ratio must be between 0 and 1")

	// ErrSplitEnd is returned when a split end is neither 0 nor 1.
	ErrSplitEnd = errors.New("geometry: split end must be 0 or 1")
)
