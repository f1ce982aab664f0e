package segments

import "errors"

var (
	// ErrUnknownAlgorithm is returned for an extraction algorithm name that is not recognized.
	ErrUnknownAlgorithm = errors.New("segments: unknown algorithm")

	// ErrEmptyImage is returned when an image has no pixels.
	ErrEmptyImage = errors.New("segments: image is empty")

	// ErrRegion is returned for a region of interest that is empty or extends
	// past the image.
	ErrRegion = errors.New("segments: invalid region")
)
