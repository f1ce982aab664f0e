package detection

import "errors"

var (
	// ErrEmptyChain is returned when a filter chain lists no operators.
	ErrEmptyChain = errors.New("detection: filter chain is empty")

	// ErrUnknownOperator is returned for a filter operator name that is not recognized.
	ErrUnknownOperator = errors.New("detection: unknown filter operator")

	// ErrNegativeQuantity is returned when the area filter is asked for fewer than zero lines.
	ErrNegativeQuantity = errors.New("detection: quantity must not be negative")
)
