package life

import "errors"

var (
	// ErrInvalidSize indicates a non-positive grid dimension.
	ErrInvalidSize = errors.New("life: grid size must be positive")

	// ErrInvalidCoordinate indicates a row or column outside [0, size).
	ErrInvalidCoordinate = errors.New("life: coordinate out of range")
)
