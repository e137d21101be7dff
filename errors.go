package cubie

import "errors"

// Sentinel errors for the cubie package.
var (
	// Move input errors
	ErrInvalidMove     = errors.New("cubie: invalid move code")
	ErrInvalidNotation = errors.New("cubie: invalid move notation")

	// State errors
	ErrInvalidState = errors.New("cubie: invalid cube state")
)
