package bindconv

import "errors"

// Conversion errors.
var (
	// ErrNoConverter indicates that no strategy in the conversion chain was
	// able to perform the requested conversion.
	ErrNoConverter = errors.New("no suitable converter")

	// ErrTypeMismatch indicates that a conversion produced a value of a
	// different type than the caller requested.
	ErrTypeMismatch = errors.New("converted value has unexpected type")
)
