package otpinput

import "errors"

var (
	// ErrInvalidConfiguration indicates a non-positive box count.
	ErrInvalidConfiguration = errors.New("otpinput: box count must be positive")

	// ErrInvalidIndex indicates a box index outside [0, count).
	ErrInvalidIndex = errors.New("otpinput: box index out of range")
)
