package numtheory

import "errors"

var (
	// ErrNotInvertible is returned by ModInverse when gcd(a, m) != 1.
	ErrNotInvertible = errors.New("value is not invertible modulo m")

	// ErrInvalidModulus is returned when the modulus is nil or not positive.
	ErrInvalidModulus = errors.New("modulus must be positive")
)
