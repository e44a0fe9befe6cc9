package primality

import "errors"

var (
	// ErrInvalidBits is returned when a prime of fewer than two bits is requested.
	ErrInvalidBits = errors.New("prime bit length must be at least 2")

	// ErrInvalidRounds is returned when a tester is configured with no rounds.
	ErrInvalidRounds = errors.New("miller-rabin rounds must be positive")
)
