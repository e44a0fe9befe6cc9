package blockcodec

import "errors"

var (
	// ErrInvalidBlockSize is returned when the block size is not positive.
	ErrInvalidBlockSize = errors.New("block size must be positive")

	// ErrBlockTooLarge is returned by Pad when the value leaves no room for
	// the two marker bytes.
	ErrBlockTooLarge = errors.New("block too large to pad")
)
