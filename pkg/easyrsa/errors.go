package easyrsa

import "errors"

var (
	// ErrMessageTooLong is returned by Encrypt when the message exceeds the
	// block size minus the 11 byte headroom.
	ErrMessageTooLong = errors.New("message is too long to encrypt with the given key size")

	// ErrInvalidKeySize is returned when Config.KeySize is below MinKeySize.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidKey is returned when a key has a missing or non-positive component.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidPrime is returned by DeriveKeys for primes that cannot form a modulus.
	ErrInvalidPrime = errors.New("invalid prime")

	// ErrInvalidCiphertext is returned by Decrypt for a nil envelope or a
	// negative recorded length.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)
