package keystore

import "errors"

var (
	// ErrMalformedKey is returned when serialized key text cannot be parsed.
	ErrMalformedKey = errors.New("malformed key")

	// ErrKeyNotFound is returned when no key pair has the requested ID.
	ErrKeyNotFound = errors.New("key pair not found")

	// ErrMismatchedPair is returned when a public and private key do not
	// share a modulus.
	ErrMismatchedPair = errors.New("public and private key moduli differ")
)
