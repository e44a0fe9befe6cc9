// Package numtheory implements the integer algorithms behind RSA key
// derivation: Euclid's gcd, the iterative extended Euclidean algorithm and
// the modular inverse built on it.
//
// All functions treat their *big.Int arguments as read-only and return
// freshly allocated results.
package numtheory
