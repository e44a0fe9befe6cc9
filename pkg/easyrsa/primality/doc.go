// Package primality provides the Miller-Rabin probabilistic primality test
// and a prime generator built on it.
//
// # Miller-Rabin
//
// For odd n > 3 the test writes n-1 = 2^r * s with s odd and, for each round,
// draws a witness a uniformly from [2, n-2]. The round passes when a^s mod n
// is 1 or n-1, or when repeated squaring reaches n-1 within r-1 steps.
// A single failing round proves n composite. After k passing rounds the
// probability that a composite slipped through is at most 4^-k.
//
// # Prime generation
//
// [Generator.Prime] samples uniform integers with exactly the requested bit
// length until one passes the test. There is no iteration bound; the
// expected number of samples near 2^bits is about bits*ln2.
//
// Randomness is always taken from an io.Reader supplied by the caller;
// nil selects crypto/rand.Reader.
package primality
