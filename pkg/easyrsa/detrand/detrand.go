// Package detrand provides a seeded, reproducible byte stream for tests and
// demos that need repeatable key generation.
//
// The seed is condensed with HKDF-Extract (SHA-256) and the result keys a
// SHAKE256 extendable-output function, so the stream has no length limit.
// The output is deterministic by construction and must never replace
// crypto/rand for real keys.
package detrand

import (
	"crypto/sha256"
	"io"

	"github.com/cloudflare/circl/xof"
	"golang.org/x/crypto/hkdf"
)

const salt = "easyrsa/detrand/v1"

// Reader is a deterministic io.Reader. It is not safe for concurrent use.
type Reader struct {
	stream xof.XOF
}

// New returns a Reader whose output depends only on seed.
func New(seed []byte) *Reader {
	prk := hkdf.Extract(sha256.New, seed, []byte(salt))

	stream := xof.SHAKE256.New()
	// Writes to a fresh XOF cannot fail.
	_, _ = stream.Write(prk)
	return &Reader{stream: stream}
}

// Read fills p with the next bytes of the stream. It always returns len(p).
func (r *Reader) Read(p []byte) (int, error) {
	return r.stream.Read(p)
}

// Fork returns an independent Reader positioned at the current offset.
func (r *Reader) Fork() *Reader {
	return &Reader{stream: r.stream.Clone()}
}

var _ io.Reader = (*Reader)(nil)
