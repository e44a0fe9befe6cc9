package primality

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa/logging"
)

// Generator draws random primes of a fixed bit length.
type Generator struct {
	tester *Tester
	random io.Reader
	logger logging.Logger
}

// NewGenerator returns a Generator sampling candidates from random and
// checking them with tester. Nil arguments select crypto/rand.Reader, a
// default Tester over the same reader, and a discarding logger.
func NewGenerator(tester *Tester, random io.Reader, logger logging.Logger) *Generator {
	if random == nil {
		random = rand.Reader
	}
	if tester == nil {
		tester = NewTester(DefaultRounds, random)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{tester: tester, random: random, logger: logger}
}

// Prime returns a probable prime with exactly bits bits. It keeps sampling
// until a candidate passes, checking ctx between candidates.
func (g *Generator) Prime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBits, bits)
	}

	for attempts := 1; ; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prime search after %d candidates: %w", attempts-1, err)
		}

		candidate, err := randomBits(g.random, bits)
		if err != nil {
			return nil, err
		}

		ok, err := g.tester.IsProbablePrime(candidate)
		if err != nil {
			return nil, err
		}
		if ok {
			g.logger.Debug(ctx, "prime found", "bits", bits, "attempts", attempts)
			return candidate, nil
		}
	}
}

// randomBits returns a uniform integer in [2^(bits-1), 2^bits).
func randomBits(random io.Reader, bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("sample candidate: %w", err)
	}

	// Drop the excess high bits of the first byte, then force the top bit.
	excess := uint(len(buf)*8 - bits)
	buf[0] &= byte(0xff >> excess)
	buf[0] |= byte(0x80 >> excess)

	return new(big.Int).SetBytes(buf), nil
}
