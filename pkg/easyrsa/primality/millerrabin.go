package primality

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// DefaultRounds is the number of Miller-Rabin rounds used when none is given.
const DefaultRounds = 40

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Tester runs Miller-Rabin with a fixed round count and random source.
// A Tester is safe for concurrent use if its random source is.
type Tester struct {
	rounds int
	random io.Reader
}

// NewTester returns a Tester running rounds witness rounds. rounds <= 0
// selects DefaultRounds; a nil random selects crypto/rand.Reader.
func NewTester(rounds int, random io.Reader) *Tester {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if random == nil {
		random = rand.Reader
	}
	return &Tester{rounds: rounds, random: random}
}

// Rounds returns the configured number of witness rounds.
func (t *Tester) Rounds() int { return t.rounds }

// IsProbablePrime reports whether n passes every Miller-Rabin round.
func (t *Tester) IsProbablePrime(n *big.Int) (bool, error) {
	return IsProbablePrime(n, t.rounds, t.random)
}

// IsProbablePrime runs rounds Miller-Rabin rounds on n with witnesses drawn
// from random (crypto/rand.Reader when nil). The only error is a failure of
// the random source.
func IsProbablePrime(n *big.Int, rounds int, random io.Reader) (bool, error) {
	if rounds <= 0 {
		return false, ErrInvalidRounds
	}
	if n == nil || n.Cmp(one) <= 0 {
		return false, nil
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true, nil
	}
	if n.Bit(0) == 0 {
		return false, nil
	}
	if random == nil {
		random = rand.Reader
	}

	nMinus1 := new(big.Int).Sub(n, one)
	r := nMinus1.TrailingZeroBits()
	s := new(big.Int).Rsh(nMinus1, r)

	// Witnesses come from [2, n-2]: rand.Int over [0, n-3) shifted by 2.
	span := new(big.Int).Sub(n, three)
	x := new(big.Int)

	for i := 0; i < rounds; i++ {
		a, err := rand.Int(random, span)
		if err != nil {
			return false, fmt.Errorf("draw witness: %w", err)
		}
		a.Add(a, two)

		x.Exp(a, s, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		if !squaresToMinusOne(x, r, n, nMinus1) {
			return false, nil
		}
	}
	return true, nil
}

// squaresToMinusOne squares x up to r-1 times and reports whether it reaches
// n-1. x is overwritten.
func squaresToMinusOne(x *big.Int, r uint, n, nMinus1 *big.Int) bool {
	for j := uint(1); j < r; j++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}
