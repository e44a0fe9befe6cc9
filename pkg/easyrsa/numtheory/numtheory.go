package numtheory

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// GCD returns the greatest common divisor of a and b using Euclid's algorithm.
// Signs are ignored; GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	r := new(big.Int)
	for y.Sign() != 0 {
		r.Rem(x, y)
		x, y, r = y, r, x
	}
	return x
}

// ExtendedGCD runs the iterative extended Euclidean algorithm and returns
// Bézout coefficients x, y and g = gcd(a, b) such that a*x + b*y = g.
func ExtendedGCD(a, b *big.Int) (x, y, g *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		// (oldR, r) = (r, oldR - q*r), same for s and t.
		tmp.Mul(q, r)
		oldR, r = r, oldR.Sub(oldR, tmp)
		tmp.Mul(q, s)
		oldS, s = s, oldS.Sub(oldS, tmp)
		tmp.Mul(q, t)
		oldT, t = t, oldT.Sub(oldT, tmp)
	}
	return oldS, oldT, oldR
}

// ModInverse returns x in [0, m) with a*x ≡ 1 (mod m).
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	x, _, g := ExtendedGCD(a, m)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("%w: gcd is %s", ErrNotInvertible, g.String())
	}
	// Mod is Euclidean, so a negative Bézout coefficient lands in [0, m).
	return x.Mod(x, m), nil
}

// Coprime samples e uniformly from [2, m-1] until gcd(e, m) = 1. It returns
// the value and the number of samples drawn. m must be greater than 2.
func Coprime(random io.Reader, m *big.Int) (*big.Int, int, error) {
	if m == nil || m.Cmp(two) <= 0 {
		return nil, 0, fmt.Errorf("%w: coprime search needs m > 2", ErrInvalidModulus)
	}
	if random == nil {
		random = rand.Reader
	}
	span := new(big.Int).Sub(m, two)
	for attempts := 1; ; attempts++ {
		e, err := rand.Int(random, span)
		if err != nil {
			return nil, attempts, fmt.Errorf("sample coprime: %w", err)
		}
		e.Add(e, two)
		if GCD(e, m).Cmp(one) == 0 {
			return e, attempts, nil
		}
	}
}

