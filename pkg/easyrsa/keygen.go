package easyrsa

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa/logging"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/numtheory"
)

var one = big.NewInt(1)

// GenerateKeys draws two primes of Config.PrimeBits bits and derives a key
// pair from them. p == q is not checked for.
func (e *Engine) GenerateKeys(ctx context.Context) (*PublicKey, *PrivateKey, error) {
	bits := e.cfg.PrimeBits()

	p, err := e.primes.Prime(ctx, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("generate p: %w", err)
	}
	q, err := e.primes.Prime(ctx, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("generate q: %w", err)
	}

	pub, priv, attempts, err := deriveKeys(e.cfg.Rand, p, q)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug(ctx, "key pair derived",
		"key_size", e.cfg.KeySize,
		logging.BitLen("modulus_bits", pub.N),
		"block_size", pub.Size(),
		"exponent_attempts", attempts,
		logging.Redacted("d"),
	)
	return pub, priv, nil
}

// DeriveKeys assembles a key pair from two primes: n = p*q,
// phi = (p-1)(q-1), e drawn uniformly from [2, phi-1] with gcd(e, phi) = 1,
// and d = e^-1 mod phi. random defaults to crypto/rand.Reader.
func DeriveKeys(random io.Reader, p, q *big.Int) (*PublicKey, *PrivateKey, error) {
	pub, priv, _, err := deriveKeys(random, p, q)
	return pub, priv, err
}

func deriveKeys(random io.Reader, p, q *big.Int) (*PublicKey, *PrivateKey, int, error) {
	if random == nil {
		random = rand.Reader
	}
	if err := checkPrime(p, "p"); err != nil {
		return nil, nil, 0, err
	}
	if err := checkPrime(q, "q"); err != nil {
		return nil, nil, 0, err
	}

	n := new(big.Int).Mul(p, q)
	phi := Totient(p, q)

	e, attempts, err := numtheory.Coprime(random, phi)
	if err != nil {
		return nil, nil, attempts, fmt.Errorf("public exponent: %w", err)
	}
	d, err := numtheory.ModInverse(e, phi)
	if err != nil {
		return nil, nil, attempts, fmt.Errorf("private exponent: %w", err)
	}

	return &PublicKey{N: n, E: e}, &PrivateKey{N: new(big.Int).Set(n), D: d}, attempts, nil
}

// Totient returns (p-1)(q-1).
func Totient(p, q *big.Int) *big.Int {
	p1 := new(big.Int).Sub(p, one)
	q1 := new(big.Int).Sub(q, one)
	return p1.Mul(p1, q1)
}

func checkPrime(v *big.Int, name string) error {
	// Primality is the caller's concern; only values that cannot form a
	// modulus are rejected here.
	if v == nil || v.Cmp(one) <= 0 {
		return fmt.Errorf("%w: %s must be greater than 1", ErrInvalidPrime, name)
	}
	return nil
}
