package primality_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa/primality"
)

// tenThousandthPrime is the 10,000th prime.
const tenThousandthPrime = 104729

func sieve(limit int) []bool {
	composite := make([]bool, limit+1)
	composite[0], composite[1] = true, true
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return composite
}

func TestIsProbablePrimeMatchesSieve(t *testing.T) {
	composite := sieve(tenThousandthPrime)
	tester := primality.NewTester(primality.DefaultRounds, rand.Reader)

	primes := 0
	n := new(big.Int)
	for i := 0; i <= tenThousandthPrime; i++ {
		n.SetInt64(int64(i))
		got, err := tester.IsProbablePrime(n)
		require.NoError(t, err)
		if got != !composite[i] {
			t.Fatalf("IsProbablePrime(%d) = %v, want %v", i, got, !composite[i])
		}
		if got {
			primes++
		}
	}
	assert.Equal(t, 10000, primes)
}

func TestIsProbablePrimeSmallCases(t *testing.T) {
	tests := []struct {
		name string
		n    *big.Int
		want bool
	}{
		{"nil", nil, false},
		{"negative", big.NewInt(-7), false},
		{"zero", big.NewInt(0), false},
		{"one", big.NewInt(1), false},
		{"two", big.NewInt(2), true},
		{"three", big.NewInt(3), true},
		{"four", big.NewInt(4), false},
		{"five", big.NewInt(5), true},
		{"carmichael 561", big.NewInt(561), false},
		{"mersenne 2^61-1", new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 61), big.NewInt(1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := primality.IsProbablePrime(tt.n, primality.DefaultRounds, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsProbablePrimeLargeKnownValues(t *testing.T) {
	params := btcec.S256().Params()

	ok, err := primality.IsProbablePrime(params.P, primality.DefaultRounds, rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok, "secp256k1 field prime rejected")

	ok, err = primality.IsProbablePrime(params.N, primality.DefaultRounds, rand.Reader)
	require.NoError(t, err)
	assert.True(t, ok, "secp256k1 group order rejected")

	product := new(big.Int).Mul(params.P, params.N)
	ok, err = primality.IsProbablePrime(product, primality.DefaultRounds, rand.Reader)
	require.NoError(t, err)
	assert.False(t, ok, "product of two primes accepted")
}

func TestStrongPseudoprimes(t *testing.T) {
	// Composites that are strong pseudoprimes to base 2. With full rounds
	// and random witnesses they are rejected.
	for _, v := range []int64{2047, 3277, 4033, 4681, 8321, 3215031751} {
		ok, err := primality.IsProbablePrime(big.NewInt(v), primality.DefaultRounds, rand.Reader)
		require.NoError(t, err)
		assert.False(t, ok, "%d accepted", v)
	}
}

func TestSingleRoundFalsePositive(t *testing.T) {
	// An all-zero source makes the witness 2, a liar for 2047 = 23 * 89.
	// One round is then not enough to expose it.
	zeros := bytes.NewReader(make([]byte, 64))
	ok, err := primality.IsProbablePrime(big.NewInt(2047), 1, zeros)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsProbablePrimeInvalidRounds(t *testing.T) {
	_, err := primality.IsProbablePrime(big.NewInt(7), 0, nil)
	require.ErrorIs(t, err, primality.ErrInvalidRounds)
}

type failingReader struct{}

var errEntropy = errors.New("entropy exhausted")

func (failingReader) Read([]byte) (int, error) { return 0, errEntropy }

func TestIsProbablePrimeRandomFailure(t *testing.T) {
	_, err := primality.IsProbablePrime(big.NewInt(101), 5, failingReader{})
	require.ErrorIs(t, err, errEntropy)
}

func TestNewTesterDefaults(t *testing.T) {
	assert.Equal(t, primality.DefaultRounds, primality.NewTester(0, nil).Rounds())
	assert.Equal(t, 7, primality.NewTester(7, nil).Rounds())
}
