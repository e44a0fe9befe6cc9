package easyrsa

import (
	"fmt"
	"math/big"
)

// headroom is the number of bytes Encrypt keeps free in every block.
const headroom = 11

// PublicKey is the pair (N, E).
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the pair (N, D). It does not retain the primes.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// BlockSize returns ceil(bitlen(n)/8), the width in bytes of one RSA block.
func BlockSize(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// SafeMessageLen returns the longest message that round-trips exactly for a
// modulus of the given block size. Longer messages up to the encryption limit
// are accepted but the padding marker may overlap their bytes.
func SafeMessageLen(blockSize int) int {
	return max((blockSize-2)/2, 0)
}

// Size returns the block size in bytes.
func (k *PublicKey) Size() int { return BlockSize(k.N) }

// MaxMessageLen returns the longest message Encrypt accepts for this key.
func (k *PublicKey) MaxMessageLen() int { return k.Size() - headroom }

// Validate checks that both components are present and positive.
func (k *PublicKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil public key", ErrInvalidKey)
	}
	return validatePair(k.N, k.E, "e")
}

// Size returns the block size in bytes.
func (k *PrivateKey) Size() int { return BlockSize(k.N) }

// Validate checks that both components are present and positive.
func (k *PrivateKey) Validate() error {
	if k == nil {
		return fmt.Errorf("%w: nil private key", ErrInvalidKey)
	}
	return validatePair(k.N, k.D, "d")
}

// Zeroize clears the private exponent. The key is unusable afterwards.
func (k *PrivateKey) Zeroize() {
	if k == nil || k.D == nil {
		return
	}
	words := k.D.Bits()
	for i := range words {
		words[i] = 0
	}
	k.D.SetInt64(0)
	k.D = nil
}

func validatePair(n, x *big.Int, name string) error {
	if n == nil || n.Sign() <= 0 {
		return fmt.Errorf("%w: modulus must be positive", ErrInvalidKey)
	}
	if BlockSize(n) <= headroom {
		return fmt.Errorf("%w: %d bit modulus leaves no room for a message", ErrInvalidKey, n.BitLen())
	}
	if x == nil || x.Sign() <= 0 {
		return fmt.Errorf("%w: exponent %s must be positive", ErrInvalidKey, name)
	}
	return nil
}
