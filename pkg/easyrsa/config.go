package easyrsa

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa/logging"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/primality"
)

const (
	// DefaultKeySize matches the size the engine has always defaulted to.
	DefaultKeySize = 4096

	// MinKeySize keeps the block size large enough for the 11 byte headroom.
	MinKeySize = 128
)

// Config carries the knobs for an Engine. The zero value is usable: New
// fills in defaults for every unset field.
type Config struct {
	// KeySize is the requested key size in bits. Each prime has
	// ceil((KeySize+1)/2) bits.
	KeySize int

	// Rounds is the number of Miller-Rabin rounds per candidate.
	Rounds int

	// Rand is the source for prime candidates, witnesses and the public
	// exponent. It defaults to crypto/rand.Reader.
	Rand io.Reader

	// Logger receives debug records from key generation. Defaults to a
	// discarding logger.
	Logger logging.Logger
}

// DefaultConfig returns the configuration New uses for a zero Config.
func DefaultConfig() Config {
	return Config{
		KeySize: DefaultKeySize,
		Rounds:  primality.DefaultRounds,
		Rand:    rand.Reader,
		Logger:  logging.Discard(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.KeySize == 0 {
		c.KeySize = def.KeySize
	}
	if c.Rounds == 0 {
		c.Rounds = def.Rounds
	}
	if c.Rand == nil {
		c.Rand = def.Rand
	}
	if c.Logger == nil {
		c.Logger = def.Logger
	}
	return c
}

// Validate reports whether the configuration can drive key generation.
func (c Config) Validate() error {
	if c.KeySize < MinKeySize {
		return fmt.Errorf("%w: %d bits, minimum is %d", ErrInvalidKeySize, c.KeySize, MinKeySize)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("%w: %d", primality.ErrInvalidRounds, c.Rounds)
	}
	return nil
}

// PrimeBits returns the bit length of each prime for the configured key size.
func (c Config) PrimeBits() int {
	return (c.KeySize + 2) / 2
}
