package easyrsa

import (
	"fmt"
	"math/big"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa/blockcodec"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/logging"
	"github.com/coinbase/easyrsa-go/pkg/easyrsa/primality"
)

// Ciphertext is the encryption envelope: the raw ciphertext blocks and the
// length of the plaintext they encode. Decrypt needs both.
type Ciphertext struct {
	Data   []byte
	Length int
}

// Engine generates keys and encrypts and decrypts with them. It holds only
// immutable configuration and is safe for concurrent use when Config.Rand is.
type Engine struct {
	cfg    Config
	primes *primality.Generator
	logger logging.Logger
}

// New validates cfg, fills in defaults and returns an Engine.
func New(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tester := primality.NewTester(cfg.Rounds, cfg.Rand)
	return &Engine{
		cfg:    cfg,
		primes: primality.NewGenerator(tester, cfg.Rand, cfg.Logger),
		logger: cfg.Logger,
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Encrypt pads message into a block and raises it to pub.E modulo pub.N.
// Each ciphertext block is written as BlockSize(pub.N) big-endian bytes.
func (e *Engine) Encrypt(message []byte, pub *PublicKey) (*Ciphertext, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	blockSize := pub.Size()
	if len(message) > blockSize-headroom {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLong, len(message), blockSize-headroom)
	}

	blocks, err := blockcodec.Split(message, blockSize)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, len(blocks)*blockSize)
	for _, block := range blocks {
		padded, err := blockcodec.Pad(block, blockSize)
		if err != nil {
			return nil, err
		}
		c := new(big.Int).Exp(padded, pub.E, pub.N)
		data = append(data, blockcodec.FixedBytes(c, blockSize)...)
	}
	return &Ciphertext{Data: data, Length: len(message)}, nil
}

// Decrypt reverses Encrypt. Every block is decrypted, unpadded and written
// as BlockSize-1 bytes; the result is the last ct.Length bytes of their
// concatenation. The recorded length is trusted: if it is wrong the output
// is silently wrong. A length beyond the decrypted data returns all of it.
func (e *Engine) Decrypt(ct *Ciphertext, priv *PrivateKey) ([]byte, error) {
	if ct == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrInvalidCiphertext)
	}
	if ct.Length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidCiphertext, ct.Length)
	}
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	blockSize := priv.Size()

	blocks, err := blockcodec.Split(ct.Data, blockSize)
	if err != nil {
		return nil, err
	}

	message := make([]byte, 0, len(blocks)*(blockSize-1))
	for _, block := range blocks {
		padded := new(big.Int).Exp(block, priv.D, priv.N)
		m := blockcodec.Unpad(padded, blockSize)
		message = append(message, blockcodec.FixedBytes(m, blockSize-1)...)
	}

	if ct.Length < len(message) {
		message = message[len(message)-ct.Length:]
	}
	return message, nil
}
