package keystore

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/coinbase/easyrsa-go/pkg/easyrsa"
)

const separator = ","

// Marshal encodes (n, x) as "n,x" in decimal.
func Marshal(n, x *big.Int) []byte {
	return []byte(n.String() + separator + x.String())
}

// Unmarshal parses "n,x". Surrounding whitespace around either number is
// ignored.
func Unmarshal(data []byte) (n, x *big.Int, err error) {
	parts := strings.Split(string(data), separator)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: want 2 comma separated integers, got %d fields", ErrMalformedKey, len(parts))
	}
	values := make([]*big.Int, 2)
	for i, part := range parts {
		v, ok := new(big.Int).SetString(strings.TrimSpace(part), 10)
		if !ok {
			return nil, nil, fmt.Errorf("%w: field %d is not a decimal integer", ErrMalformedKey, i+1)
		}
		values[i] = v
	}
	return values[0], values[1], nil
}

// MarshalPublicKey encodes pub as "n,e".
func MarshalPublicKey(pub *easyrsa.PublicKey) ([]byte, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	return Marshal(pub.N, pub.E), nil
}

// MarshalPrivateKey encodes priv as "n,d".
func MarshalPrivateKey(priv *easyrsa.PrivateKey) ([]byte, error) {
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	return Marshal(priv.N, priv.D), nil
}

// UnmarshalPublicKey parses "n,e".
func UnmarshalPublicKey(data []byte) (*easyrsa.PublicKey, error) {
	n, e, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	pub := &easyrsa.PublicKey{N: n, E: e}
	if err := pub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}
	return pub, nil
}

// UnmarshalPrivateKey parses "n,d".
func UnmarshalPrivateKey(data []byte) (*easyrsa.PrivateKey, error) {
	n, d, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	priv := &easyrsa.PrivateKey{N: n, D: d}
	if err := priv.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}
	return priv, nil
}

// SavePublicKey writes pub to path, readable by everyone.
func SavePublicKey(path string, pub *easyrsa.PublicKey) error {
	data, err := MarshalPublicKey(pub)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write public key: %w", err)
	}
	return nil
}

// SavePrivateKey writes priv to path, readable only by the owner.
func SavePrivateKey(path string, priv *easyrsa.PrivateKey) error {
	data, err := MarshalPrivateKey(priv)
	if err != nil {
		return err
	}
	defer easyrsa.ZeroizeBytes(data)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write private key: %w", err)
	}
	return nil
}

// LoadPublicKey reads a key written by SavePublicKey.
func LoadPublicKey(path string) (*easyrsa.PublicKey, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller chooses the key file
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return UnmarshalPublicKey(data)
}

// LoadPrivateKey reads a key written by SavePrivateKey.
func LoadPrivateKey(path string) (*easyrsa.PrivateKey, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller chooses the key file
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	defer easyrsa.ZeroizeBytes(data)
	return UnmarshalPrivateKey(data)
}
