package blockcodec

import (
	"fmt"
	"math/big"
)

const markerBits = 16

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Split cuts data into consecutive blockSize-byte chunks and reads each as a
// big-endian unsigned integer. The last chunk may be shorter.
func Split(data []byte, blockSize int) ([]*big.Int, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockSize)
	}
	blocks := make([]*big.Int, 0, (len(data)+blockSize-1)/blockSize)
	for i := 0; i < len(data); i += blockSize {
		end := min(i+blockSize, len(data))
		blocks = append(blocks, new(big.Int).SetBytes(data[i:end]))
	}
	return blocks, nil
}

// SignificantLen returns the minimal big-endian byte length of v. Zero
// occupies one byte.
func SignificantLen(v *big.Int) int {
	return max((v.BitLen()+7)/8, 1)
}

// Pad embeds block under the two-byte marker so the result spans blockSize
// bytes. SignificantLen(block) must not exceed blockSize-2.
func Pad(block *big.Int, blockSize int) (*big.Int, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockSize)
	}
	size := SignificantLen(block)
	if size > blockSize-2 {
		return nil, fmt.Errorf("%w: %d byte value, %d byte block", ErrBlockTooLarge, size, blockSize)
	}
	padding := uint(blockSize-size-2) * 8

	high := new(big.Int).Lsh(one, padding+markerBits)
	low := new(big.Int).Lsh(two, padding)

	padded := high.Add(high, low)
	return padded.Add(padded, block), nil
}

// Unpad clears the top 16 bits of a blockSize-byte padded block.
func Unpad(padded *big.Int, blockSize int) *big.Int {
	if blockSize*8 <= markerBits {
		return new(big.Int)
	}
	mask := new(big.Int).Lsh(one, uint(blockSize*8-markerBits))
	mask.Sub(mask, one)
	return mask.And(padded, mask)
}

// FixedBytes writes v big-endian into exactly size bytes, keeping the low
// size bytes when v is wider.
func FixedBytes(v *big.Int, size int) []byte {
	out := make([]byte, size)
	raw := v.Bytes()
	if len(raw) > size {
		raw = raw[len(raw)-size:]
	}
	copy(out[size-len(raw):], raw)
	return out
}
