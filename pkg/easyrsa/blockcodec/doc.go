// Package blockcodec converts byte buffers to the big-integer blocks the RSA
// engine exponentiates and applies the easyrsa padding marker.
//
// # Padded block layout
//
// For a block size of k bytes and a block whose value needs L bytes, the
// padded value is
//
//	(1 << (8P+16)) + (2 << 8P) + block,   P = k - L - 2
//
// that is, a 0x01 byte and a 0x02 byte placed above the value with zero
// bytes between them and the value. [Unpad] clears only the top 16 bits of a
// k-byte block, so the zero fill that [Pad] inserted stays in the result and
// cannot be told apart from leading zero bytes of the original data. The
// engine recovers exact plaintext by carrying the original length next to
// the ciphertext.
//
// L is computed from the value, not from the width of the chunk it was read
// from. Chunks of equal width can therefore receive different padding
// lengths when they start with zero bytes.
//
// This is not PKCS #1 or OAEP padding and gives no integrity guarantee.
package blockcodec
