// Package easyrsa implements textbook RSA from first principles: Miller-Rabin
// prime generation, key derivation with the extended Euclidean algorithm and
// a block cipher mode with a small ad-hoc padding marker.
//
// # Usage
//
//	engine, err := easyrsa.New(easyrsa.Config{KeySize: 1024})
//	if err != nil {
//	    return err
//	}
//	pub, priv, err := engine.GenerateKeys(ctx)
//	if err != nil {
//	    return err
//	}
//	ct, err := engine.Encrypt([]byte("Hello, World!"), pub)
//	if err != nil {
//	    return err
//	}
//	msg, err := engine.Decrypt(ct, priv)
//
// # Limitations
//
// The padding is not PKCS #1 v1.5 or OAEP. It offers no integrity,
// no protection against chosen-ciphertext attacks and no constant-time
// arithmetic. Decryption cannot tell padding zero bytes from leading zero
// bytes of the plaintext, so [Ciphertext] carries the plaintext length and
// [Engine.Decrypt] trusts it: a lost or altered length silently yields
// wrong output.
//
// The marker position is derived from the numeric value of the block. For
// messages longer than about half the block size the marker bytes fall
// inside the message bytes and decryption does not reproduce the input;
// see [SafeMessageLen].
//
// Messages longer than [PublicKey.MaxMessageLen] are rejected with
// [ErrMessageTooLong]; callers chunk longer data themselves.
package easyrsa
