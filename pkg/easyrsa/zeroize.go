package easyrsa

import "runtime"

// ZeroizeBytes overwrites buf with zeros, for example a decrypted message the
// caller is done with. runtime.KeepAlive keeps the stores from being
// eliminated (golang/go#33325). Copies made elsewhere are not reached.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
