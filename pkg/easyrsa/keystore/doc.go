// Package keystore persists easyrsa keys.
//
// The text format is the one the engine has always used: the modulus and
// the exponent as decimal integers joined by a comma, for example
//
//	3233,17
//
// [SavePublicKey], [SavePrivateKey] and their Load counterparts read and
// write that format to files. [SQLStore] keeps whole key pairs in a SQLite
// database under random UUIDs.
//
// Nothing here encrypts private keys at rest.
package keystore
