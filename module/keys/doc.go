// Package keys generates node key material and stores it in key files.
//
// A key file is a TOML document holding the algorithm, the public key and
// the private key. When the key is protected by a passphrase, the private
// key is an ASCII-armored age file encrypted with an scrypt recipient;
// otherwise it is stored as plain hex. Passphrases are obtained through a
// PasswordSource.
package keys
