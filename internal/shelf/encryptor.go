package shelf

import "io"

// Encryptor handles encryption of inventory snapshots for export.
// Encryption needs only the public key; decryption requires unlocking the
// private key with a passphrase first.
type Encryptor interface {
	// Setup generates and stores a new key pair, protecting the private key
	// with the given passphrase.
	Setup(passphrase string) error

	// Encrypt reads plaintext from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key with the passphrase and returns a
	// context that can decrypt data.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether a key pair exists.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key.
type DecryptionContext interface {
	// Decrypt reads ciphertext from r and writes plaintext to w.
	Decrypt(r io.Reader, w io.Writer) error
}
