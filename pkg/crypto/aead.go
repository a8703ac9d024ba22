// aead.go implements authenticated encryption of messages under derived keys.
//
// Two AEAD algorithms are supported:
//   - AES-256-GCM: FIPS-approved, hardware-accelerated on modern CPUs
//   - ChaCha20-Poly1305: High performance without hardware support
//
// Both use 96-bit nonces and 128-bit authentication tags.
//
// Nonce discipline: every Encrypt call draws a fresh random nonce from the
// OS CSPRNG. Encryption requests are stateless and independent, so a counter
// could repeat across processes; random 96-bit nonces make reuse a
// 2^-48-per-pair birthday event, negligible at this system's message volume.
//
// CRITICAL: Decryption reports a single authentication failure for both
// tampered ciphertext and a wrong key. Distinguishing the two would hand an
// attacker a key-confirmation oracle.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
)

// Envelope carries one encrypted message: cipher suite, nonce, ciphertext,
// and authentication tag, each in its own field. It contains everything a
// holder of the key needs to decrypt; it persists no other state.
type Envelope struct {
	Suite      constants.CipherSuite
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Validate checks the envelope's structural invariants against its suite.
func (e Envelope) Validate() error {
	if !e.Suite.IsSupported() {
		return qerrors.ErrUnsupportedCipherSuite
	}
	if len(e.Nonce) != constants.AEADNonceSize {
		return qerrors.ErrInvalidNonce
	}
	if len(e.Tag) != constants.AEADTagSize {
		return qerrors.ErrCiphertextTooShort
	}
	return nil
}

// Cipher encrypts and decrypts messages under a single derived key. It holds
// no per-call state: Encrypt and Decrypt are reentrant and safe for
// concurrent use.
type Cipher struct {
	aead  cipher.AEAD
	suite constants.CipherSuite
}

// NewCipher creates a cipher for the given suite and 32-byte key.
func NewCipher(suite constants.CipherSuite, key []byte) (*Cipher, error) {
	if len(key) != constants.AEADKeySize {
		return nil, qerrors.NewCryptoError("NewCipher", qerrors.ErrInvalidKeySize)
	}

	var aead cipher.AEAD
	var err error

	switch suite {
	case constants.CipherSuiteAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, qerrors.NewCryptoError("NewCipher", err)
		}
		aead, err = cipher.NewGCM(block)
		if err != nil {
			return nil, qerrors.NewCryptoError("NewCipher", err)
		}

	case constants.CipherSuiteChaCha20Poly1305:
		aead, err = chacha20poly1305.New(key)
		if err != nil {
			return nil, qerrors.NewCryptoError("NewCipher", err)
		}

	default:
		return nil, qerrors.ErrUnsupportedCipherSuite
	}

	return &Cipher{aead: aead, suite: suite}, nil
}

// Suite returns the cipher suite identifier.
func (c *Cipher) Suite() constants.CipherSuite {
	return c.suite
}

// Encrypt seals plaintext under a fresh random nonce.
//
// The sealed output is split into its ciphertext and tag components so the
// envelope can carry them separately on the wire.
func (c *Cipher) Encrypt(plaintext []byte) (Envelope, error) {
	nonce, err := SecureRandomBytes(constants.AEADNonceSize)
	if err != nil {
		return Envelope{}, err
	}

	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - constants.AEADTagSize

	return Envelope{
		Suite:      c.suite,
		Nonce:      nonce,
		Ciphertext: sealed[:split],
		Tag:        sealed[split:],
	}, nil
}

// Decrypt opens an envelope. It is a pure function of (envelope, key).
//
// Any verification failure, whether from a tampered envelope or a key that
// does not match the one used to encrypt, surfaces as ErrAuthenticationFailed.
func (c *Cipher) Decrypt(env Envelope) ([]byte, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if env.Suite != c.suite {
		return nil, qerrors.ErrUnsupportedCipherSuite
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := c.aead.Open(nil, env.Nonce, sealed, nil)
	if err != nil {
		return nil, qerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}
