// kdf.go implements key derivation using SHAKE-256 (SHA-3 XOF).
//
// SHAKE-256 (FIPS 202) is an extendable-output function based on the Keccak
// sponge construction. It provides 256-bit collision and preimage resistance
// and, unlike SHA-2, no length-extension structure.
//
// The derivation construction is:
//
//	key = SHAKE-256(
//	    domain_length || domain ||
//	    bit_length    || packed_bits,
//	    output_length
//	)
//
// Length prefixes are 4-byte big-endian integers to ensure unambiguous
// parsing. The bit length (not byte length) of the input is bound into the
// hash so that bit sequences that pack to identical padded bytes, such as
// [1,0,1] and [1,0,1,0], derive unrelated keys.
package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/quantum"
)

// DeriveKey maps a sifted key bit sequence to a fixed-size encryption key.
//
// The mapping is deterministic: the same bits always derive the same key,
// which is what makes encrypt-then-decrypt round trips work across
// stateless requests. An empty bit sequence fails with ErrInsufficientEntropy
// before any cipher work.
func DeriveKey(bits []quantum.Bit) ([]byte, error) {
	return DeriveKeyWithDomain(constants.DomainSeparatorKey, bits, constants.DerivedKeySize)
}

// DeriveKeyWithDomain derives outputLen bytes from a bit sequence under an
// explicit domain separation string.
//
// Parameters:
//   - domain: Domain separation string (prevents cross-protocol attacks)
//   - bits: Key material; must be non-empty
//   - outputLen: Desired output length in bytes
//
// Returns:
//   - derived: The derived key material
//   - error: Non-nil if the bit sequence is empty or too long, or outputLen invalid
func DeriveKeyWithDomain(domain string, bits []quantum.Bit, outputLen int) ([]byte, error) {
	if len(bits) == 0 {
		return nil, qerrors.NewCryptoError("DeriveKey", qerrors.ErrInsufficientEntropy)
	}
	if len(bits) > constants.MaxKeyBits {
		return nil, qerrors.NewCryptoError("DeriveKey", qerrors.ErrKeyTooLong)
	}
	if outputLen <= 0 || outputLen > 1<<20 {
		return nil, qerrors.NewCryptoError("DeriveKey", qerrors.ErrInvalidKeySize)
	}

	h := sha3.NewShake256()
	lenBuf := make([]byte, 4)

	// Write domain separator with length prefix
	domainBytes := []byte(domain)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(domainBytes)))
	h.Write(lenBuf)
	h.Write(domainBytes)

	// Write packed bits, prefixed by the bit count
	binary.BigEndian.PutUint32(lenBuf, uint32(len(bits)))
	h.Write(lenBuf)
	h.Write(PackBits(bits))

	// Extract output
	output := make([]byte, outputLen)
	_, _ = h.Read(output) // SHAKE256.Read never fails

	return output, nil
}
