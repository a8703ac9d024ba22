// Package constants defines simulation parameters and cryptographic constants
// for the Photonica BB84 simulator.
//
// The symmetric layer targets 256-bit keys throughout: derived keys feed
// AES-256-GCM or ChaCha20-Poly1305 directly.
package constants

// Simulation parameters
const (
	// DefaultPhotonCount is the photon count used when a run request does
	// not specify one.
	DefaultPhotonCount = 10

	// DefaultInterceptProbability is the eavesdropper interception
	// probability used when a run request does not specify one.
	DefaultInterceptProbability = 0.3

	// MaxPhotonCount bounds a single simulation run. Each photon produces
	// one trace event, so this also bounds trace memory.
	MaxPhotonCount = 1 << 22

	// EveDetectionThreshold is the QBER above which an intercept-resend
	// attack is suspected. Full interception induces ~0.25; half of that
	// leaves comfortable margin over statistical noise for keys of a few
	// hundred bits.
	EveDetectionThreshold = 0.125
)

// Key Derivation Parameters (SHAKE-256)
const (
	// DerivedKeySize is the size of keys produced by derivation in bytes.
	DerivedKeySize = 32

	// DomainSeparatorKey is used when deriving encryption keys from
	// sifted key bits.
	DomainSeparatorKey = "Photonica-v1-SiftedKey"
)

// Symmetric Encryption Parameters
const (
	// AEADKeySize is the key size for both supported cipher suites in bytes.
	AEADKeySize = 32

	// AEADNonceSize is the nonce size for both supported suites in bytes
	// (96 bits).
	AEADNonceSize = 12

	// AEADTagSize is the authentication tag size in bytes (128 bits).
	AEADTagSize = 16
)

// Message Size Limits
const (
	// MaxMessageSize is the maximum plaintext size accepted by the
	// encryption boundary.
	MaxMessageSize = 1 << 20

	// MaxKeyBits is the maximum number of key bits accepted by derivation.
	// Sifted keys cannot exceed the photon count, so this tracks
	// MaxPhotonCount.
	MaxKeyBits = MaxPhotonCount
)

// Basis display symbols, matching the presentation layer's polarization
// notation: rectilinear at 0°, diagonal at 45°.
const (
	SymbolRectilinear = "+ (0°)"
	SymbolDiagonal    = "× (45°)"
)

// CipherSuite identifiers
type CipherSuite uint16

const (
	// CipherSuiteAES256GCM uses AES-256-GCM for symmetric encryption.
	CipherSuiteAES256GCM CipherSuite = 0x0001

	// CipherSuiteChaCha20Poly1305 uses ChaCha20-Poly1305 for symmetric encryption.
	CipherSuiteChaCha20Poly1305 CipherSuite = 0x0002
)

// String returns a human-readable name for the cipher suite.
func (cs CipherSuite) String() string {
	switch cs {
	case CipherSuiteAES256GCM:
		return "AES-256-GCM"
	case CipherSuiteChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return "Unknown"
	}
}

// IsSupported returns true if the cipher suite is supported.
func (cs CipherSuite) IsSupported() bool {
	return cs == CipherSuiteAES256GCM || cs == CipherSuiteChaCha20Poly1305
}

// ParseCipherSuite maps a suite name to its identifier. Unknown names map to
// zero, which IsSupported rejects.
func ParseCipherSuite(name string) CipherSuite {
	switch name {
	case "aes", "aes-256-gcm", "AES-256-GCM":
		return CipherSuiteAES256GCM
	case "chacha", "chacha20-poly1305", "ChaCha20-Poly1305":
		return CipherSuiteChaCha20Poly1305
	default:
		return 0
	}
}
