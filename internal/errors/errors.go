// Package errors defines custom error types for the Photonica BB84 simulator.
// These errors provide detailed information for debugging while maintaining
// security by not leaking key material in error messages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for simulation operations
var (
	// ErrInvalidPhotonCount indicates a non-positive photon count
	ErrInvalidPhotonCount = errors.New("quantum: photon count must be positive")

	// ErrPhotonCountTooLarge indicates the photon count exceeds the run limit
	ErrPhotonCountTooLarge = errors.New("quantum: photon count exceeds maximum")

	// ErrInvalidInterceptProbability indicates a probability outside [0,1]
	ErrInvalidInterceptProbability = errors.New("quantum: intercept probability must be in [0,1]")

	// ErrInvalidTrace indicates a trace violates its structural invariants
	ErrInvalidTrace = errors.New("sifting: invalid trace")
)

// Sentinel errors for key derivation
var (
	// ErrInsufficientEntropy indicates empty key material was offered to derivation
	ErrInsufficientEntropy = errors.New("kdf: insufficient entropy, key bits empty")

	// ErrKeyTooLong indicates the key bit sequence exceeds the derivation limit
	ErrKeyTooLong = errors.New("kdf: key bit sequence too long")

	// ErrInvalidKeySize indicates a key has an incorrect size
	ErrInvalidKeySize = errors.New("kdf: invalid key size")
)

// Sentinel errors for AEAD operations
var (
	// ErrAuthenticationFailed indicates AEAD authentication failed. It covers
	// both tampered ciphertext and wrong-key decryption uniformly so callers
	// cannot be used as a distinguishing oracle.
	ErrAuthenticationFailed = errors.New("aead: authentication failed")

	// ErrInvalidNonce indicates the nonce size is incorrect
	ErrInvalidNonce = errors.New("aead: invalid nonce size")

	// ErrCiphertextTooShort indicates ciphertext is too short to be valid
	ErrCiphertextTooShort = errors.New("aead: ciphertext too short")

	// ErrUnsupportedCipherSuite indicates an unsupported cipher suite
	ErrUnsupportedCipherSuite = errors.New("aead: unsupported cipher suite")
)

// Sentinel errors for boundary messages
var (
	// ErrInvalidMessage indicates a boundary message is malformed
	ErrInvalidMessage = errors.New("protocol: invalid message")

	// ErrInvalidKeyBit indicates a key bit outside {0,1}
	ErrInvalidKeyBit = errors.New("protocol: key bits must be 0 or 1")

	// ErrEmptyMessage indicates an empty plaintext was offered for encryption
	ErrEmptyMessage = errors.New("protocol: message is empty")

	// ErrMessageTooLarge indicates a plaintext exceeds the maximum size
	ErrMessageTooLarge = errors.New("protocol: message too large")

	// ErrInvalidEnvelope indicates a cipher envelope is malformed
	ErrInvalidEnvelope = errors.New("protocol: invalid envelope")
)

// SimulationError wraps a simulation error with the operation that failed
type SimulationError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SimulationError) Unwrap() error {
	return e.Err
}

// NewSimulationError creates a new SimulationError
func NewSimulationError(op string, err error) *SimulationError {
	return &SimulationError{Op: op, Err: err}
}

// CryptoError wraps a cryptographic error with additional context
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
