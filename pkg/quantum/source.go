// source.go implements the randomness capability backing a simulation run.
//
// Every random choice in a run — Alice's bits and bases, Eve's interception
// trials and bases, Bob's bases, and the coin flips that model basis-mismatch
// collapse — is drawn from a single BitSource, so a seeded source reproduces
// a run exactly.
package quantum

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// BitSource supplies the random choices for one simulation run. A source is
// owned by a single run and is not safe for concurrent use; each run gets its
// own instance.
type BitSource interface {
	// Bit returns a uniformly random bit.
	Bit() Bit

	// Basis returns a uniformly random basis.
	Basis() Basis

	// Intercept performs a Bernoulli trial with success probability p.
	// p outside [0,1] is clamped.
	Intercept(p float64) bool
}

// SecureSource draws from the operating system CSPRNG via crypto/rand. It
// buffers random words to avoid a syscall per bit.
type SecureSource struct {
	buf  uint64
	left int
}

// NewSource returns a CSPRNG-backed BitSource for production runs.
func NewSource() *SecureSource {
	return &SecureSource{}
}

func (s *SecureSource) word() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// CSPRNG failure is a critical system failure; refusing to
		// continue beats simulating with broken randomness.
		panic("quantum: failed to read from CSPRNG: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

func (s *SecureSource) bit() Bit {
	if s.left == 0 {
		s.buf = s.word()
		s.left = 64
	}
	b := Bit(s.buf & 1)
	s.buf >>= 1
	s.left--
	return b
}

// Bit returns a uniformly random bit.
func (s *SecureSource) Bit() Bit { return s.bit() }

// Basis returns a uniformly random basis.
func (s *SecureSource) Basis() Basis { return Basis(s.bit()) }

// Intercept performs a Bernoulli trial with success probability p.
func (s *SecureSource) Intercept(p float64) bool {
	return bernoulli(p, s.word)
}

// SeededSource is a deterministic BitSource backed by a PCG generator. Two
// sources created with the same seed produce identical draw sequences, which
// makes full runs reproducible for tests and seeded run requests.
type SeededSource struct {
	rng *mathrand.Rand
}

// NewSeededSource returns a deterministic BitSource seeded from a single
// uint64. The seed is expanded with splitmix64 so that nearby seeds yield
// uncorrelated streams.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{
		rng: mathrand.New(mathrand.NewPCG(splitmix64(seed), splitmix64(seed+1))),
	}
}

// Bit returns a uniformly random bit.
func (s *SeededSource) Bit() Bit { return Bit(s.rng.Uint64() & 1) }

// Basis returns a uniformly random basis.
func (s *SeededSource) Basis() Basis { return Basis(s.rng.Uint64() & 1) }

// Intercept performs a Bernoulli trial with success probability p.
func (s *SeededSource) Intercept(p float64) bool {
	return bernoulli(p, s.rng.Uint64)
}

// bernoulli compares a 53-bit uniform variate against p. The degenerate
// probabilities are handled exactly: 0 never succeeds, 1 always does.
func bernoulli(p float64, word func() uint64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	u := float64(word()>>11) / (1 << 53)
	return u < p
}

// splitmix64 is the standard seed-expansion mix (Vigna). It maps any uint64
// to a well-distributed state word.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
