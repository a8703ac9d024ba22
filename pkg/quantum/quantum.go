// Package quantum implements the BB84 photon simulation: the data model for
// individual photon events, abstracted randomness sources, and the engine
// that runs the intercept-resend protocol photon by photon.
package quantum

import (
	"fmt"

	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
)

// Basis is a photon polarization basis. BB84 uses exactly two conjugate
// bases; bases compare by equality only.
type Basis uint8

const (
	// Rectilinear is the 0°/90° polarization basis.
	Rectilinear Basis = iota
	// Diagonal is the 45°/135° polarization basis.
	Diagonal
)

// String returns the basis name.
func (b Basis) String() string {
	switch b {
	case Rectilinear:
		return "rectilinear"
	case Diagonal:
		return "diagonal"
	default:
		return fmt.Sprintf("Basis(%d)", uint8(b))
	}
}

// Symbol returns the polarization symbol used by presentation layers.
func (b Basis) Symbol() string {
	if b == Diagonal {
		return constants.SymbolDiagonal
	}
	return constants.SymbolRectilinear
}

// Valid reports whether b is one of the two BB84 bases.
func (b Basis) Valid() bool {
	return b == Rectilinear || b == Diagonal
}

// Bit is a single logical bit value.
type Bit uint8

const (
	// Zero is the bit value 0.
	Zero Bit = 0
	// One is the bit value 1.
	One Bit = 1
)

// String returns "0" or "1".
func (b Bit) String() string {
	if b == One {
		return "1"
	}
	return "0"
}

// Int returns the bit as an int.
func (b Bit) Int() int {
	return int(b)
}

// Valid reports whether b is 0 or 1.
func (b Bit) Valid() bool {
	return b == Zero || b == One
}

// Flip returns the opposite bit value.
func (b Bit) Flip() Bit {
	return b ^ 1
}

// PhotonEvent records the complete history of one simulated photon. Events
// are immutable once appended to a trace.
//
// EveBasis and EveBit are meaningful only when EveIntercepted is true; the
// engine leaves them zero otherwise and Validate enforces the pairing. BobBit
// is always present: it is Bob's actual measurement outcome, taken from
// Alice's original photon when the transit was undisturbed or from Eve's
// resent photon when it was not.
type PhotonEvent struct {
	Index      int
	AliceBit   Bit
	AliceBasis Basis

	EveIntercepted bool
	EveBasis       Basis
	EveBit         Bit

	BobBasis Basis
	BobBit   Bit
}

// BasesMatch reports whether Alice's and Bob's basis choices agree. Matching
// events survive sifting; interception status plays no part.
func (e PhotonEvent) BasesMatch() bool {
	return e.AliceBasis == e.BobBasis
}

// Validate checks the event's structural invariants.
func (e PhotonEvent) Validate() error {
	if e.Index < 0 {
		return fmt.Errorf("photon %d: negative index", e.Index)
	}
	if !e.AliceBit.Valid() || !e.AliceBasis.Valid() {
		return fmt.Errorf("photon %d: invalid alice fields", e.Index)
	}
	if !e.BobBit.Valid() || !e.BobBasis.Valid() {
		return fmt.Errorf("photon %d: invalid bob fields", e.Index)
	}
	if e.EveIntercepted {
		if !e.EveBit.Valid() || !e.EveBasis.Valid() {
			return fmt.Errorf("photon %d: invalid eve fields", e.Index)
		}
	} else if e.EveBasis != 0 || e.EveBit != 0 {
		return fmt.Errorf("photon %d: eve fields set without interception", e.Index)
	}
	return nil
}

// Trace is the ordered record of one simulation run, one event per photon.
// Insertion order is the canonical photon order and is never reordered.
//
// A trace is owned by the run that produced it; the engine keeps no reference
// after returning it.
type Trace []PhotonEvent

// Len returns the number of photon events.
func (t Trace) Len() int {
	return len(t)
}

// Validate checks that indices are contiguous and ascending from zero and
// that every event satisfies its own invariants.
func (t Trace) Validate() error {
	for i, e := range t {
		if e.Index != i {
			return fmt.Errorf("%w: event %d has index %d", qerrors.ErrInvalidTrace, i, e.Index)
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: %v", qerrors.ErrInvalidTrace, err)
		}
	}
	return nil
}

// Intercepted returns the number of events Eve intercepted.
func (t Trace) Intercepted() int {
	n := 0
	for _, e := range t {
		if e.EveIntercepted {
			n++
		}
	}
	return n
}
