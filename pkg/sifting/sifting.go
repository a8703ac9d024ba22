// Package sifting implements the public-discussion half of BB84: basis
// reconciliation over a completed photon trace and error-rate estimation
// over the sifted key.
//
// Sifting is a pure function of the trace. Alice and Bob announce their
// basis choices; events where the bases agree contribute one bit each to the
// sifted keys, in photon order. Eve's partial key collects her measurement
// outcomes at the matched indices she intercepted, which is exactly the
// information an intercept-resend attacker holds about the negotiated key.
package sifting

import (
	"github.com/qlabs-sim/photonica/pkg/quantum"
)

// Result holds the outcome of basis reconciliation.
//
// MatchedIndices, AliceKey, and BobKey always have equal length; EveKey is at
// most that long. All sequences preserve photon order.
type Result struct {
	MatchedIndices []int
	AliceKey       []quantum.Bit
	BobKey         []quantum.Bit
	EveKey         []quantum.Bit
}

// SiftedLen returns the sifted key length.
func (r Result) SiftedLen() int {
	return len(r.AliceKey)
}

// Sift performs basis reconciliation over a trace.
//
// A single pass; no randomness. The all-mismatched case returns a Result
// with empty keys, which is valid: an empty sifted key simply means the run
// produced no usable key material. The only error case is a structurally
// invalid trace.
func Sift(trace quantum.Trace) (Result, error) {
	if err := trace.Validate(); err != nil {
		return Result{}, err
	}

	r := Result{}
	for _, e := range trace {
		if !e.BasesMatch() {
			continue
		}
		r.MatchedIndices = append(r.MatchedIndices, e.Index)
		r.AliceKey = append(r.AliceKey, e.AliceBit)
		r.BobKey = append(r.BobKey, e.BobBit)
		if e.EveIntercepted {
			r.EveKey = append(r.EveKey, e.EveBit)
		}
	}
	return r, nil
}
