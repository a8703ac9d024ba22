// qber.go implements quantum bit error rate estimation.
//
// QBER is computed over the entire sifted key. Real QKD deployments disclose
// and discard a random subsample for error estimation; this simulator instead
// treats the whole sifted key as consumed once its QBER is computed, so the
// estimate is a post-hoc diagnostic, not a side-channel-free protocol step.
package sifting

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/qlabs-sim/photonica/internal/constants"
)

// QBER returns the quantum bit error rate of a sifting result: the fraction
// of sifted positions where Alice's and Bob's bits disagree. An empty sifted
// key yields 0 rather than an error.
func QBER(r Result) float64 {
	if len(r.AliceKey) == 0 {
		return 0
	}
	return float64(Mismatches(r)) / float64(len(r.AliceKey))
}

// Mismatches counts the sifted positions where Alice's and Bob's bits
// disagree.
func Mismatches(r Result) int {
	n := 0
	for i := range r.AliceKey {
		if r.AliceKey[i] != r.BobKey[i] {
			n++
		}
	}
	return n
}

// Analysis summarizes the error statistics of a sifting result.
type Analysis struct {
	// SiftedLen is the number of basis-matched bits.
	SiftedLen int

	// Mismatches is the number of disagreeing sifted positions.
	Mismatches int

	// QBER is the point estimate Mismatches/SiftedLen (0 when empty).
	QBER float64

	// Lower and Upper bound the true error rate at 95% confidence
	// (Wilson score interval). Both are 0 when the sifted key is empty.
	Lower, Upper float64

	// EveSuspected is true when the lower confidence bound clears the
	// intercept-resend detection threshold.
	EveSuspected bool
}

// z975 is the 97.5th percentile of the standard normal distribution, giving
// a two-sided 95% interval.
const z975 = 1.959963984540054

// Analyze computes error statistics over a sifting result.
//
// The Wilson interval is used instead of the normal approximation because
// sifted keys are short (tens to hundreds of bits) and observed error rates
// sit near 0, exactly where the normal approximation collapses.
func Analyze(r Result) Analysis {
	a := Analysis{
		SiftedLen:  r.SiftedLen(),
		Mismatches: Mismatches(r),
	}
	if a.SiftedLen == 0 {
		return a
	}

	errors := make([]float64, a.SiftedLen)
	for i := range r.AliceKey {
		if r.AliceKey[i] != r.BobKey[i] {
			errors[i] = 1
		}
	}
	a.QBER = stat.Mean(errors, nil)
	a.Lower, a.Upper = wilson(a.QBER, float64(a.SiftedLen), z975)
	a.EveSuspected = a.Lower > constants.EveDetectionThreshold
	return a
}

// wilson returns the Wilson score interval for an observed proportion p over
// n trials at critical value z.
func wilson(p, n, z float64) (lo, hi float64) {
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	margin := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	lo = center - margin
	hi = center + margin
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}
