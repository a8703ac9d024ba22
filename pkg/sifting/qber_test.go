package sifting_test

import (
	"math"
	"testing"

	"github.com/qlabs-sim/photonica/pkg/quantum"
	"github.com/qlabs-sim/photonica/pkg/sifting"
)

func bits(vals ...int) []quantum.Bit {
	out := make([]quantum.Bit, len(vals))
	for i, v := range vals {
		out[i] = quantum.Bit(v)
	}
	return out
}

func TestQBER(t *testing.T) {
	tests := []struct {
		name  string
		alice []quantum.Bit
		bob   []quantum.Bit
		want  float64
	}{
		{"no errors", bits(1, 0, 1, 1), bits(1, 0, 1, 1), 0},
		{"one of four", bits(1, 0, 1, 1), bits(1, 1, 1, 1), 0.25},
		{"all errors", bits(0, 0), bits(1, 1), 1},
		{"empty key", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sifting.Result{AliceKey: tt.alice, BobKey: tt.bob}
			if got := sifting.QBER(r); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("QBER = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := sifting.Analyze(sifting.Result{})
	if a.SiftedLen != 0 || a.QBER != 0 || a.Lower != 0 || a.Upper != 0 {
		t.Errorf("empty analysis should be all zeros: %+v", a)
	}
	if a.EveSuspected {
		t.Error("empty sifted key should not suggest an eavesdropper")
	}
}

func TestAnalyzeCleanKey(t *testing.T) {
	n := 400
	r := sifting.Result{
		AliceKey: make([]quantum.Bit, n),
		BobKey:   make([]quantum.Bit, n),
	}
	a := sifting.Analyze(r)
	if a.QBER != 0 || a.Mismatches != 0 {
		t.Errorf("clean key analysis: %+v", a)
	}
	if a.Lower > 1e-9 {
		t.Errorf("lower bound for zero errors = %v, want ~0", a.Lower)
	}
	// Even at zero observed errors the Wilson upper bound stays positive.
	if a.Upper <= 0 || a.Upper > 0.05 {
		t.Errorf("upper bound for 0/400 errors = %v", a.Upper)
	}
	if a.EveSuspected {
		t.Error("clean key should not suggest an eavesdropper")
	}
}

func TestAnalyzeInterceptedKey(t *testing.T) {
	// 100 of 400 bits flipped: the intercept-resend signature.
	n := 400
	alice := make([]quantum.Bit, n)
	bob := make([]quantum.Bit, n)
	for i := 0; i < 100; i++ {
		bob[i] = quantum.One
	}
	a := sifting.Analyze(sifting.Result{AliceKey: alice, BobKey: bob})

	if math.Abs(a.QBER-0.25) > 1e-12 {
		t.Errorf("QBER = %v, want 0.25", a.QBER)
	}
	if a.Lower >= a.QBER || a.Upper <= a.QBER {
		t.Errorf("interval [%v, %v] does not bracket %v", a.Lower, a.Upper, a.QBER)
	}
	if !a.EveSuspected {
		t.Error("25% QBER over 400 bits should suggest an eavesdropper")
	}
}

func TestAnalyzeShortKeyInconclusive(t *testing.T) {
	// One error in four bits: QBER 0.25, but far too little data for the
	// lower confidence bound to clear the detection threshold.
	a := sifting.Analyze(sifting.Result{
		AliceKey: bits(0, 0, 0, 0),
		BobKey:   bits(1, 0, 0, 0),
	})
	if a.EveSuspected {
		t.Error("four sifted bits should never be conclusive evidence")
	}
}
