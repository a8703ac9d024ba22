package quantum_test

import (
	"context"
	"testing"

	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/metrics"
	"github.com/qlabs-sim/photonica/pkg/quantum"
)

func seededEngine(seed uint64) *quantum.Engine {
	return quantum.NewEngine(quantum.EngineOpts{Source: quantum.NewSeededSource(seed)})
}

// --- Parameter Validation Tests ---

func TestRunRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name    string
		photons int
		eveProb float64
		want    error
	}{
		{"zero photons", 0, 0.5, qerrors.ErrInvalidPhotonCount},
		{"negative photons", -3, 0.5, qerrors.ErrInvalidPhotonCount},
		{"too many photons", 1 << 23, 0.5, qerrors.ErrPhotonCountTooLarge},
		{"negative probability", 10, -0.1, qerrors.ErrInvalidInterceptProbability},
		{"probability above one", 10, 1.1, qerrors.ErrInvalidInterceptProbability},
	}
	engine := quantum.NewEngine(quantum.EngineOpts{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace, err := engine.Run(context.Background(), tt.photons, tt.eveProb)
			if !qerrors.Is(err, tt.want) {
				t.Errorf("Run(%d, %v) error = %v, want %v", tt.photons, tt.eveProb, err, tt.want)
			}
			if trace != nil {
				t.Error("no partial trace should be produced on validation failure")
			}
		})
	}
}

// --- Trace Shape Tests ---

func TestRunProducesExactTrace(t *testing.T) {
	for _, n := range []int{1, 2, 10, 257, 1000} {
		trace, err := seededEngine(uint64(n)).Run(context.Background(), n, 0.3)
		if err != nil {
			t.Fatalf("Run(%d) failed: %v", n, err)
		}
		if trace.Len() != n {
			t.Fatalf("Run(%d) produced %d events", n, trace.Len())
		}
		if err := trace.Validate(); err != nil {
			t.Fatalf("Run(%d) trace invalid: %v", n, err)
		}
	}
}

func TestEvePairingInvariant(t *testing.T) {
	trace, err := seededEngine(5).Run(context.Background(), 500, 0.5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, e := range trace {
		if !e.EveIntercepted && (e.EveBasis != 0 || e.EveBit != 0) {
			t.Fatalf("photon %d: eve fields set without interception", e.Index)
		}
	}
}

// --- Interception Model Tests ---

func TestNoEavesdropper(t *testing.T) {
	trace, err := seededEngine(9).Run(context.Background(), 2000, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, e := range trace {
		if e.EveIntercepted {
			t.Fatalf("photon %d intercepted with probability 0", e.Index)
		}
		// Without Eve there is no noise source: matched bases agree exactly.
		if e.BasesMatch() && e.AliceBit != e.BobBit {
			t.Fatalf("photon %d: matched bases but bits disagree without Eve", e.Index)
		}
	}
}

func TestFullInterception(t *testing.T) {
	trace, err := seededEngine(13).Run(context.Background(), 2000, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, e := range trace {
		if !e.EveIntercepted {
			t.Fatalf("photon %d not intercepted with probability 1", e.Index)
		}
		// Matching bases read the true bit exactly.
		if e.EveBasis == e.AliceBasis && e.EveBit != e.AliceBit {
			t.Fatalf("photon %d: eve matched alice's basis but read %v", e.Index, e.EveBit)
		}
		// Bob measures Eve's resent photon, not Alice's original.
		if e.BobBasis == e.EveBasis && e.BobBit != e.EveBit {
			t.Fatalf("photon %d: bob matched eve's basis but read %v", e.Index, e.BobBit)
		}
	}
}

// TestInterceptionInducesQBER checks the statistical signature of the
// intercept-resend attack: Eve guesses the wrong basis half the time and
// disturbs half of those photons, so ~25% of the sifted key disagrees.
func TestInterceptionInducesQBER(t *testing.T) {
	trace, err := seededEngine(17).Run(context.Background(), 4000, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	sifted, mismatched := 0, 0
	for _, e := range trace {
		if !e.BasesMatch() {
			continue
		}
		sifted++
		if e.AliceBit != e.BobBit {
			mismatched++
		}
	}
	if sifted < 1500 {
		t.Fatalf("suspiciously few sifted bits: %d of 4000", sifted)
	}
	qber := float64(mismatched) / float64(sifted)
	if qber < 0.15 || qber > 0.35 {
		t.Errorf("full-interception QBER = %.4f, want within [0.15, 0.35]", qber)
	}
}

// --- Determinism Tests ---

func TestSeededRunsReproduce(t *testing.T) {
	ctx := context.Background()
	a, err := seededEngine(99).Run(ctx, 300, 0.4)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := seededEngine(99).Run(ctx, 300, 0.4)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded runs diverge at photon %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// --- Stream Tests ---

func TestStreamMatchesRun(t *testing.T) {
	ctx := context.Background()
	trace, err := seededEngine(23).Run(ctx, 50, 0.5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stream, err := seededEngine(23).Events(ctx, 50, 0.5)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	for i := 0; ; i++ {
		ev, ok := stream.Next()
		if !ok {
			if i != 50 {
				t.Fatalf("stream ended after %d events", i)
			}
			break
		}
		if ev != trace[i] {
			t.Fatalf("stream event %d = %+v, want %+v", i, ev, trace[i])
		}
	}
}

func TestStreamExhaustion(t *testing.T) {
	stream, err := seededEngine(1).Events(context.Background(), 3, 0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if stream.Len() != 3 || stream.Remaining() != 3 {
		t.Fatalf("fresh stream Len=%d Remaining=%d", stream.Len(), stream.Remaining())
	}
	for i := 0; i < 3; i++ {
		if _, ok := stream.Next(); !ok {
			t.Fatalf("stream exhausted early at %d", i)
		}
	}
	if _, ok := stream.Next(); ok {
		t.Error("exhausted stream produced an event")
	}
	if stream.Remaining() != 0 {
		t.Errorf("exhausted stream Remaining() = %d", stream.Remaining())
	}
}

func TestStreamValidatesUpFront(t *testing.T) {
	engine := quantum.NewEngine(quantum.EngineOpts{})
	if _, err := engine.Events(context.Background(), 0, 0.5); !qerrors.Is(err, qerrors.ErrInvalidPhotonCount) {
		t.Errorf("Events(0, 0.5) error = %v", err)
	}
}

// --- Observability Tests ---

func TestEngineRecordsStats(t *testing.T) {
	stats := metrics.NewSimStats()
	engine := quantum.NewEngine(quantum.EngineOpts{
		Source: quantum.NewSeededSource(31),
		Stats:  stats,
	})
	ctx := context.Background()

	if _, err := engine.Run(ctx, 100, 1); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := engine.Run(ctx, -1, 0.5); err == nil {
		t.Fatal("expected validation failure")
	}

	snap := stats.Snapshot()
	if snap.RunsStarted != 1 || snap.RunsCompleted != 1 || snap.RunsRejected != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.PhotonsSimulated != 100 || snap.PhotonsIntercepted != 100 {
		t.Errorf("unexpected photon counters: %+v", snap)
	}
}
