// engine.go implements the photon-by-photon BB84 simulation.
//
// Protocol model (intercept-resend attack):
//
//	Alice                    Eve                      Bob
//	  |                       |                        |
//	  | -- photon(bit,basis) ->|                       |
//	  |                       | measure in random basis|
//	  |                       | resend(eveBit,eveBasis)|
//	  |                       | ---------------------> |
//	  |                       |                        | measure in random basis
//
// Measurement rule: a measurement in the photon's own basis yields the
// photon's bit exactly; a measurement in the wrong basis yields a fair coin
// flip. No other noise source is modeled, so with no eavesdropper every
// basis-matched event agrees and the sifted QBER is zero.
package quantum

import (
	"context"

	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/metrics"
)

// EngineOpts configures a simulation engine. The zero value is usable: runs
// draw from a fresh CSPRNG-backed source and observability is disabled.
type EngineOpts struct {
	// Source supplies randomness for every run of this engine. Leave nil
	// for a CSPRNG-backed source. Provide a SeededSource for reproducible
	// runs; a seeded engine must not be shared across concurrent runs.
	Source BitSource

	// Logger receives per-run summaries at debug level. Leave nil to
	// disable logging. Key material is never logged.
	Logger *metrics.Logger

	// Tracer wraps each run in a span. Leave nil for no tracing.
	Tracer metrics.Tracer

	// Stats receives run counters. Leave nil to disable.
	Stats *metrics.SimStats
}

// Engine runs BB84 simulations. Engines with a nil (CSPRNG) source are safe
// for concurrent use; engines with an explicit source are not, since the
// source is stateful.
type Engine struct {
	source BitSource
	logger *metrics.Logger
	tracer metrics.Tracer
	stats  *metrics.SimStats
}

// NewEngine creates a simulation engine from opts.
func NewEngine(opts EngineOpts) *Engine {
	e := &Engine{
		source: opts.Source,
		logger: opts.Logger,
		tracer: opts.Tracer,
		stats:  opts.Stats,
	}
	if e.tracer == nil {
		e.tracer = metrics.NoOpTracer{}
	}
	return e
}

// validate rejects bad parameters before any simulation work begins.
func validate(photonCount int, eveProb float64) error {
	if photonCount <= 0 {
		return qerrors.NewSimulationError("Run", qerrors.ErrInvalidPhotonCount)
	}
	if photonCount > constants.MaxPhotonCount {
		return qerrors.NewSimulationError("Run", qerrors.ErrPhotonCountTooLarge)
	}
	if eveProb < 0 || eveProb > 1 {
		return qerrors.NewSimulationError("Run", qerrors.ErrInvalidInterceptProbability)
	}
	return nil
}

// Run executes a full protocol run and returns its trace.
//
// The trace has exactly photonCount events in ascending index order. The run
// either completes in full or fails during validation; there are no partial
// traces and no retries. A high QBER downstream is a result, not an error.
func (e *Engine) Run(ctx context.Context, photonCount int, eveProb float64) (Trace, error) {
	stream, err := e.Events(ctx, photonCount, eveProb)
	if err != nil {
		return nil, err
	}

	_, end := e.tracer.StartSpan(ctx, metrics.SpanSimulate, metrics.WithAttributes(map[string]interface{}{
		"sim.photon_count":   photonCount,
		"sim.intercept_prob": eveProb,
	}))

	trace := make(Trace, 0, photonCount)
	for {
		ev, ok := stream.Next()
		if !ok {
			break
		}
		trace = append(trace, ev)
	}
	end(nil)

	if e.stats != nil {
		e.stats.RunCompleted(photonCount, trace.Intercepted())
	}
	if e.logger != nil {
		e.logger.Debug("simulation run complete", metrics.Fields{
			"photons":        photonCount,
			"intercept_prob": eveProb,
			"intercepted":    trace.Intercepted(),
		})
	}
	return trace, nil
}

// Events validates parameters and returns a lazy photon stream.
//
// The stream produces exactly photonCount events, drawing randomness on
// demand so a presentation layer can pace disclosure without the engine ever
// re-running random choices. A stream is finite and not restartable; pacing
// and timing belong entirely to the consumer.
func (e *Engine) Events(ctx context.Context, photonCount int, eveProb float64) (*Stream, error) {
	if err := validate(photonCount, eveProb); err != nil {
		if e.stats != nil {
			e.stats.RunRejected()
		}
		return nil, err
	}
	if e.stats != nil {
		e.stats.RunStarted()
	}
	source := e.source
	if source == nil {
		source = NewSource()
	}
	return &Stream{
		source:  source,
		total:   photonCount,
		eveProb: eveProb,
	}, nil
}

// Stream is a finite, non-restartable sequence of photon events. It is not
// safe for concurrent use.
type Stream struct {
	source  BitSource
	total   int
	next    int
	eveProb float64
}

// Len returns the total number of events the stream will produce.
func (s *Stream) Len() int { return s.total }

// Remaining returns the number of events not yet produced.
func (s *Stream) Remaining() int { return s.total - s.next }

// Next produces the next photon event. The second return is false once the
// stream is exhausted. Discarding a partially consumed stream is the only
// cancellation mechanism; no randomness is drawn for unproduced events.
func (s *Stream) Next() (PhotonEvent, bool) {
	if s.next >= s.total {
		return PhotonEvent{}, false
	}

	ev := PhotonEvent{
		Index:      s.next,
		AliceBit:   s.source.Bit(),
		AliceBasis: s.source.Basis(),
	}

	// The photon in transit: Alice's original unless Eve resends.
	transitBit, transitBasis := ev.AliceBit, ev.AliceBasis

	if s.source.Intercept(s.eveProb) {
		ev.EveIntercepted = true
		ev.EveBasis = s.source.Basis()
		ev.EveBit = measure(transitBit, transitBasis, ev.EveBasis, s.source)
		// Eve resends a fresh photon consistent with her measurement;
		// Alice's original never reaches Bob.
		transitBit, transitBasis = ev.EveBit, ev.EveBasis
	}

	ev.BobBasis = s.source.Basis()
	ev.BobBit = measure(transitBit, transitBasis, ev.BobBasis, s.source)

	s.next++
	return ev, true
}

// measure applies the BB84 measurement rule: a matching basis reads the
// photon's bit exactly, a mismatched basis collapses to an independent fair
// coin, never biased toward the original bit.
func measure(photonBit Bit, photonBasis, measureBasis Basis, src BitSource) Bit {
	if photonBasis == measureBasis {
		return photonBit
	}
	return src.Bit()
}
