// Package photonica simulates the BB84 quantum key distribution protocol and
// encrypts messages under keys negotiated by the simulation.
//
// BB84 lets two parties (Alice and Bob) agree on a shared secret over a
// quantum channel while detecting eavesdropping: an interceptor (Eve) who
// measures photons in a randomly chosen basis disturbs roughly a quarter of
// the sifted key, which shows up as an elevated quantum bit error rate (QBER).
//
// # Quick Start
//
// Run a simulation, sift the trace, and derive a key:
//
//	import (
//	    "github.com/qlabs-sim/photonica/pkg/crypto"
//	    "github.com/qlabs-sim/photonica/pkg/quantum"
//	    "github.com/qlabs-sim/photonica/pkg/sifting"
//	)
//
//	engine := quantum.NewEngine(quantum.EngineOpts{})
//	trace, _ := engine.Run(ctx, 2048, 0.3)
//	result, _ := sifting.Sift(trace)
//	qber := sifting.QBER(result)
//
//	key, _ := crypto.DeriveKey(result.BobKey)
//	cipher, _ := crypto.NewCipher(constants.CipherSuiteAES256GCM, key)
//	env, _ := cipher.Encrypt([]byte("hello"))
//	plain, _ := cipher.Decrypt(env)
//
// # Package Structure
//
// The library is organized into several packages:
//
//   - pkg/quantum: photon data model, randomness sources, simulation engine
//   - pkg/sifting: basis reconciliation and QBER estimation
//   - pkg/crypto: bit packing, SHAKE-256 key derivation, AEAD envelopes
//   - pkg/protocol: boundary message types for presentation layers
//   - pkg/metrics: structured logging, tracing, and simulation counters
//   - internal/constants: simulation and cryptographic parameters
//   - internal/errors: custom error types shared across packages
//
// # Protocol Model
//
// The engine implements the standard intercept-resend attack model:
//
//   - Alice encodes each bit in a random basis (rectilinear or diagonal).
//   - With a configurable probability, Eve measures the photon in her own
//     random basis and resends a photon consistent with her outcome.
//   - Bob measures in an independent random basis; a basis mismatch collapses
//     the outcome to a fair coin flip.
//
// Sifting keeps only events where Alice's and Bob's bases agree. The QBER
// over the sifted key is the eavesdropping indicator: ~0 without Eve, ~0.25
// under full interception.
//
// # Testing
//
// The library includes comprehensive tests:
//
//	go test ./...                                    # All tests
//	go test -fuzz=FuzzDecodeRunRequest ./test/fuzz/  # Fuzz tests
//	go test -bench=. ./test/benchmark                # Benchmarks
package photonica
