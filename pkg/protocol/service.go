// service.go implements the boundary operations end to end: each handler
// takes a validated request, drives the simulation and cipher layers, and
// produces the corresponding response. Handlers are stateless; a transport
// adapter owns nothing but the mapping of carriers to these calls.
package protocol

import (
	"context"

	"github.com/qlabs-sim/photonica/internal/constants"
	"github.com/qlabs-sim/photonica/pkg/crypto"
	"github.com/qlabs-sim/photonica/pkg/metrics"
	"github.com/qlabs-sim/photonica/pkg/quantum"
	"github.com/qlabs-sim/photonica/pkg/sifting"
)

// ServiceOpts configures a boundary service. Zero value gives CSPRNG-backed
// runs, AES-256-GCM, and no observability.
type ServiceOpts struct {
	// Suite selects the AEAD suite for encrypt/decrypt. Zero means
	// AES-256-GCM.
	Suite constants.CipherSuite

	// Logger, Tracer, and Stats are forwarded to the engines this service
	// creates. Any of them may be nil.
	Logger *metrics.Logger
	Tracer metrics.Tracer
	Stats  *metrics.SimStats
}

// Service executes boundary requests against the simulation core. Run
// requests are independent: each gets its own engine and randomness source,
// so concurrent requests need no synchronization.
type Service struct {
	suite  constants.CipherSuite
	logger *metrics.Logger
	tracer metrics.Tracer
	stats  *metrics.SimStats
}

// NewService creates a boundary service.
func NewService(opts ServiceOpts) *Service {
	suite := opts.Suite
	if suite == 0 {
		suite = constants.CipherSuiteAES256GCM
	}
	return &Service{
		suite:  suite,
		logger: opts.Logger,
		tracer: opts.Tracer,
		stats:  opts.Stats,
	}
}

// Run simulates one protocol run and returns its boundary view.
func (s *Service) Run(ctx context.Context, req *RunRequest) (*RunResponse, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		if s.stats != nil {
			s.stats.RunRejected()
		}
		return nil, err
	}

	var source quantum.BitSource
	if req.Seed != nil {
		source = quantum.NewSeededSource(*req.Seed)
	}
	engine := quantum.NewEngine(quantum.EngineOpts{
		Source: source,
		Logger: s.logger,
		Tracer: s.tracer,
		Stats:  s.stats,
	})

	trace, err := engine.Run(ctx, req.PhotonCount, *req.EveProb)
	if err != nil {
		return nil, err
	}
	result, err := sifting.Sift(trace)
	if err != nil {
		return nil, err
	}
	resp := BuildRunResponse(trace, result, sifting.Analyze(result))
	return &resp, nil
}

// Encrypt derives a key from the request's sifted bits and seals the message.
func (s *Service) Encrypt(ctx context.Context, req *EncryptRequest) (*EncryptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	bits, err := KeyBits(req.Key)
	if err != nil {
		return nil, err
	}

	_, end := trace(s.tracer).StartSpan(ctx, metrics.SpanEncrypt)
	env, err := sealWithBits(s.suite, bits, []byte(req.Message))
	end(err)
	if err != nil {
		return nil, err
	}

	resp := EnvelopeToWire(env)
	return &resp, nil
}

// Decrypt derives a key from the request's sifted bits and opens the
// envelope.
func (s *Service) Decrypt(ctx context.Context, req *DecryptRequest) (*DecryptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	bits, err := KeyBits(req.Key)
	if err != nil {
		return nil, err
	}
	env, err := EnvelopeFromWire(req.Envelope)
	if err != nil {
		return nil, err
	}

	_, end := trace(s.tracer).StartSpan(ctx, metrics.SpanDecrypt)
	plaintext, err := openWithBits(env, bits)
	end(err)
	if err != nil {
		return nil, err
	}

	return &DecryptResponse{Decrypted: string(plaintext)}, nil
}

func sealWithBits(suite constants.CipherSuite, bits []quantum.Bit, plaintext []byte) (crypto.Envelope, error) {
	key, err := crypto.DeriveKey(bits)
	if err != nil {
		return crypto.Envelope{}, err
	}
	defer crypto.Zeroize(key)

	cipher, err := crypto.NewCipher(suite, key)
	if err != nil {
		return crypto.Envelope{}, err
	}
	return cipher.Encrypt(plaintext)
}

func openWithBits(env crypto.Envelope, bits []quantum.Bit) ([]byte, error) {
	key, err := crypto.DeriveKey(bits)
	if err != nil {
		return nil, err
	}
	defer crypto.Zeroize(key)

	cipher, err := crypto.NewCipher(env.Suite, key)
	if err != nil {
		return nil, err
	}
	return cipher.Decrypt(env)
}

func trace(t metrics.Tracer) metrics.Tracer {
	if t == nil {
		return metrics.NoOpTracer{}
	}
	return t
}
