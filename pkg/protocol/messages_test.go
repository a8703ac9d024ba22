package protocol_test

import (
	"testing"

	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/protocol"
	"github.com/qlabs-sim/photonica/pkg/quantum"
	"github.com/qlabs-sim/photonica/pkg/sifting"
)

func prob(p float64) *float64 { return &p }

// --- RunRequest Tests ---

func TestRunRequestDefaults(t *testing.T) {
	var r protocol.RunRequest
	r.ApplyDefaults()
	if r.PhotonCount != 10 {
		t.Errorf("default photon count = %d, want 10", r.PhotonCount)
	}
	if r.EveProb == nil || *r.EveProb != 0.3 {
		t.Errorf("default eve probability = %v, want 0.3", r.EveProb)
	}

	explicit := protocol.RunRequest{PhotonCount: 50, EveProb: prob(0)}
	explicit.ApplyDefaults()
	if explicit.PhotonCount != 50 || *explicit.EveProb != 0 {
		t.Error("ApplyDefaults overwrote explicit values")
	}
}

func TestRunRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  protocol.RunRequest
		want error
	}{
		{"valid", protocol.RunRequest{PhotonCount: 10, EveProb: prob(0.5)}, nil},
		{"negative photons", protocol.RunRequest{PhotonCount: -1, EveProb: prob(0.5)}, qerrors.ErrInvalidPhotonCount},
		{"zero photons", protocol.RunRequest{PhotonCount: 0, EveProb: prob(0.5)}, qerrors.ErrInvalidPhotonCount},
		{"huge photons", protocol.RunRequest{PhotonCount: 1 << 23, EveProb: prob(0.5)}, qerrors.ErrPhotonCountTooLarge},
		{"probability low", protocol.RunRequest{PhotonCount: 10, EveProb: prob(-0.5)}, qerrors.ErrInvalidInterceptProbability},
		{"probability high", protocol.RunRequest{PhotonCount: 10, EveProb: prob(1.5)}, qerrors.ErrInvalidInterceptProbability},
		{"probability missing", protocol.RunRequest{PhotonCount: 10}, qerrors.ErrInvalidInterceptProbability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.want != nil && !qerrors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// --- Key Bits Tests ---

func TestKeyBits(t *testing.T) {
	bits, err := protocol.KeyBits([]int{1, 0, 1, 1})
	if err != nil {
		t.Fatalf("KeyBits failed: %v", err)
	}
	want := []quantum.Bit{quantum.One, quantum.Zero, quantum.One, quantum.One}
	for i := range want {
		if bits[i] != want[i] {
			t.Fatalf("bit %d = %v, want %v", i, bits[i], want[i])
		}
	}

	if _, err := protocol.KeyBits([]int{1, 2, 0}); !qerrors.Is(err, qerrors.ErrInvalidKeyBit) {
		t.Errorf("KeyBits with 2: error = %v, want ErrInvalidKeyBit", err)
	}
	if _, err := protocol.KeyBits([]int{-1}); !qerrors.Is(err, qerrors.ErrInvalidKeyBit) {
		t.Errorf("KeyBits with -1: error = %v, want ErrInvalidKeyBit", err)
	}
}

// --- Encrypt/Decrypt Request Tests ---

func TestEncryptRequestValidate(t *testing.T) {
	ok := protocol.EncryptRequest{Message: "hi", Key: []int{1, 0}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid request failed: %v", err)
	}

	empty := protocol.EncryptRequest{Key: []int{1}}
	if err := empty.Validate(); !qerrors.Is(err, qerrors.ErrEmptyMessage) {
		t.Errorf("empty message error = %v, want ErrEmptyMessage", err)
	}

	badKey := protocol.EncryptRequest{Message: "hi", Key: []int{3}}
	if err := badKey.Validate(); !qerrors.Is(err, qerrors.ErrInvalidKeyBit) {
		t.Errorf("bad key error = %v, want ErrInvalidKeyBit", err)
	}

	// Empty key passes request validation; derivation owns that failure.
	noKey := protocol.EncryptRequest{Message: "hi"}
	if err := noKey.Validate(); err != nil {
		t.Errorf("empty key should not fail request validation: %v", err)
	}
}

func TestDecryptRequestValidate(t *testing.T) {
	empty := protocol.DecryptRequest{Key: []int{1}}
	if err := empty.Validate(); !qerrors.Is(err, qerrors.ErrInvalidEnvelope) {
		t.Errorf("empty envelope error = %v, want ErrInvalidEnvelope", err)
	}
}

// --- Response Assembly Tests ---

func TestBuildRunResponse(t *testing.T) {
	trace := quantum.Trace{
		{Index: 0, AliceBit: quantum.One, AliceBasis: quantum.Rectilinear, BobBasis: quantum.Rectilinear, BobBit: quantum.One},
		{Index: 1, AliceBit: quantum.Zero, AliceBasis: quantum.Diagonal, BobBasis: quantum.Rectilinear, BobBit: quantum.One,
			EveIntercepted: true, EveBasis: quantum.Rectilinear, EveBit: quantum.One},
	}
	result, err := sifting.Sift(trace)
	if err != nil {
		t.Fatalf("Sift failed: %v", err)
	}
	resp := protocol.BuildRunResponse(trace, result, sifting.Analyze(result))

	if len(resp.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(resp.Rows))
	}
	if resp.Rows[0].AliceBasis != "+ (0°)" || resp.Rows[1].AliceBasis != "× (45°)" {
		t.Errorf("basis symbols wrong: %q, %q", resp.Rows[0].AliceBasis, resp.Rows[1].AliceBasis)
	}
	if !resp.Rows[0].BasesMatch || resp.Rows[1].BasesMatch {
		t.Error("BasesMatch flags wrong")
	}
	if resp.Rows[0].EveBit != nil {
		t.Error("unintercepted photon carries an eve bit")
	}
	if resp.Rows[1].EveBit == nil || *resp.Rows[1].EveBit != 1 {
		t.Error("intercepted photon missing its eve bit")
	}
	if len(resp.MatchedIndices) != 1 || resp.MatchedIndices[0] != 0 {
		t.Errorf("MatchedIndices = %v", resp.MatchedIndices)
	}
	if len(resp.BobKey) != 1 || resp.BobKey[0] != 1 {
		t.Errorf("BobKey = %v", resp.BobKey)
	}
	if len(resp.EveKey) != 0 {
		t.Errorf("EveKey = %v, want empty", resp.EveKey)
	}
}
