// Package protocol defines the boundary message types exchanged with a
// presentation layer.
//
// This file (messages.go) defines the request/response shapes:
//
//	RunRequest     -> RunResponse      (simulate + sift + estimate)
//	EncryptRequest -> EncryptResponse  (derive key + seal message)
//	DecryptRequest -> DecryptResponse  (derive key + open envelope)
//
// Every request is stateless and independent; nothing is persisted between
// requests. Transport is out of scope: callers embed these types in whatever
// carrier they use and feed them through the Codec.
package protocol

import (
	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/quantum"
	"github.com/qlabs-sim/photonica/pkg/sifting"
)

// RunRequest asks for one full protocol simulation.
type RunRequest struct {
	// PhotonCount is the number of photons to simulate. Zero means the
	// default; negatives are rejected.
	PhotonCount int `json:"n_bits"`

	// EveProb is the per-photon interception probability in [0,1].
	EveProb *float64 `json:"eve_prob,omitempty"`

	// Seed, when present, makes the run deterministic.
	Seed *uint64 `json:"seed,omitempty"`
}

// ApplyDefaults fills unset fields with the standard demo parameters.
func (r *RunRequest) ApplyDefaults() {
	if r.PhotonCount == 0 {
		r.PhotonCount = constants.DefaultPhotonCount
	}
	if r.EveProb == nil {
		p := constants.DefaultInterceptProbability
		r.EveProb = &p
	}
}

// Validate rejects malformed run parameters.
func (r *RunRequest) Validate() error {
	if r.PhotonCount <= 0 {
		return qerrors.ErrInvalidPhotonCount
	}
	if r.PhotonCount > constants.MaxPhotonCount {
		return qerrors.ErrPhotonCountTooLarge
	}
	if r.EveProb == nil || *r.EveProb < 0 || *r.EveProb > 1 {
		return qerrors.ErrInvalidInterceptProbability
	}
	return nil
}

// PhotonRow is the per-photon view consumed by the presentation layer's
// protocol table. Basis values are carried as display symbols.
type PhotonRow struct {
	Index          int    `json:"index"`
	AliceBit       int    `json:"alice_bit"`
	AliceBasis     string `json:"alice_basis"`
	BobBasis       string `json:"bob_basis"`
	BasesMatch     bool   `json:"match"`
	EveIntercepted bool   `json:"eve_intercepting"`
	EveBit         *int   `json:"eve_bit,omitempty"`
	BobBit         int    `json:"bob_bit"`
}

// RunResponse is the full outcome of a simulation run.
type RunResponse struct {
	Rows           []PhotonRow `json:"table_data"`
	MatchedIndices []int       `json:"matched_indices"`
	AliceKey       []int       `json:"alice_key"`
	BobKey         []int       `json:"bob_key"`
	EveKey         []int       `json:"eve_key"`
	QBER           float64     `json:"qber"`
	EveSuspected   bool        `json:"eve_suspected"`
}

// BuildRunResponse assembles the boundary view of a completed run.
func BuildRunResponse(trace quantum.Trace, result sifting.Result, analysis sifting.Analysis) RunResponse {
	resp := RunResponse{
		Rows:           make([]PhotonRow, 0, trace.Len()),
		MatchedIndices: intSlice(result.MatchedIndices),
		AliceKey:       bitInts(result.AliceKey),
		BobKey:         bitInts(result.BobKey),
		EveKey:         bitInts(result.EveKey),
		QBER:           analysis.QBER,
		EveSuspected:   analysis.EveSuspected,
	}
	for _, e := range trace {
		row := PhotonRow{
			Index:          e.Index,
			AliceBit:       e.AliceBit.Int(),
			AliceBasis:     e.AliceBasis.Symbol(),
			BobBasis:       e.BobBasis.Symbol(),
			BasesMatch:     e.BasesMatch(),
			EveIntercepted: e.EveIntercepted,
			BobBit:         e.BobBit.Int(),
		}
		if e.EveIntercepted {
			b := e.EveBit.Int()
			row.EveBit = &b
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}

// EncryptRequest asks for a message to be sealed under a sifted key.
type EncryptRequest struct {
	Message string `json:"message"`
	Key     []int  `json:"key"`
}

// Validate rejects malformed encrypt parameters. An empty key is legal here;
// derivation rejects it with ErrInsufficientEntropy so the caller sees the
// taxonomy error rather than a generic validation failure.
func (r *EncryptRequest) Validate() error {
	if r.Message == "" {
		return qerrors.ErrEmptyMessage
	}
	if len(r.Message) > constants.MaxMessageSize {
		return qerrors.ErrMessageTooLarge
	}
	return validKeyBits(r.Key)
}

// EncryptResponse carries the sealed message. All byte fields are
// base64-encoded by the codec.
type EncryptResponse struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Tag        string `json:"tag"`
	Suite      string `json:"suite"`
}

// DecryptRequest asks for an envelope to be opened under a sifted key.
type DecryptRequest struct {
	Envelope EncryptResponse `json:"encrypted_data"`
	Key      []int           `json:"key"`
}

// Validate rejects malformed decrypt parameters.
func (r *DecryptRequest) Validate() error {
	if r.Envelope.Ciphertext == "" && r.Envelope.Tag == "" {
		return qerrors.ErrInvalidEnvelope
	}
	return validKeyBits(r.Key)
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Decrypted string `json:"decrypted"`
}

// ErrorResponse reports a failed request to the presentation layer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// KeyBits converts boundary key integers to bits, rejecting anything outside
// {0,1}.
func KeyBits(key []int) ([]quantum.Bit, error) {
	if err := validKeyBits(key); err != nil {
		return nil, err
	}
	bits := make([]quantum.Bit, len(key))
	for i, v := range key {
		bits[i] = quantum.Bit(v)
	}
	return bits, nil
}

func validKeyBits(key []int) error {
	for _, v := range key {
		if v != 0 && v != 1 {
			return qerrors.ErrInvalidKeyBit
		}
	}
	return nil
}

func bitInts(bits []quantum.Bit) []int {
	out := make([]int, len(bits))
	for i, b := range bits {
		out[i] = b.Int()
	}
	return out
}

func intSlice(in []int) []int {
	if in == nil {
		return []int{}
	}
	return in
}
