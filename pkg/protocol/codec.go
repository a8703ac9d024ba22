// codec.go implements serialization of boundary messages.
//
// Messages travel as JSON objects; binary fields inside envelopes are
// base64-encoded, matching the envelope shape presentation layers expect:
//
//	{"ciphertext": "...", "nonce": "...", "tag": "...", "suite": "AES-256-GCM"}
//
// Decoding is strict: unknown fields are rejected so malformed or misrouted
// payloads fail loudly at the boundary instead of deep in the simulation.
package protocol

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/qlabs-sim/photonica/internal/constants"
	qerrors "github.com/qlabs-sim/photonica/internal/errors"
	"github.com/qlabs-sim/photonica/pkg/crypto"
)

// Codec provides message serialization and deserialization.
type Codec struct{}

// NewCodec creates a new boundary codec.
func NewCodec() *Codec {
	return &Codec{}
}

// EncodeRunRequest serializes a RunRequest.
func (c *Codec) EncodeRunRequest(r *RunRequest) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// DecodeRunRequest parses and validates a RunRequest, applying defaults for
// unset fields first.
func (c *Codec) DecodeRunRequest(data []byte) (*RunRequest, error) {
	var r RunRequest
	if err := strictUnmarshal(data, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeRunResponse serializes a RunResponse.
func (c *Codec) EncodeRunResponse(r *RunResponse) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRunResponse parses a RunResponse.
func (c *Codec) DecodeRunResponse(data []byte) (*RunResponse, error) {
	var r RunResponse
	if err := strictUnmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeEncryptRequest serializes an EncryptRequest.
func (c *Codec) EncodeEncryptRequest(r *EncryptRequest) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// DecodeEncryptRequest parses and validates an EncryptRequest.
func (c *Codec) DecodeEncryptRequest(data []byte) (*EncryptRequest, error) {
	var r EncryptRequest
	if err := strictUnmarshal(data, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// DecodeDecryptRequest parses and validates a DecryptRequest.
func (c *Codec) DecodeDecryptRequest(data []byte) (*DecryptRequest, error) {
	var r DecryptRequest
	if err := strictUnmarshal(data, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeError serializes an error for the presentation layer. Only the
// message text crosses the boundary; wrapped operation context stays inside.
func (c *Codec) EncodeError(err error) []byte {
	data, merr := json.Marshal(ErrorResponse{Error: err.Error()})
	if merr != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return data
}

// EnvelopeToWire converts a cipher envelope to its boundary form.
func EnvelopeToWire(env crypto.Envelope) EncryptResponse {
	return EncryptResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(env.Ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(env.Nonce),
		Tag:        base64.StdEncoding.EncodeToString(env.Tag),
		Suite:      env.Suite.String(),
	}
}

// EnvelopeFromWire converts a boundary envelope back to its cipher form.
func EnvelopeFromWire(w EncryptResponse) (crypto.Envelope, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(w.Ciphertext)
	if err != nil {
		return crypto.Envelope{}, fmt.Errorf("%w: bad ciphertext encoding", qerrors.ErrInvalidEnvelope)
	}
	nonce, err := base64.StdEncoding.DecodeString(w.Nonce)
	if err != nil {
		return crypto.Envelope{}, fmt.Errorf("%w: bad nonce encoding", qerrors.ErrInvalidEnvelope)
	}
	tag, err := base64.StdEncoding.DecodeString(w.Tag)
	if err != nil {
		return crypto.Envelope{}, fmt.Errorf("%w: bad tag encoding", qerrors.ErrInvalidEnvelope)
	}

	env := crypto.Envelope{
		Suite:      suiteFromWire(w.Suite),
		Nonce:      nonce,
		Ciphertext: ciphertext,
		Tag:        tag,
	}
	if err := env.Validate(); err != nil {
		return crypto.Envelope{}, fmt.Errorf("%w: %v", qerrors.ErrInvalidEnvelope, err)
	}
	return env, nil
}

// suiteFromWire maps a wire suite name to its identifier, defaulting to
// AES-256-GCM for envelopes produced before the suite field existed.
func suiteFromWire(name string) constants.CipherSuite {
	if name == "" {
		return constants.CipherSuiteAES256GCM
	}
	return constants.ParseCipherSuite(name)
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", qerrors.ErrInvalidMessage, err)
	}
	return nil
}
