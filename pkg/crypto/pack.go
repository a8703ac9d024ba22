// pack.go converts bit sequences to bytes for key derivation.
package crypto

import "github.com/qlabs-sim/photonica/pkg/quantum"

// PackBits packs a bit sequence into bytes, most-significant-bit-first.
// A final partial byte is zero-padded in its low bits, so [1,0,1] packs to
// 0xA0. Padding is deterministic; the derivation layer adds an explicit bit
// length so padded sequences of different lengths never collide.
func PackBits(bits []quantum.Bit) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b == quantum.One {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

// UnpackBits expands packed bytes back into n bits, MSB-first. It is the
// inverse of PackBits for any n within the packed length.
func UnpackBits(data []byte, n int) []quantum.Bit {
	if n > len(data)*8 {
		n = len(data) * 8
	}
	out := make([]quantum.Bit, n)
	for i := range out {
		if data[i/8]&(1<<(7-uint(i%8))) != 0 {
			out[i] = quantum.One
		}
	}
	return out
}
