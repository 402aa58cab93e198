package gpu

import (
	"encoding/binary"
	"math"
)

// QuadIndices appends the six indices of quad number quad to dst using the
// pattern 0,1,2, 2,3,0 relative to the quad's first vertex.
func QuadIndices(dst []uint16, quad int) []uint16 {
	v := uint16(quad * 4) //nolint:gosec // quad count is bounded by MaxQuads
	return append(dst,
		v+0, v+1, v+2,
		v+2, v+3, v+0,
	)
}

// MaxQuads is the largest batch whose vertices uint16 indices can address.
const MaxQuads = math.MaxUint16 / 4

// Float32Bytes serializes src as little-endian float32 into dst, growing
// it when needed, and returns the written slice.
func Float32Bytes(dst []byte, src []float32) []byte {
	n := len(src) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
	return dst
}

// Uint16Bytes serializes src as little-endian uint16 into dst. The result
// is padded with zeros to a multiple of four bytes, the queue write
// alignment.
func Uint16Bytes(dst []byte, src []uint16) []byte {
	n := Align4(len(src) * 2)
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[i*2:], v)
	}
	for i := len(src) * 2; i < n; i++ {
		dst[i] = 0
	}
	return dst
}

// Align4 rounds n up to a multiple of four.
func Align4(n int) int {
	return (n + 3) &^ 3
}
