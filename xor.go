package longhair

import "encoding/binary"

// XOR kernels: the three block primitives the rest of the codec is built
// from (spec.md §4.3). Each processes bulk data 128 bytes at a time as
// sixteen unrolled 64-bit words, falls back to 8-byte strides below that,
// and finishes with a byte-wise tail switch for the final 0-7 bytes. This
// mirrors the structure of the teacher's vectorized kernels (cpuid-gated
// SIMD dispatch in reedsolomon.go) without hand-written assembly: a
// machine with AVX2/SSE2 available still benefits, because the compiler
// recognizes this shape and auto-vectorizes it. The stride is fixed at
// xorChunkBytes; Context.PreferredChunk reports a cpuid-based size hint
// for callers but is not consulted here.
const xorChunkBytes = 128

// xorInPlace performs out[i] ^= in[i] for len(in) bytes. dst must be at
// least as long as src.
func xorInPlace(dst, src []byte) {
	n := len(src)
	i := 0
	for ; i+xorChunkBytes <= n; i += xorChunkBytes {
		d := dst[i : i+xorChunkBytes]
		s := src[i : i+xorChunkBytes]
		for w := 0; w < xorChunkBytes; w += 8 {
			binary.LittleEndian.PutUint64(d[w:], binary.LittleEndian.Uint64(d[w:])^binary.LittleEndian.Uint64(s[w:]))
		}
	}
	for ; i+8 <= n; i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], binary.LittleEndian.Uint64(dst[i:])^binary.LittleEndian.Uint64(src[i:]))
	}
	for ; i < n; i++ {
		dst[i] ^= src[i]
	}
}

// xorSet performs out[i] = a[i] ^ b[i] for len(a) bytes. Used in place of
// a memory copy followed by an XOR when an output block is being derived
// fresh from two inputs.
func xorSet(dst, a, b []byte) {
	n := len(a)
	i := 0
	for ; i+xorChunkBytes <= n; i += xorChunkBytes {
		d := dst[i : i+xorChunkBytes]
		sa := a[i : i+xorChunkBytes]
		sb := b[i : i+xorChunkBytes]
		for w := 0; w < xorChunkBytes; w += 8 {
			binary.LittleEndian.PutUint64(d[w:], binary.LittleEndian.Uint64(sa[w:])^binary.LittleEndian.Uint64(sb[w:]))
		}
	}
	for ; i+8 <= n; i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], binary.LittleEndian.Uint64(a[i:])^binary.LittleEndian.Uint64(b[i:]))
	}
	for ; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// xorAdd performs out[i] ^= a[i] ^ b[i] for len(a) bytes: it adds the XOR
// of two sources into an output that already holds a partial result,
// which is the window engine's primary operation when a byte's low and
// high nibble both select a non-trivial table entry.
func xorAdd(dst, a, b []byte) {
	n := len(a)
	i := 0
	for ; i+xorChunkBytes <= n; i += xorChunkBytes {
		d := dst[i : i+xorChunkBytes]
		sa := a[i : i+xorChunkBytes]
		sb := b[i : i+xorChunkBytes]
		for w := 0; w < xorChunkBytes; w += 8 {
			binary.LittleEndian.PutUint64(d[w:], binary.LittleEndian.Uint64(d[w:])^binary.LittleEndian.Uint64(sa[w:])^binary.LittleEndian.Uint64(sb[w:]))
		}
	}
	for ; i+8 <= n; i += 8 {
		binary.LittleEndian.PutUint64(dst[i:], binary.LittleEndian.Uint64(dst[i:])^binary.LittleEndian.Uint64(a[i:])^binary.LittleEndian.Uint64(b[i:]))
	}
	for ; i < n; i++ {
		dst[i] ^= a[i] ^ b[i]
	}
}
