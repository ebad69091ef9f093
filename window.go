package longhair

// The four-bit window engine (spec.md §4.4). Given four contiguous
// sub-blocks B1, B2, B4, B8, it materializes the 11 non-trivial XOR
// combinations of those sub-blocks so that any 4-bit selector pattern
// resolves to one table lookup instead of up to four conditional XORs.
// Two such tables cover the low and high nibble of a byte; windowTable
// index 0 is always nil (unused) and indices 1, 2, 4, 8 are either
// references into a data buffer or, during Gaussian elimination, into a
// row that has been partly reduced in place.
type windowTable [16][]byte

// precompTableSize is the number of non-trivial combinations a window
// holds (everything except index 0, 1, 2, 4, 8).
const precompTableSize = 11

// precompThreshold is the largest recovery-row/recovery-block count
// handled by the plain bit-scan kernels; above it the windowed kernels
// pay for themselves and are used instead (spec.md §4.4, §4.6). The
// windowed Gaussian elimination and back-substitution in decode.go work
// on 8-column groups and do not depend on this value.
const precompThreshold = 4

// assignScratch lays table[3], table[5..7], table[9..15] out across a
// scratch buffer of precompTableSize*subbytes bytes, one sub-block-sized
// slice per entry. table[1], [2], [4], [8] are left for the caller to
// set, since their source varies by call site (direct input sub-blocks
// in the encoder, data being reduced in place in the decoder).
func (t *windowTable) assignScratch(scratch []byte, subbytes int) {
	t[3] = scratch[0*subbytes : 1*subbytes]
	t[5] = scratch[1*subbytes : 2*subbytes]
	t[6] = scratch[2*subbytes : 3*subbytes]
	t[7] = scratch[3*subbytes : 4*subbytes]
	t[9] = scratch[4*subbytes : 5*subbytes]
	t[10] = scratch[5*subbytes : 6*subbytes]
	t[11] = scratch[6*subbytes : 7*subbytes]
	t[12] = scratch[7*subbytes : 8*subbytes]
	t[13] = scratch[8*subbytes : 9*subbytes]
	t[14] = scratch[9*subbytes : 10*subbytes]
	t[15] = scratch[10*subbytes : 11*subbytes]
}

// combos fills in the 11 non-trivial entries from table[1], [2], [4], [8],
// which must already be set. Order matters: each entry is built from
// entries computed earlier in this same sequence.
func (t *windowTable) combos() {
	xorSet(t[3], t[1], t[2])
	xorSet(t[6], t[2], t[4])
	xorSet(t[5], t[1], t[4])
	xorSet(t[7], t[1], t[6])
	xorSet(t[9], t[1], t[8])
	xorSet(t[12], t[4], t[8])
	xorSet(t[10], t[2], t[8])
	xorSet(t[11], t[3], t[8])
	xorSet(t[13], t[1], t[12])
	xorSet(t[14], t[2], t[12])
	xorSet(t[15], t[3], t[12])
}

// build is the common case: table[1], [2], [4], [8] point directly at
// four contiguous input sub-blocks, and the rest is scratch-backed.
func (t *windowTable) build(scratch []byte, subbytes int, b1, b2, b4, b8 []byte) {
	t[1], t[2], t[4], t[8] = b1, b2, b4, b8
	t.assignScratch(scratch, subbytes)
	t.combos()
}

// applyByte XORs the window selected by b's low and high nibble into
// dest: both nibbles nonzero adds both table entries in one pass, either
// nibble alone falls back to a plain XOR, and both-zero (only possible
// when applying a partially reduced bitmatrix row rather than a Cauchy
// matrix byte, which is never zero) is a no-op.
func applyByte(dest []byte, lo, hi *windowTable, b byte) {
	low := b & 0x0F
	high := b >> 4
	switch {
	case low != 0 && high != 0:
		xorAdd(dest, lo[low], hi[high])
	case low != 0:
		xorInPlace(dest, lo[low])
	case high != 0:
		xorInPlace(dest, hi[high])
	}
}
