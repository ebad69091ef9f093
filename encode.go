package longhair

// Encoder (spec.md §4.5).
//
// encodeInto writes m*blockBytes bytes to out: recovery block r occupies
// out[r*blockBytes : (r+1)*blockBytes]. data must hold exactly k blocks,
// each blockBytes long. scratch, if long enough, is reused for the
// window precomputation buffer; otherwise a fresh one is allocated and
// returned so the caller (a Context) can grow its own copy.
func encodeInto(k, m int, data [][]byte, out []byte, blockBytes int, scratch []byte) ([]byte, error) {
	if k < 1 || m < 1 || k+m > MaxTotalBlocks {
		return scratch, ErrInvalidParams
	}

	// Degenerate case: a single input block. Every recovery block is an
	// exact copy; block_bytes need not be a multiple of 8 on this path.
	if k == 1 {
		for r := 0; r < m; r++ {
			copy(out[r*blockBytes:(r+1)*blockBytes], data[0])
		}
		return scratch, nil
	}

	// Realize the implicit all-ones first row: recovery block 0 is the
	// XOR of every input, regardless of m.
	xorSet(out[:blockBytes], data[0], data[1])
	for x := 2; x < k; x++ {
		xorInPlace(out[:blockBytes], data[x])
	}

	// Degenerate case: a single recovery block. It is already complete.
	if m == 1 {
		return scratch, nil
	}

	if blockBytes <= 0 || blockBytes%8 != 0 {
		return scratch, ErrBlockSize
	}

	gfInitTables()

	matrix := defaultMatrixProvider.get(k, m)
	subbytes := blockBytes / 8
	rest := out[blockBytes:]
	for i := range rest {
		rest[i] = 0
	}

	if m > precompThreshold {
		needed := 2 * precompTableSize * subbytes
		if len(scratch) < needed {
			scratch = make([]byte, needed)
		}
		winEncode(k, m, matrix, data, rest, subbytes, scratch)
	} else {
		plainEncode(k, m, matrix, data, rest, subbytes)
	}

	return scratch, nil
}

// plainEncode applies the Cauchy matrix without windowing: used when
// m <= precompThreshold, where the window engine's setup cost would not
// be recovered.
func plainEncode(k, m int, matrix []byte, data [][]byte, out []byte, subbytes int) {
	blockBytes := subbytes * 8

	for y := 1; y < m; y++ {
		destRow := out[(y-1)*blockBytes : y*blockBytes]

		for x := 0; x < k; x++ {
			slice := matrix[(y-1)*k+x]
			rows := expandRows(slice)
			src := data[x]

			for bitY := 0; bitY < 8; bitY++ {
				destSub := destRow[bitY*subbytes : (bitY+1)*subbytes]
				mask := rows[bitY]

				for bitX := 0; bitX < 8; bitX++ {
					if mask&(1<<uint(bitX)) != 0 {
						xorInPlace(destSub, src[bitX*subbytes:(bitX+1)*subbytes])
					}
				}
			}
		}
	}
}

// winEncode applies the Cauchy matrix using the four-bit window engine:
// for each input column, two window tables are built once from its eight
// sub-blocks and reused across every one of the m-1 recovery rows.
func winEncode(k, m int, matrix []byte, data [][]byte, out []byte, subbytes int, scratch []byte) {
	var lo, hi windowTable
	loScratch := scratch[:precompTableSize*subbytes]
	hiScratch := scratch[precompTableSize*subbytes : 2*precompTableSize*subbytes]

	for x := 0; x < k; x++ {
		src := data[x]
		lo.build(loScratch, subbytes, src[0*subbytes:1*subbytes], src[1*subbytes:2*subbytes], src[2*subbytes:3*subbytes], src[3*subbytes:4*subbytes])
		hi.build(hiScratch, subbytes, src[4*subbytes:5*subbytes], src[5*subbytes:6*subbytes], src[6*subbytes:7*subbytes], src[7*subbytes:8*subbytes])

		dest := out
		for y := 1; y < m; y++ {
			slice := matrix[(y-1)*k+x]
			rows := expandRows(slice)

			for bitY := 0; bitY < 8; bitY++ {
				applyByte(dest[:subbytes], &lo, &hi, rows[bitY])
				dest = dest[subbytes:]
			}
		}
	}
}
