package longhair

import pkgerrors "github.com/pkg/errors"

// Decoder (spec.md §4.6).
//
// blocks holds exactly k block descriptors. Most carry Row in [0, k): an
// original block that survived. Up to m of them instead carry Row in
// [k, k+m): a recovery block standing in for whichever original row is
// missing from the set. decodeInto recovers every missing original block
// in place, overwriting the recovery block's Data with the original
// content and rewriting its Row to the original row it now represents
// (the relabeling step).
func decodeInto(k, m int, blocks []Block, blockBytes int, scratch []byte) ([]byte, error) {
	if k < 1 || m < 1 {
		return scratch, ErrInvalidParams
	}
	if len(blocks) != k {
		return scratch, ErrTooFewBlocks
	}
	if k+m > MaxTotalBlocks {
		return scratch, ErrInvalidParams
	}

	present := make(map[int][]byte, k)
	var erasureIdx []int
	var erasureY []int

	for i := range blocks {
		b := &blocks[i]
		if b.Row < k {
			present[b.Row] = b.Data
		} else if b.Row < k+m {
			erasureIdx = append(erasureIdx, i)
			erasureY = append(erasureY, b.Row-k)
		} else {
			return scratch, ErrInvalidParams
		}
	}

	e := len(erasureIdx)
	if e == 0 {
		return scratch, nil
	}
	if e > m {
		return scratch, ErrInvalidParams
	}

	var missingRows []int
	for row := 0; row < k; row++ {
		if _, ok := present[row]; !ok {
			missingRows = append(missingRows, row)
		}
	}
	if len(missingRows) != e {
		return scratch, ErrInvalidParams
	}

	// Degenerate case: the only row there is already holds its own data.
	if k == 1 {
		blocks[erasureIdx[0]].Row = 0
		return scratch, nil
	}

	// Degenerate case: the lone recovery block is the XOR of every
	// original, so the one missing original is that XOR undone.
	if m == 1 {
		dest := blocks[erasureIdx[0]].Data
		for _, px := range present {
			xorInPlace(dest, px)
		}
		blocks[erasureIdx[0]].Row = missingRows[0]
		return scratch, nil
	}

	if blockBytes <= 0 || blockBytes%8 != 0 {
		return scratch, ErrBlockSize
	}

	gfInitTables()
	matrix := defaultMatrixProvider.get(k, m)
	subbytes := blockBytes / 8

	presentCols := make([]int, 0, len(present))
	for x := range present {
		presentCols = append(presentCols, x)
	}

	// adjusted[i] starts as a copy of the used recovery block's data and
	// is reduced to hold only the erased columns' combined contribution.
	adjusted := make([][]byte, e)
	for i, idx := range erasureIdx {
		buf := make([]byte, blockBytes)
		copy(buf, blocks[idx].Data)
		adjusted[i] = buf
	}

	if e > precompThreshold {
		needed := 2 * precompTableSize * subbytes
		if len(scratch) < needed {
			scratch = make([]byte, needed)
		}
		winEliminateOriginal(k, matrix, presentCols, present, erasureY, adjusted, subbytes, scratch)
	} else {
		for i, y := range erasureY {
			eliminateOriginalRow(y, matrix, k, presentCols, present, adjusted[i], subbytes)
		}
	}

	coeff := make([][]byte, e)
	for i := range coeff {
		coeff[i] = make([]byte, e)
		for j, col := range missingRows {
			coeff[i][j] = matrixCoeff(matrix, k, erasureY[i], col)
		}
	}

	n := e * 8
	rows := buildBitmatrix(coeff, e)
	rhs := make([][]byte, n)
	for i := 0; i < e; i++ {
		for by := 0; by < 8; by++ {
			rhs[i*8+by] = adjusted[i][by*subbytes : (by+1)*subbytes]
		}
	}

	if e > precompThreshold {
		needed := 2 * precompTableSize * subbytes
		if len(scratch) < needed {
			scratch = make([]byte, needed)
		}
		if err := winGaussianEliminate(rows, rhs, n, subbytes, scratch); err != nil {
			logger.Warnf("singular bitmatrix for k=%d m=%d erasures=%d", k, m, e)
			return scratch, pkgerrors.Wrapf(err, "k=%d m=%d erasures=%d", k, m, e)
		}
		winBackSubstitute(rows, rhs, n, subbytes, scratch)
	} else {
		if err := gaussianEliminate(rows, rhs, n); err != nil {
			logger.Warnf("singular bitmatrix for k=%d m=%d erasures=%d", k, m, e)
			return scratch, pkgerrors.Wrapf(err, "k=%d m=%d erasures=%d", k, m, e)
		}
		backSubstitute(rows, rhs, n)
	}

	for j, row := range missingRows {
		dest := blocks[erasureIdx[j]].Data
		for by := 0; by < 8; by++ {
			copy(dest[by*subbytes:(by+1)*subbytes], rhs[j*8+by])
		}
		blocks[erasureIdx[j]].Row = row
	}

	return scratch, nil
}

// matrixCoeff returns the Cauchy matrix entry for matrix row y (the
// implicit all-ones row 0, or Cauchy matrix row y-1) and column x.
func matrixCoeff(matrix []byte, k, y, x int) byte {
	if y == 0 {
		return 1
	}
	return matrix[(y-1)*k+x]
}

// eliminateOriginalRow subtracts (XORs) every present column's
// contribution to matrix row y out of dest, leaving only the erased
// columns' contribution behind.
func eliminateOriginalRow(y int, matrix []byte, k int, presentCols []int, data map[int][]byte, dest []byte, subbytes int) {
	for _, x := range presentCols {
		slice := matrixCoeff(matrix, k, y, x)
		rows := expandRows(slice)
		src := data[x]

		for bitY := 0; bitY < 8; bitY++ {
			destSub := dest[bitY*subbytes : (bitY+1)*subbytes]
			mask := rows[bitY]

			for bitX := 0; bitX < 8; bitX++ {
				if mask&(1<<uint(bitX)) != 0 {
					xorInPlace(destSub, src[bitX*subbytes:(bitX+1)*subbytes])
				}
			}
		}
	}
}

// winEliminateOriginal is eliminateOriginalRow for every used row at
// once, windowed per present column: each column's two window tables are
// built once and reused across every row that needs elimination.
func winEliminateOriginal(k int, matrix []byte, presentCols []int, data map[int][]byte, rowsUsed []int, dest [][]byte, subbytes int, scratch []byte) {
	var lo, hi windowTable
	loScratch := scratch[:precompTableSize*subbytes]
	hiScratch := scratch[precompTableSize*subbytes : 2*precompTableSize*subbytes]

	for _, x := range presentCols {
		src := data[x]
		lo.build(loScratch, subbytes, src[0*subbytes:1*subbytes], src[1*subbytes:2*subbytes], src[2*subbytes:3*subbytes], src[3*subbytes:4*subbytes])
		hi.build(hiScratch, subbytes, src[4*subbytes:5*subbytes], src[5*subbytes:6*subbytes], src[6*subbytes:7*subbytes], src[7*subbytes:8*subbytes])

		for i, y := range rowsUsed {
			d := dest[i]
			slice := matrixCoeff(matrix, k, y, x)
			rows := expandRows(slice)

			for bitY := 0; bitY < 8; bitY++ {
				applyByte(d[bitY*subbytes:(bitY+1)*subbytes], &lo, &hi, rows[bitY])
			}
		}
	}
}

// bitRow is one row of the binary system built by expanding an e x e
// matrix of GF(256) coefficients into an 8e x 8e matrix of bits (spec.md
// §4.6 step 4, generate_bitmatrix).
type bitRow []uint64

func newBitRow(n int) bitRow {
	return make(bitRow, (n+63)/64)
}

func (r bitRow) get(i int) bool {
	return r[i/64]&(1<<uint(i%64)) != 0
}

func (r bitRow) set(i int) {
	r[i/64] |= 1 << uint(i%64)
}

func (r bitRow) xorInto(other bitRow) {
	for i := range r {
		r[i] ^= other[i]
	}
}

// buildBitmatrix expands an e x e matrix of GF(256) coefficients into its
// 8e x 8e binary equivalent: coefficient coeff[i][j] becomes the 8x8
// submatrix that maps unknown column j's eight sub-blocks onto equation
// row i's eight sub-blocks.
func buildBitmatrix(coeff [][]byte, e int) []bitRow {
	n := e * 8
	rows := make([]bitRow, n)
	for p := range rows {
		rows[p] = newBitRow(n)
	}

	for i := 0; i < e; i++ {
		for j := 0; j < e; j++ {
			expanded := expandRows(coeff[i][j])
			for by := 0; by < 8; by++ {
				mask := expanded[by]
				if mask == 0 {
					continue
				}
				r := rows[i*8+by]
				for bx := 0; bx < 8; bx++ {
					if mask&(1<<uint(bx)) != 0 {
						r.set(j*8 + bx)
					}
				}
			}
		}
	}
	return rows
}

// gaussianEliminate reduces rows to row-echelon form with partial
// pivoting, applying every row operation to the parallel rhs sub-blocks
// (spec.md §4.6 step 5). A bit coefficient of 1 means "include this
// sub-block in the XOR", so the elimination itself never needs GF(256)
// multiplication, only XOR.
func gaussianEliminate(rows []bitRow, rhs [][]byte, n int) error {
	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if rows[r].get(col) {
				pivot = r
				break
			}
		}
		if pivot < 0 {
			return ErrSingularMatrix
		}
		if pivot != col {
			rows[col], rows[pivot] = rows[pivot], rows[col]
			rhs[col], rhs[pivot] = rhs[pivot], rhs[col]
		}
		for r := col + 1; r < n; r++ {
			if rows[r].get(col) {
				rows[r].xorInto(rows[col])
				xorInPlace(rhs[r], rhs[col])
			}
		}
	}
	return nil
}

// backSubstitute clears every bit above the diagonal established by
// gaussianEliminate, bottom-up, leaving rhs[p] holding the solved value
// for unknown p (spec.md §4.6 step 6).
func backSubstitute(rows []bitRow, rhs [][]byte, n int) {
	for col := n - 1; col >= 0; col-- {
		for r := col - 1; r >= 0; r-- {
			if rows[r].get(col) {
				rows[r].xorInto(rows[col])
				xorInPlace(rhs[r], rhs[col])
			}
		}
	}
}

// winGaussianEliminate is gaussianEliminate restructured to apply the
// window engine to the rhs sub-blocks: n is always a multiple of 8 (one
// group per erasure), so elimination proceeds one 8-column group at a
// time. Each group's 8 pivot rows are first reduced to echelon form
// among themselves only (cheap: it touches at most 8 rows, regardless
// of n), which makes them mutually orthogonal over the group's own
// columns. That makes the group's contribution to every other row
// order-independent, so it can be read off as a single selector byte
// per row and applied with one windowed lookup instead of up to eight
// conditional sub-block XORs.
func winGaussianEliminate(rows []bitRow, rhs [][]byte, n, subbytes int, scratch []byte) error {
	var lo, hi windowTable
	loScratch := scratch[:precompTableSize*subbytes]
	hiScratch := scratch[precompTableSize*subbytes : 2*precompTableSize*subbytes]

	for base := 0; base < n; base += 8 {
		for col := base; col < base+8; col++ {
			pivot := -1
			for r := col; r < n; r++ {
				if rows[r].get(col) {
					pivot = r
					break
				}
			}
			if pivot < 0 {
				return ErrSingularMatrix
			}
			if pivot != col {
				rows[col], rows[pivot] = rows[pivot], rows[col]
				rhs[col], rhs[pivot] = rhs[pivot], rhs[col]
			}
			for q := base; q < base+8; q++ {
				if q != col && rows[q].get(col) {
					rows[q].xorInto(rows[col])
					xorInPlace(rhs[q], rhs[col])
				}
			}
		}

		lo.build(loScratch, subbytes, rhs[base], rhs[base+1], rhs[base+2], rhs[base+3])
		hi.build(hiScratch, subbytes, rhs[base+4], rhs[base+5], rhs[base+6], rhs[base+7])

		for r := base + 8; r < n; r++ {
			var selector byte
			for bx := 0; bx < 8; bx++ {
				if rows[r].get(base + bx) {
					selector |= 1 << uint(bx)
				}
			}
			if selector == 0 {
				continue
			}
			applyByte(rhs[r], &lo, &hi, selector)
			for bx := 0; bx < 8; bx++ {
				if selector&(1<<uint(bx)) != 0 {
					rows[r].xorInto(rows[base+bx])
				}
			}
		}
	}
	return nil
}

// winBackSubstitute is backSubstitute restructured the same way: groups
// of 8 columns are cleared out of every earlier row with one windowed
// lookup per row instead of up to eight conditional sub-block XORs.
// Each group is already in echelon form against itself by the time
// winGaussianEliminate finishes, so no within-group reduction is needed
// here, only clearing it out of the rows above it.
func winBackSubstitute(rows []bitRow, rhs [][]byte, n, subbytes int, scratch []byte) {
	var lo, hi windowTable
	loScratch := scratch[:precompTableSize*subbytes]
	hiScratch := scratch[precompTableSize*subbytes : 2*precompTableSize*subbytes]

	for base := n - 8; base >= 0; base -= 8 {
		lo.build(loScratch, subbytes, rhs[base], rhs[base+1], rhs[base+2], rhs[base+3])
		hi.build(hiScratch, subbytes, rhs[base+4], rhs[base+5], rhs[base+6], rhs[base+7])

		for r := 0; r < base; r++ {
			var selector byte
			for bx := 0; bx < 8; bx++ {
				if rows[r].get(base + bx) {
					selector |= 1 << uint(bx)
				}
			}
			if selector == 0 {
				continue
			}
			applyByte(rhs[r], &lo, &hi, selector)
			for bx := 0; bx < 8; bx++ {
				if selector&(1<<uint(bx)) != 0 {
					rows[r].xorInto(rows[base+bx])
				}
			}
		}
	}
}
