package longhair

import "testing"

func TestCauchyMatrixEntriesAreNonzero(t *testing.T) {
	gfInitTables()
	for _, km := range [][2]int{{2, 2}, {5, 3}, {10, 6}, {40, 8}} {
		k, m := km[0], km[1]
		matrix := buildCauchyMatrix(k, m)
		for i, v := range matrix {
			if v == 0 {
				t.Fatalf("k=%d m=%d: matrix[%d] = 0, every Cauchy entry must be nonzero", k, m, i)
			}
		}
	}
}

func TestMatrixProviderCaches(t *testing.T) {
	p := newMatrixProvider()
	a := p.get(12, 4)
	b := p.get(12, 4)
	if &a[0] != &b[0] {
		t.Fatal("matrixProvider.get returned distinct backing arrays for the same (k, m)")
	}
}

// matrixInvertibleSubset checks that selecting any set of erasureCount
// columns out of a Cauchy matrix's rows yields an invertible square
// submatrix, which is the property that makes the decoder's Gaussian
// elimination always find a pivot for a valid (k, m, erasure) triple.
func matrixInvertibleSubset(t *testing.T, k, m int, cols []int) {
	t.Helper()
	e := len(cols)
	matrix := buildCauchyMatrix(k, m)

	coeff := make([][]byte, e)
	for i := 0; i < e; i++ {
		coeff[i] = make([]byte, e)
		for j, col := range cols {
			coeff[i][j] = matrixCoeff(matrix, k, i, col)
		}
	}
	rows := buildBitmatrix(coeff, e)
	rhs := make([][]byte, e*8)
	for i := range rhs {
		rhs[i] = make([]byte, 1)
	}
	if err := gaussianEliminate(rows, rhs, e*8); err != nil {
		t.Fatalf("k=%d m=%d cols=%v: %v", k, m, cols, err)
	}
}

func TestCauchySubmatricesAreInvertible(t *testing.T) {
	gfInitTables()
	matrixInvertibleSubset(t, 10, 4, []int{0, 1, 2})
	matrixInvertibleSubset(t, 10, 4, []int{7, 8, 9})
	matrixInvertibleSubset(t, 30, 8, []int{0, 5, 10, 15, 20, 25, 29})
}
