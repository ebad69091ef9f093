package longhair

import "sync"

// cauchyMatrixStackSize is the matrix size in bytes above which
// buildCauchyMatrix logs a debug line. Every matrix, whatever its size,
// is built into one heap slice that matrixProvider caches.
const cauchyMatrixStackSize = 1024

// matrixKey identifies a cached Cauchy matrix by its (k, m) parameters.
type matrixKey struct {
	k, m int
}

// matrixProvider supplies, for a given (k, m), the byte matrix whose 8x8
// bit-expansion yields the encoding matrix (spec.md §4.2). Every (k, m)
// pair maps to exactly one matrix, computed once and cached for the
// lifetime of the process: this plays the role the precomputed literal
// tables play for m in [2, 6] in the original Longhair source, without
// requiring those literals (see SPEC_FULL.md, "Matrix provider").
type matrixProvider struct {
	mu    sync.Mutex
	cache map[matrixKey][]byte
}

func newMatrixProvider() *matrixProvider {
	return &matrixProvider{cache: make(map[matrixKey][]byte)}
}

// get returns the (m-1) x k byte matrix for (k, m), row-major with a row
// stride of k. Precondition: m > 1 (m == 1 is the pure-XOR degenerate
// case and never consults a matrix).
func (p *matrixProvider) get(k, m int) []byte {
	key := matrixKey{k, m}

	p.mu.Lock()
	if mtx, ok := p.cache[key]; ok {
		p.mu.Unlock()
		return mtx
	}
	p.mu.Unlock()

	mtx := buildCauchyMatrix(k, m)

	p.mu.Lock()
	p.cache[key] = mtx
	p.mu.Unlock()

	return mtx
}

// reset discards every cached matrix. Only Deinit calls this.
func (p *matrixProvider) reset() {
	p.mu.Lock()
	p.cache = make(map[matrixKey][]byte)
	p.mu.Unlock()
}

// defaultMatrixProvider backs the package-level Encode/Decode convenience
// functions; a Context also shares it, since the matrix is a pure,
// immutable function of (k, m) and is safe to reuse across every caller.
var defaultMatrixProvider = newMatrixProvider()

// cauchyXY fixes X[c] for c = 0 .. k-2 and Y[r] for r = 0 .. m-2 from a
// single shared ordered list drawn from GF(256) \ {0}, partitioned so
// that X[0] = 1 (implicit, never stored), the explicit X values, and the
// Y values are pairwise disjoint. k + m <= 256 guarantees 1 + (k-1) +
// (m-1) = k+m-1 <= 255 distinct nonzero field elements are available.
func cauchyXY(k, m int) (x, y []byte) {
	x = make([]byte, k-1)
	y = make([]byte, m-1)

	v := byte(2) // 1 is reserved for the implicit X[0]
	for i := range x {
		x[i] = v
		v++
	}
	for i := range y {
		y[i] = v
		v++
	}
	return x, y
}

// buildCauchyMatrix constructs the (m-1) x k Cauchy matrix for (k, m).
// Row r, column c is 1/(X[c] XOR Y[r]) for c >= 1 and 1/(1 XOR Y[r]) for
// c == 0, where X[0] = 1 is implicit. The result is invertible on any
// square submatrix by construction, since X and Y are disjoint.
//
// The original C codec rebuilds this matrix on every call and so benefits
// from a stack buffer below cauchyMatrixStackSize bytes; this port instead
// builds it once per (k, m) and caches it in matrixProvider, so the
// stack-vs-heap split collapses into a single persistent allocation here.
func buildCauchyMatrix(k, m int) []byte {
	gfInitTables()

	x, y := cauchyXY(k, m)

	size := k * (m - 1)
	if size > cauchyMatrixStackSize {
		logger.Debugf("cauchy matrix for k=%d m=%d needs %d bytes, above the %d-byte stack threshold", k, m, size, cauchyMatrixStackSize)
	}

	matrix := make([]byte, size)
	fillCauchyMatrix(matrix, k, x, y)
	return matrix
}

func fillCauchyMatrix(matrix []byte, k int, x, y []byte) {
	row := matrix
	for r := range y {
		g := y[r]
		row[0] = gfInv[1^g]
		for c := 1; c < k; c++ {
			row[c] = gfInv[x[c-1]^g]
		}
		row = row[k:]
	}
}
