package longhair

import (
	"math/rand"
	"testing"
)

func TestGaloisMultiplyIdentity(t *testing.T) {
	gfInitTables()
	for x := 0; x < 256; x++ {
		if got := gfMultiply(byte(x), 1); got != byte(x) {
			t.Fatalf("x*1 = %d, want %d", got, x)
		}
		if got := gfMultiply(byte(x), 0); got != 0 {
			t.Fatalf("x*0 = %d, want 0", got)
		}
	}
}

func TestGaloisDivideUndoesMultiply(t *testing.T) {
	gfInitTables()
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := byte(r.Intn(256))
		y := byte(1 + r.Intn(255))
		product := gfMultiply(x, y)
		if got := gfDivide(product, y); got != x {
			t.Fatalf("(%d*%d)/%d = %d, want %d", x, y, y, got, x)
		}
	}
}

func TestGaloisInverseTable(t *testing.T) {
	gfInitTables()
	for x := 1; x < 256; x++ {
		if got := gfMultiply(byte(x), gfInv[x]); got != 1 {
			t.Fatalf("%d * inv(%d) = %d, want 1", x, x, got)
		}
	}
}

// 2^255 = 1 in GF(256), so gfExp must wrap back to 1 at index 510
// (255+255) rather than rely on the zero-padded tail past it.
func TestGaloisExpTableWrapsAtDoubleLength(t *testing.T) {
	if gfExp[510] != 1 {
		t.Fatalf("gfExp[510] = %d, want 1", gfExp[510])
	}
}

func TestGaloisDouble(t *testing.T) {
	gfInitTables()
	for x := 0; x < 256; x++ {
		if got, want := gfDouble(byte(x)), gfMultiply(byte(x), 2); got != want {
			t.Fatalf("gfDouble(%d) = %d, want %d", x, got, want)
		}
	}
}
