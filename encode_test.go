package longhair

import (
	"math/rand"
	"testing"
)

func randomDataBlocks(r *rand.Rand, k, blockBytes int) [][]byte {
	data := make([][]byte, k)
	for i := range data {
		data[i] = randomBlock(r, blockBytes)
	}
	return data
}

func TestEncodeRecoveryRowZeroIsXor(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	const k, m, blockBytes = 6, 3, 16
	data := randomDataBlocks(r, k, blockBytes)

	out := make([]byte, m*blockBytes)
	if err := Encode(k, m, data, out, blockBytes); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, blockBytes)
	for _, d := range data {
		xorInPlace(want, d)
	}
	if string(out[:blockBytes]) != string(want) {
		t.Fatal("recovery block 0 is not the XOR of every input")
	}
}

func TestEncodeDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	const k, m, blockBytes = 10, 6, 32
	data := randomDataBlocks(r, k, blockBytes)

	out1 := make([]byte, m*blockBytes)
	out2 := make([]byte, m*blockBytes)
	if err := Encode(k, m, data, out1, blockBytes); err != nil {
		t.Fatal(err)
	}
	if err := Encode(k, m, data, out2, blockBytes); err != nil {
		t.Fatal(err)
	}
	if string(out1) != string(out2) {
		t.Fatal("Encode is not deterministic across two calls with identical input")
	}
}

func TestEncodeKEqualsOneCopies(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	const m, blockBytes = 4, 24
	data := [][]byte{randomBlock(r, blockBytes)}

	out := make([]byte, m*blockBytes)
	if err := Encode(1, m, data, out, blockBytes); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m; i++ {
		if string(out[i*blockBytes:(i+1)*blockBytes]) != string(data[0]) {
			t.Fatalf("recovery block %d is not a copy of the single input", i)
		}
	}
}

func TestEncodeWindowedMatchesPlain(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	const k, blockBytes = 8, 16
	data := randomDataBlocks(r, k, blockBytes)

	matrix := defaultMatrixProvider.get(k, 7)
	plainOut := make([]byte, 7*blockBytes)
	plainEncode(k, 7, matrix, data, plainOut[:6*blockBytes], blockBytes/8)

	scratch := make([]byte, 2*precompTableSize*(blockBytes/8))
	winOut := make([]byte, 7*blockBytes)
	winEncode(k, 7, matrix, data, winOut[:6*blockBytes], blockBytes/8, scratch)

	if string(plainOut) != string(winOut) {
		t.Fatal("windowed and plain encode kernels disagree")
	}
}

func TestEncodeRejectsBadParams(t *testing.T) {
	data := [][]byte{{1, 2, 3, 4, 5, 6, 7}, {1, 2, 3, 4, 5, 6, 7}}
	out := make([]byte, 14)
	if err := Encode(2, 2, data, out, 7); err != ErrBlockSize {
		t.Fatalf("expected ErrBlockSize, got %v", err)
	}
}
