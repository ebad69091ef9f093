package longhair

import (
	"math/rand"
	"testing"
)

func TestRoundTripManyConfigurations(t *testing.T) {
	configs := []struct {
		k, m, blockBytes int
		erased           []int
	}{
		{2, 2, 8, []int{0}},
		{4, 4, 16, []int{1, 3}},
		{16, 5, 24, []int{0, 4, 8, 12, 15}},
		{32, 10, 8, []int{2, 5, 9, 17, 29, 31}},
		{100, 16, 16, []int{0, 1, 2, 50, 98, 99}},
	}

	for ci, cfg := range configs {
		r := rand.New(rand.NewSource(int64(100 + ci)))
		data, recovery := encodeFixture(t, r, cfg.k, cfg.m, cfg.blockBytes)
		blocks := buildDecodeInput(data, recovery, cfg.erased)

		if err := Decode(cfg.k, cfg.m, blocks, cfg.blockBytes); err != nil {
			t.Fatalf("config %d: %v", ci, err)
		}
		for row := range data {
			if string(blocks[row].Data) != string(data[row]) {
				t.Fatalf("config %d row %d: mismatch after decode", ci, row)
			}
		}
	}
}

func TestRoundTripReorderingInvariance(t *testing.T) {
	r := rand.New(rand.NewSource(200))
	const k, m, blockBytes = 12, 5, 16
	data, recovery := encodeFixture(t, r, k, m, blockBytes)

	blocks := buildDecodeInput(data, recovery, []int{1, 6, 10})

	shuffled := append([]Block(nil), blocks...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	if err := Decode(k, m, shuffled, blockBytes); err != nil {
		t.Fatal(err)
	}

	byRow := make(map[int][]byte, k)
	for _, b := range shuffled {
		byRow[b.Row] = b.Data
	}
	for row := range data {
		got, ok := byRow[row]
		if !ok {
			t.Fatalf("row %d missing from decoded output", row)
		}
		if string(got) != string(data[row]) {
			t.Fatalf("row %d mismatch after decoding a shuffled block order", row)
		}
	}
}

func TestRoundTripViaContext(t *testing.T) {
	r := rand.New(rand.NewSource(201))
	const k, m, blockBytes = 10, 6, 32
	data := randomDataBlocks(r, k, blockBytes)

	ctx, err := NewContext(blockBytes)
	if err != nil {
		t.Fatal(err)
	}

	out := make([]byte, m*blockBytes)
	if err := ctx.Encode(k, m, data, out, blockBytes); err != nil {
		t.Fatal(err)
	}
	recovery := make([][]byte, m)
	for i := range recovery {
		recovery[i] = out[i*blockBytes : (i+1)*blockBytes]
	}

	blocks := buildDecodeInput(data, recovery, []int{0, 5, 9})
	if err := ctx.Decode(k, m, blocks, blockBytes); err != nil {
		t.Fatal(err)
	}
	for row := range data {
		if string(blocks[row].Data) != string(data[row]) {
			t.Fatalf("row %d mismatch using a shared Context", row)
		}
	}
}

func TestContextRejectsOversizedBlocks(t *testing.T) {
	ctx, err := NewContext(16)
	if err != nil {
		t.Fatal(err)
	}
	data := [][]byte{make([]byte, 32), make([]byte, 32)}
	out := make([]byte, 64)
	if err := ctx.Encode(2, 2, data, out, 32); err != ErrBlockSize {
		t.Fatalf("expected ErrBlockSize, got %v", err)
	}
}

func TestBoundaryMaxTotalBlocks(t *testing.T) {
	r := rand.New(rand.NewSource(202))
	const k, m, blockBytes = 255, 1, 8
	data, recovery := encodeFixture(t, r, k, m, blockBytes)

	blocks := buildDecodeInput(data, recovery, []int{100})
	if err := Decode(k, m, blocks, blockBytes); err != nil {
		t.Fatal(err)
	}
	if string(blocks[100].Data) != string(data[100]) {
		t.Fatal("boundary k=255, m=1 recovery mismatch")
	}
}

func TestEncodeRejectsTooManyTotalBlocks(t *testing.T) {
	data := [][]byte{make([]byte, 8), make([]byte, 8)}
	out := make([]byte, 255*8)
	if err := Encode(2, 255, data, out, 8); err != ErrInvalidParams {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

// The k=1 and m=1 degenerate paths must not bypass the k+m<=256 bound:
// both are shapes where the fast path would otherwise "succeed" on an
// oversized request instead of reporting it.
func TestEncodeRejectsOversizedDegenerateShapes(t *testing.T) {
	data := make([][]byte, 1)
	data[0] = make([]byte, 8)
	out := make([]byte, 256*8)
	if err := Encode(1, 256, data, out, 8); err != ErrInvalidParams {
		t.Fatalf("k=1, m=256: expected ErrInvalidParams, got %v", err)
	}

	data = make([][]byte, 256)
	for i := range data {
		data[i] = make([]byte, 8)
	}
	out = make([]byte, 8)
	if err := Encode(256, 1, data, out, 8); err != ErrInvalidParams {
		t.Fatalf("k=256, m=1: expected ErrInvalidParams, got %v", err)
	}
}

func TestDecodeRejectsOversizedDegenerateShapes(t *testing.T) {
	blocks := []Block{{Data: make([]byte, 8), Row: 0}}
	if err := Decode(1, 256, blocks, 8); err != ErrInvalidParams {
		t.Fatalf("k=1, m=256: expected ErrInvalidParams, got %v", err)
	}

	blocks = make([]Block, 256)
	for i := range blocks {
		blocks[i] = Block{Data: make([]byte, 8), Row: i}
	}
	if err := Decode(256, 1, blocks, 8); err != ErrInvalidParams {
		t.Fatalf("k=256, m=1: expected ErrInvalidParams, got %v", err)
	}
}
