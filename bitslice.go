package longhair

// expandRows bit-slices a GF(256) byte into the eight row-slices of its
// 8x8 binary submatrix: rows[0] is the byte itself (bit_y = 0), and each
// subsequent row is the previous one doubled in GF(256). Slicing by row
// rather than by column means expanding a byte into its submatrix is a
// loop of seven "multiply by 2" operations with no per-bit transposition,
// and keeps the eight rows of one submatrix contiguous (spec.md §4.2,
// "Why this layout").
func expandRows(slice byte) [8]byte {
	var rows [8]byte
	for i := 0; i < 8; i++ {
		rows[i] = slice
		slice = gfDouble(slice)
	}
	return rows
}
