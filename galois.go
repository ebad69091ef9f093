package longhair

import "sync"

// GF(256) arithmetic, tables generated from the optimal irreducible
// polynomial 0x187 = 110000111b.
//
// gfLog is indexed by a field element and returns its discrete log; gfLog[0]
// is a sentinel (512) that can never collide with a real log value, since
// real values are in [1, 255] (gfLog[1] is stored as 255). gfExp is sized 512*2+1 so that
// gfExp[gfLog[a]+gfLog[b]] returns a*b without a conditional modular
// reduction: the sentinel sum for a zero operand lands past index 510 in
// the zero-padded tail, so multiplying by zero yields zero "for free".
var gfLog = [256]uint16{
	512, 255, 1, 99, 2, 198, 100, 106, 3, 205, 199, 188, 101, 126, 107, 42, 4, 141, 206, 78,
	200, 212, 189, 225, 102, 221, 127, 49, 108, 32, 43, 243, 5, 87, 142, 232, 207, 172, 79, 131,
	201, 217, 213, 65, 190, 148, 226, 180, 103, 39, 222, 240, 128, 177, 50, 53, 109, 69, 33, 18,
	44, 13, 244, 56, 6, 155, 88, 26, 143, 121, 233, 112, 208, 194, 173, 168, 80, 117, 132, 72,
	202, 252, 218, 138, 214, 84, 66, 36, 191, 152, 149, 249, 227, 94, 181, 21, 104, 97, 40, 186,
	223, 76, 241, 47, 129, 230, 178, 63, 51, 238, 54, 16, 110, 24, 70, 166, 34, 136, 19, 247,
	45, 184, 14, 61, 245, 164, 57, 59, 7, 158, 156, 157, 89, 159, 27, 8, 144, 9, 122, 28,
	234, 160, 113, 90, 209, 29, 195, 123, 174, 10, 169, 145, 81, 91, 118, 114, 133, 161, 73, 235,
	203, 124, 253, 196, 219, 30, 139, 210, 215, 146, 85, 170, 67, 11, 37, 175, 192, 115, 153, 119,
	150, 92, 250, 82, 228, 236, 95, 74, 182, 162, 22, 134, 105, 197, 98, 254, 41, 125, 187, 204,
	224, 211, 77, 140, 242, 31, 48, 220, 130, 171, 231, 86, 179, 147, 64, 216, 52, 176, 239, 38,
	55, 12, 17, 68, 111, 120, 25, 154, 71, 116, 167, 193, 35, 83, 137, 251, 20, 93, 248, 151,
	46, 75, 185, 96, 15, 237, 62, 229, 246, 135, 165, 23, 58, 163, 60, 183,
}

var gfExp = [512*2 + 1]byte{
	1, 2, 4, 8, 16, 32, 64, 128, 135, 137, 149, 173, 221, 61, 122, 244, 111, 222, 59, 118,
	236, 95, 190, 251, 113, 226, 67, 134, 139, 145, 165, 205, 29, 58, 116, 232, 87, 174, 219, 49,
	98, 196, 15, 30, 60, 120, 240, 103, 206, 27, 54, 108, 216, 55, 110, 220, 63, 126, 252, 127,
	254, 123, 246, 107, 214, 43, 86, 172, 223, 57, 114, 228, 79, 158, 187, 241, 101, 202, 19, 38,
	76, 152, 183, 233, 85, 170, 211, 33, 66, 132, 143, 153, 181, 237, 93, 186, 243, 97, 194, 3,
	6, 12, 24, 48, 96, 192, 7, 14, 28, 56, 112, 224, 71, 142, 155, 177, 229, 77, 154, 179,
	225, 69, 138, 147, 161, 197, 13, 26, 52, 104, 208, 39, 78, 156, 191, 249, 117, 234, 83, 166,
	203, 17, 34, 68, 136, 151, 169, 213, 45, 90, 180, 239, 89, 178, 227, 65, 130, 131, 129, 133,
	141, 157, 189, 253, 125, 250, 115, 230, 75, 150, 171, 209, 37, 74, 148, 175, 217, 53, 106, 212,
	47, 94, 188, 255, 121, 242, 99, 198, 11, 22, 44, 88, 176, 231, 73, 146, 163, 193, 5, 10,
	20, 40, 80, 160, 199, 9, 18, 36, 72, 144, 167, 201, 21, 42, 84, 168, 215, 41, 82, 164,
	207, 25, 50, 100, 200, 23, 46, 92, 184, 247, 105, 210, 35, 70, 140, 159, 185, 245, 109, 218,
	51, 102, 204, 31, 62, 124, 248, 119, 238, 91, 182, 235, 81, 162, 195, 1, 2, 4, 8, 16,
	32, 64, 128, 135, 137, 149, 173, 221, 61, 122, 244, 111, 222, 59, 118, 236, 95, 190, 251, 113,
	226, 67, 134, 139, 145, 165, 205, 29, 58, 116, 232, 87, 174, 219, 49, 98, 196, 15, 30, 60,
	120, 240, 103, 206, 27, 54, 108, 216, 55, 110, 220, 63, 126, 252, 127, 254, 123, 246, 107, 214,
	43, 86, 172, 223, 57, 114, 228, 79, 158, 187, 241, 101, 202, 19, 38, 76, 152, 183, 233, 85,
	170, 211, 33, 66, 132, 143, 153, 181, 237, 93, 186, 243, 97, 194, 3, 6, 12, 24, 48, 96,
	192, 7, 14, 28, 56, 112, 224, 71, 142, 155, 177, 229, 77, 154, 179, 225, 69, 138, 147, 161,
	197, 13, 26, 52, 104, 208, 39, 78, 156, 191, 249, 117, 234, 83, 166, 203, 17, 34, 68, 136,
	151, 169, 213, 45, 90, 180, 239, 89, 178, 227, 65, 130, 131, 129, 133, 141, 157, 189, 253, 125,
	250, 115, 230, 75, 150, 171, 209, 37, 74, 148, 175, 217, 53, 106, 212, 47, 94, 188, 255, 121,
	242, 99, 198, 11, 22, 44, 88, 176, 231, 73, 146, 163, 193, 5, 10, 20, 40, 80, 160, 199,
	9, 18, 36, 72, 144, 167, 201, 21, 42, 84, 168, 215, 41, 82, 164, 207, 25, 50, 100, 200,
	23, 46, 92, 184, 247, 105, 210, 35, 70, 140, 159, 185, 245, 109, 218, 51, 102, 204, 31, 62,
	124, 248, 119, 238, 91, 182, 235, 81, 162, 195, 1,
	// Remaining entries stay zero-valued so that a sentinel-sum lookup
	// (either operand being zero) resolves to zero without a branch.
}

// gfInv[x] = 1/x in GF(256); gfInv[0] is unused (division by zero is a
// caller error, never reached by the matrix construction).
var gfInv = [256]byte{
	0, 1, 195, 130, 162, 126, 65, 90, 81, 54, 63, 172, 227, 104, 45, 42, 235, 155, 27, 53,
	220, 30, 86, 165, 178, 116, 52, 18, 213, 100, 21, 221, 182, 75, 142, 251, 206, 233, 217, 161,
	110, 219, 15, 44, 43, 14, 145, 241, 89, 215, 58, 244, 26, 19, 9, 80, 169, 99, 50, 245,
	201, 204, 173, 10, 91, 6, 230, 247, 71, 191, 190, 68, 103, 123, 183, 33, 175, 83, 147, 255,
	55, 8, 174, 77, 196, 209, 22, 164, 214, 48, 7, 64, 139, 157, 187, 140, 239, 129, 168, 57,
	29, 212, 122, 72, 13, 226, 202, 176, 199, 222, 40, 218, 151, 210, 242, 132, 25, 179, 185, 135,
	167, 228, 102, 73, 149, 153, 5, 163, 238, 97, 3, 194, 115, 243, 184, 119, 224, 248, 156, 92,
	95, 186, 34, 250, 240, 46, 254, 78, 152, 124, 211, 112, 148, 125, 234, 17, 138, 93, 188, 236,
	216, 39, 4, 127, 87, 23, 229, 120, 98, 56, 171, 170, 11, 62, 82, 76, 107, 203, 24, 117,
	192, 253, 32, 74, 134, 118, 141, 94, 158, 237, 70, 69, 180, 252, 131, 2, 84, 208, 223, 108,
	205, 60, 106, 177, 61, 200, 36, 232, 197, 85, 113, 150, 101, 28, 88, 49, 160, 38, 111, 41,
	20, 31, 109, 198, 136, 249, 105, 12, 121, 166, 66, 246, 207, 37, 154, 16, 159, 189, 128, 96,
	144, 47, 114, 133, 51, 59, 231, 67, 137, 225, 143, 35, 193, 181, 146, 79,
}

// gfMulTable and gfDivTable are the full 64 KiB multiplication and
// division tables: gfMulTable[y*256+x] = x*y, gfDivTable[y*256+x] = x/y.
// y occupies the high byte so that multiplying (or dividing) a whole
// buffer by a fixed constant is a sequential scan through one
// contiguous 256-byte sub-table, which is friendly to the L1 cache.
var (
	gfMulTable []byte
	gfDivTable []byte
	gfOnce     sync.Once
)

func gfInitTables() {
	gfOnce.Do(func() {
		logger.Debugf("initializing GF(256) multiplication and division tables")
		gfMulTable = make([]byte, 256*256)
		gfDivTable = make([]byte, 256*256)

		// y == 0 subtable stays all zero (multiplying/dividing by 0).
		for y := 1; y < 256; y++ {
			logY := int(gfLog[y])
			logYn := 255 - logY
			m := gfMulTable[y*256 : y*256+256]
			d := gfDivTable[y*256 : y*256+256]
			// x == 0 stays zero.
			for x := 1; x < 256; x++ {
				logX := int(gfLog[x])
				m[x] = gfExp[logX+logY]
				d[x] = gfExp[logX+logYn]
			}
		}
	})
}

// gfResetTables releases the multiplication and division tables and
// allows a subsequent gfInitTables call to rebuild them. Only Deinit
// calls this.
func gfResetTables() {
	gfOnce = sync.Once{}
	gfMulTable = nil
	gfDivTable = nil
}

// gfMultiply returns x*y in GF(256). For repeated multiplication by a
// constant, put the constant in y so the access pattern stays within one
// 256-byte sub-table.
func gfMultiply(x, y byte) byte {
	return gfMulTable[int(y)<<8+int(x)]
}

// gfDivide returns x/y in GF(256). y must be nonzero.
func gfDivide(x, y byte) byte {
	return gfDivTable[int(y)<<8+int(x)]
}

// gfDouble returns x*2 in GF(256), the single operation the bit-slice
// expansion kernel repeats seven times to unroll a byte into its 8x8
// submatrix one row at a time.
func gfDouble(x byte) byte {
	return gfMultiply(x, 2)
}
