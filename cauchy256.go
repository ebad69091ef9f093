// Package longhair implements a systematic Cauchy Reed-Solomon erasure
// code over GF(2^8): k data blocks produce m recovery blocks, and any k
// of the resulting k+m blocks are enough to reconstruct the rest.
package longhair

import "sync/atomic"

// Version is the ABI version this package implements. Callers pass it to
// Init so that a future incompatible change to the wire-level matrix
// construction fails loudly instead of silently decoding garbage.
const Version = 2

// MaxTotalBlocks is the largest value k+m may take: one GF(256) element
// addresses at most 256 distinct rows.
const MaxTotalBlocks = 256

var initialized int32

// Init prepares the package's GF(256) tables for use and checks the
// caller's expected version against Version. Encode and Decode also
// initialize these tables lazily on first use, so calling Init is
// optional; it exists for callers that want to fail fast on a version
// mismatch before doing any other work.
func Init(expectedVersion int) error {
	if expectedVersion != Version {
		return ErrVersionMismatch
	}
	gfInitTables()
	atomic.StoreInt32(&initialized, 1)
	return nil
}

// Deinit releases the process-wide GF(256) tables and matrix cache. A
// subsequent Encode, Decode, or Init call rebuilds them lazily.
func Deinit() {
	defaultMatrixProvider.reset()
	gfResetTables()
	atomic.StoreInt32(&initialized, 0)
}

// Initialized reports whether Init has successfully run since the last
// Deinit. Encode and Decode do not require this to be true; they
// initialize the GF(256) tables lazily on first use regardless.
func Initialized() bool {
	return atomic.LoadInt32(&initialized) != 0
}

// Block describes one data or recovery block passed to Decode. Row
// identifies which of the k+m rows Data represents: rows [0, k) are
// original data, rows [k, k+m) are recovery blocks.
type Block struct {
	Data []byte
	Row  int
}

// Encode computes m recovery blocks from k equal-length data blocks.
// recoveryOut must be m*blockBytes bytes long; recovery block r occupies
// recoveryOut[r*blockBytes : (r+1)*blockBytes].
func Encode(k, m int, data [][]byte, recoveryOut []byte, blockBytes int) error {
	if len(data) != k {
		return ErrInvalidParams
	}
	if len(recoveryOut) < m*blockBytes {
		return ErrInvalidParams
	}
	_, err := encodeInto(k, m, data, recoveryOut, blockBytes, nil)
	return err
}

// Decode reconstructs any missing original blocks in place. blocks must
// hold exactly k descriptors; see Block for how rows identify erasures.
func Decode(k, m int, blocks []Block, blockBytes int) error {
	_, err := decodeInto(k, m, blocks, blockBytes, nil)
	return err
}
