package longhair

import "errors"

// Sentinel errors returned by the package's entry points. They cover the
// error kinds VERSION_MISMATCH, INVALID_PARAMS (split into
// ErrInvalidParams, ErrBlockSize and ErrTooFewBlocks) and INTERNAL, plus
// ErrContextBusy for Context reuse. There is no OUT_OF_MEMORY sentinel:
// an allocation failure is not reported as an error.
var (
	// ErrVersionMismatch is returned by Init when the caller's expected
	// ABI version tag does not match the version this package implements.
	ErrVersionMismatch = errors.New("longhair: version mismatch")

	// ErrInvalidParams is returned when k+m exceeds 256, or k or m is
	// less than 1.
	ErrInvalidParams = errors.New("longhair: k+m must be in [2, 256]")

	// ErrBlockSize is returned when block_bytes is not a positive
	// multiple of 8 on a code path that requires it.
	ErrBlockSize = errors.New("longhair: block_bytes must be a positive multiple of 8")

	// ErrTooFewBlocks is returned by Decode when fewer than k block
	// descriptors were supplied.
	ErrTooFewBlocks = errors.New("longhair: decode requires exactly k block descriptors")

	// ErrSingularMatrix signals the INTERNAL error kind: a bitmatrix
	// built from the Cauchy construction was singular. This should be
	// unreachable given k+m <= 256 and is treated as a fatal bug signal
	// rather than a recoverable condition.
	ErrSingularMatrix = errors.New("longhair: internal error, singular bitmatrix")

	// ErrContextBusy is returned when a Context already in use by one
	// call is reentered by a second concurrent call. A Context's scratch
	// buffers are exclusively owned for the duration of a call.
	ErrContextBusy = errors.New("longhair: context is already in use")
)
