package longhair

import (
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
)

// Context owns a set of scratch buffers sized for repeated Encode/Decode
// calls against blocks up to maxBlockBytes long, avoiding a fresh
// allocation for the window engine's precomputation table on every call.
// A Context is not safe for concurrent use: Encode and Decode claim it
// exclusively for the duration of one call and return ErrContextBusy to
// any call that arrives while another is in flight.
type Context struct {
	maxBlockBytes int
	inUse         int32
	winScratch    []byte
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithPreallocatedWindow sizes the Context's window scratch buffer for
// blocks up to maxBlockBytes long, so the first
// Encode/Decode call that needs windowing does not grow it. Without this
// option the buffer grows lazily on first use and is kept thereafter.
func WithPreallocatedWindow(maxBlockBytes int) Option {
	return func(c *Context) {
		subbytes := maxBlockBytes / 8
		needed := 2 * precompTableSize * subbytes
		if len(c.winScratch) < needed {
			c.winScratch = make([]byte, needed)
		}
	}
}

// NewContext creates a Context for blocks up to maxBlockBytes long.
func NewContext(maxBlockBytes int, opts ...Option) (*Context, error) {
	if maxBlockBytes <= 0 || maxBlockBytes%8 != 0 {
		return nil, ErrBlockSize
	}
	c := &Context{maxBlockBytes: maxBlockBytes}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PreferredChunk reports the XOR kernel stride this machine's SIMD
// capability can move in one pass, the way reedsolomon.go's runtime
// gates its unrolled kernels on cpuid-detected instruction sets. It is
// advisory: xorInPlace, xorSet, and xorAdd always process xorChunkBytes
// at a time regardless, and a caller chunking its own I/O around blocks
// can use this as a sizing hint.
func (c *Context) PreferredChunk() int {
	switch {
	case cpuid.CPU.Has(cpuid.AVX2):
		return 256
	case cpuid.CPU.Has(cpuid.SSE2):
		return 128
	default:
		return 64
	}
}

func (c *Context) lock() error {
	if !atomic.CompareAndSwapInt32(&c.inUse, 0, 1) {
		return ErrContextBusy
	}
	return nil
}

func (c *Context) unlock() {
	atomic.StoreInt32(&c.inUse, 0)
}

// Encode computes m recovery blocks from k data blocks, each at most
// c.maxBlockBytes long, reusing c's scratch buffers.
func (c *Context) Encode(k, m int, data [][]byte, recoveryOut []byte, blockBytes int) error {
	if blockBytes > c.maxBlockBytes {
		return ErrBlockSize
	}
	if len(data) != k {
		return ErrInvalidParams
	}
	if len(recoveryOut) < m*blockBytes {
		return ErrInvalidParams
	}
	if err := c.lock(); err != nil {
		return err
	}
	defer c.unlock()

	scratch, err := encodeInto(k, m, data, recoveryOut, blockBytes, c.winScratch)
	c.winScratch = scratch
	return err
}

// Decode reconstructs missing original blocks in place, reusing c's
// scratch buffers.
func (c *Context) Decode(k, m int, blocks []Block, blockBytes int) error {
	if blockBytes > c.maxBlockBytes {
		return ErrBlockSize
	}
	if err := c.lock(); err != nil {
		return err
	}
	defer c.unlock()

	scratch, err := decodeInto(k, m, blocks, blockBytes, c.winScratch)
	c.winScratch = scratch
	return err
}
