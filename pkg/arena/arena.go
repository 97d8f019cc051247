// Package arena implements a bump allocator over one fixed-capacity byte
// buffer. It hands out aligned, typed slots for the tree kernel's node and
// parameter storage and supports no operation beyond "allocate" and "drop
// the whole buffer" — there is no free, no shrink, no move.
package arena

import (
	"unsafe"

	"github.com/pkg/errors"
)

// ErrOutOfMemory is returned by Allocate when the request would exceed the
// arena's remaining capacity. It is the only recoverable error this
// package produces; every other failure (zero-sized allocation, negative
// count) is a programmer error and panics instead.
var ErrOutOfMemory = errors.New("arena: out of memory")

// Arena owns one fixed-capacity byte buffer plus a bump cursor. Nothing
// allocated from it is ever freed individually; the whole buffer is
// discarded together when the Arena is dropped.
type Arena struct {
	buf  []byte
	used int
}

// New reserves a single buffer of exactly capacityBytes. The buffer is
// never grown or reallocated, so every pointer handed out by Allocate
// stays valid for the Arena's lifetime.
func New(capacityBytes int) *Arena {
	if capacityBytes < 0 {
		panic("arena: negative capacity")
	}
	return &Arena{buf: make([]byte, capacityBytes)}
}

// Len returns the number of bytes consumed so far, including alignment
// padding.
func (a *Arena) Len() int { return a.used }

// Cap returns the arena's fixed byte capacity.
func (a *Arena) Cap() int { return len(a.buf) }

// reserve advances the bump cursor past alignment padding and size bytes,
// returning the byte offset of the (now-reserved) block, or
// ErrOutOfMemory if it would not fit. The cursor is left unmodified on
// failure: an OOM never corrupts the arena.
func (a *Arena) reserve(size, align int) (int, error) {
	pad := padFor(a.used, align)
	start := a.used + pad
	end := start + size
	if end > len(a.buf) {
		return 0, errors.Wrapf(ErrOutOfMemory, "need %d bytes (pad %d) with %d of %d used", size, pad, a.used, len(a.buf))
	}
	a.used = end
	return start, nil
}

// padFor returns the number of padding bytes needed to advance used to the
// next multiple of align. It is shared with Dummy so both accounting
// paths make identical padding decisions.
func padFor(used, align int) int {
	if align <= 1 {
		return 0
	}
	rem := used % align
	if rem == 0 {
		return 0
	}
	return align - rem
}

// Allocate reserves an aligned, uninitialized block for n contiguous
// values of T and returns a pointer to the first one. Allocation is O(1).
// It panics if n <= 0: every sibling group the tree allocator builds has
// at least one member, and a zero-length request is a contract violation,
// not a recoverable condition.
func Allocate[T any](a *Arena, n int) (*T, error) {
	if n <= 0 {
		panic("arena: Allocate called with n <= 0")
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	offset, err := a.reserve(size*n, align)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(&a.buf[offset])), nil
}

// Index returns a pointer to the i-th element of a contiguous block
// previously returned by Allocate[T], implementing the stride-K walk the
// parameter vector and sibling-node arrays both rely on.
func Index[T any](base *T, i int) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	return (*T)(unsafe.Add(unsafe.Pointer(base), uintptr(i)*size))
}
