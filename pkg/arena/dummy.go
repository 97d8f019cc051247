package arena

// Dummy performs the identical bump-allocation accounting as Arena without
// touching memory. The tree estimator drives one of these so its node and
// parameter tallies — and, crucially, its padding decisions — match what
// the real allocator will do.
//
// A Dummy may be bounded (to verify a caller-supplied budget, returning
// ErrOutOfMemory past it) or infinite (pure counting, the estimator's
// normal mode).
type Dummy struct {
	used    int
	cap     int
	bounded bool
}

// NewDummy creates a bounded Dummy that fails once more than capacityBytes
// would be consumed.
func NewDummy(capacityBytes int) *Dummy {
	return &Dummy{cap: capacityBytes, bounded: true}
}

// NewUnboundedDummy creates a Dummy that never fails, for pure counting.
func NewUnboundedDummy() *Dummy {
	return &Dummy{bounded: false}
}

// Len returns the number of bytes the equivalent real allocation would
// have consumed, including alignment padding.
func (d *Dummy) Len() int { return d.used }

// Reserve accounts for n values of the given size/align as if they had
// been allocated, advancing the dummy cursor and returning ErrOutOfMemory
// if the dummy is bounded and would overflow.
func (d *Dummy) Reserve(n, size, align int) error {
	if n <= 0 {
		panic("arena: Dummy.Reserve called with n <= 0")
	}
	pad := padFor(d.used, align)
	total := pad + size*n
	if d.bounded && d.used+total > d.cap {
		return ErrOutOfMemory
	}
	d.used += total
	return nil
}

// SizeOf and AlignOf are tiny helpers so callers that only have a
// compile-time type (not a value) can still report size/align; see
// tree.Estimator, which needs the size of node and parameter types without
// constructing arena slots for them.
func SizeOf[T any]() int {
	var zero T
	return sizeofImpl(zero)
}

// AlignOf mirrors SizeOf for alignment.
func AlignOf[T any]() int {
	var zero T
	return alignofImpl(zero)
}
