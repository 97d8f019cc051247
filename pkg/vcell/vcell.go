// Package vcell provides single-word cells whose reads and writes are not
// reordered or elided by the optimizer. They back the arena's sibling-list
// pointers and the solver's per-action parameters, so that a reader racing
// with tree construction or a CFR iteration observes either the old or the
// new word, never a torn value.
package vcell

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Pointer is a volatile unsafe.Pointer cell. It is used for the
// next_sibling and first_child header words: readers must never see a
// torn pointer while a writer publishes a new child or sibling.
type Pointer struct {
	v atomic.Pointer[byte]
}

// Load reads the cell's current value.
func (p *Pointer) Load() unsafe.Pointer {
	return unsafe.Pointer(p.v.Load())
}

// Store publishes a new value, visible to any concurrent reader.
func (p *Pointer) Store(val unsafe.Pointer) {
	p.v.Store((*byte)(val))
}

// Float32 is a volatile float32 cell, stored as the bit pattern of a
// float32 behind an atomic.Uint32. CFR's cumulative_regret and
// cumulative_strategy fields are both Float32 cells so that a concurrent
// reader of the strategy never observes a half-written value.
//
// Pattern adapted from an atomic-float64-via-unsafe-pointer CAS loop: here
// the bit width is narrowed to 32 and the pointer indirection is dropped
// in favor of atomic.Uint32, which is the same trick without the
// GC-unsafety caveats of reinterpreting a *float64 as a *uint64.
type Float32 struct {
	bits atomic.Uint32
}

// Load reads the current float32 value.
func (f *Float32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

// Store publishes a new float32 value.
func (f *Float32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}

// Add atomically adds delta to the cell and returns the new value. CFR is
// specified as single-writer-per-iteration, so the kernel itself never
// contends on this path, but the CAS loop keeps the cell honest under the
// "future: parallel CFR" extension point called out by the design notes.
func (f *Float32) Add(delta float32) float32 {
	for {
		oldBits := f.bits.Load()
		oldVal := math.Float32frombits(oldBits)
		newVal := oldVal + delta
		newBits := math.Float32bits(newVal)
		if f.bits.CompareAndSwap(oldBits, newBits) {
			return newVal
		}
	}
}
