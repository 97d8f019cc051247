package arena

import (
	"testing"
	"unsafe"
)

type sixByte [6]uint8

type actionNode struct {
	nextSibling unsafe.Pointer
	firstChild  unsafe.Pointer
	action      sixByte
	extra       uint8
}

func TestArena_AlignmentAndCursorAdvance(t *testing.T) {
	a := New(200)

	first, err := Allocate[actionNode](a, 3)
	if err != nil {
		t.Fatalf("Allocate nodes: %v", err)
	}
	if first == nil {
		t.Fatal("expected non-nil first node pointer")
	}

	nodeSize := int(unsafe.Sizeof(actionNode{}))
	nodeAlign := int(unsafe.Alignof(actionNode{}))
	if uintptr(unsafe.Pointer(first))%uintptr(nodeAlign) != 0 {
		t.Errorf("first node pointer %p is not aligned to %d", first, nodeAlign)
	}
	if a.Len() != nodeSize*3 {
		t.Errorf("Len() = %d, want %d (no padding expected at offset 0)", a.Len(), nodeSize*3)
	}

	beforeParams := a.Len()
	params, err := Allocate[uint8](a, 12)
	if err != nil {
		t.Fatalf("Allocate parameters: %v", err)
	}
	if uintptr(unsafe.Pointer(params)) != uintptr(unsafe.Pointer(first))+uintptr(beforeParams) {
		t.Errorf("parameter block does not immediately follow the node block")
	}
	if a.Len() != beforeParams+12 {
		t.Errorf("Len() = %d, want %d", a.Len(), beforeParams+12)
	}
}

func TestArena_OutOfMemoryLeavesCursorUntouched(t *testing.T) {
	a := New(8)
	before := a.Len()

	_, err := Allocate[[100]byte](a, 1)
	if err == nil {
		t.Fatal("expected ErrOutOfMemory")
	}
	if a.Len() != before {
		t.Errorf("cursor advanced on failed allocation: before=%d after=%d", before, a.Len())
	}

	// A subsequent allocation that fits must still succeed.
	p, err := Allocate[uint8](a, 4)
	if err != nil {
		t.Fatalf("allocation after OOM failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected non-nil pointer")
	}
}

func TestArena_IndexStrideWalk(t *testing.T) {
	a := New(64)
	base, err := Allocate[uint32](a, 5)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	for i := 0; i < 5; i++ {
		*Index(base, i) = uint32(i * 10)
	}
	for i := 0; i < 5; i++ {
		if got := *Index(base, i); got != uint32(i*10) {
			t.Errorf("Index(%d) = %d, want %d", i, got, i*10)
		}
	}
}

func TestArena_AllocateZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for n <= 0")
		}
	}()
	a := New(64)
	_, _ = Allocate[uint8](a, 0)
}

func TestDummy_MatchesRealPadding(t *testing.T) {
	real := New(1024)
	dummy := NewUnboundedDummy()

	if _, err := Allocate[actionNode](real, 3); err != nil {
		t.Fatalf("real Allocate: %v", err)
	}
	if err := dummy.Reserve(3, SizeOf[actionNode](), AlignOf[actionNode]()); err != nil {
		t.Fatalf("dummy Reserve: %v", err)
	}
	if real.Len() != dummy.Len() {
		t.Fatalf("real.Len()=%d dummy.Len()=%d, expected identical padding accounting", real.Len(), dummy.Len())
	}

	if _, err := Allocate[uint8](real, 7); err != nil {
		t.Fatalf("real Allocate: %v", err)
	}
	if err := dummy.Reserve(7, SizeOf[uint8](), AlignOf[uint8]()); err != nil {
		t.Fatalf("dummy Reserve: %v", err)
	}
	if real.Len() != dummy.Len() {
		t.Fatalf("real.Len()=%d dummy.Len()=%d after second allocation", real.Len(), dummy.Len())
	}
}

func TestDummy_BoundedFailsAtBudget(t *testing.T) {
	d := NewDummy(4)
	if err := d.Reserve(4, 1, 1); err != nil {
		t.Fatalf("expected Reserve to fit exactly: %v", err)
	}
	if err := d.Reserve(1, 1, 1); err == nil {
		t.Fatal("expected ErrOutOfMemory past the budget")
	}
}
