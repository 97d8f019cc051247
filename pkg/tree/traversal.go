package tree

import "unsafe"

// NextSiblingOf returns the next node after p in its sibling list, or nil
// at the end. It needs no type parameter: every node variant begins with
// the same two-word header, so reading it back through *header is valid
// regardless of which concrete variant p actually points to.
func NextSiblingOf(p NodePtr) NodePtr {
	if p == nil {
		return nil
	}
	return headerPtr(p).NextSibling()
}

// FirstChildOf returns p's first child, or nil if it has none.
func FirstChildOf(p NodePtr) NodePtr {
	if p == nil {
		return nil
	}
	return headerPtr(p).FirstChild()
}

// SetFirstChildOf publishes newFirst as parent's first child, via a
// volatile write so a concurrent reader never observes a torn pointer.
func SetFirstChildOf(parent NodePtr, newFirst NodePtr) {
	headerPtr(parent).SetFirstChild(newFirst)
}

// Siblings walks the sibling list starting at first and returns every
// member in order. It is explicitly unsafe with respect to arena
// lifetime: the returned pointers must not be used after the arena that
// backs them is dropped.
func Siblings(first NodePtr) []NodePtr {
	var out []NodePtr
	for p := first; p != nil; p = NextSiblingOf(p) {
		out = append(out, p)
	}
	return out
}

// AddChild prepends newFirst to parent's child list: it links newFirst's
// own next_sibling to parent's previous first_child, then publishes
// first_child := newFirst. The publish is a single volatile write, so a
// concurrent reader of parent never sees a state where first_child points
// at newFirst before newFirst.next_sibling has been wired up.
func AddChild(parent NodePtr, newFirst NodePtr) {
	prev := FirstChildOf(parent)
	headerPtr(newFirst).setNextSibling(prev)
	SetFirstChildOf(parent, newFirst)
}

// addrEqual reports whether two NodePtrs reference the same address; used
// by tests asserting contiguity without depending on a specific concrete
// node type.
func addrEqual(a, b NodePtr) bool {
	return uintptr(unsafe.Pointer(a)) == uintptr(unsafe.Pointer(b))
}
