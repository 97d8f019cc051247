// Package tree materializes an extensive-form game tree into an arena:
// three heterogeneous node variants sharing a common two-word header,
// linked into a sibling-list / first-child forest, plus the variable
// length per-action parameter vectors that follow each action sibling
// group. See the estimator (estimator.go) and allocator (allocator.go) for
// the two passes that build one of these.
package tree

import (
	"unsafe"

	"github.com/cfrtree/cfrtree/pkg/arena"
	"github.com/cfrtree/cfrtree/pkg/vcell"
)

// header is the two-word prefix shared by every node variant, so that a
// generic NodePtr can walk siblings and children without knowing the
// tail. Both words are volatile cells: a concurrent reader must never see
// a torn pointer while first_child is being published during
// construction.
type header struct {
	nextSibling vcell.Pointer
	firstChild  vcell.Pointer
}

// NextSibling returns the next node in this node's sibling list, or nil
// at the end of the list.
func (h *header) NextSibling() NodePtr { return NodePtr(h.nextSibling.Load()) }

// FirstChild returns this node's first child, or nil if it has none yet.
func (h *header) FirstChild() NodePtr { return NodePtr(h.firstChild.Load()) }

// setNextSibling links this node to the next node in a sibling list.
func (h *header) setNextSibling(p NodePtr) { h.nextSibling.Store(unsafe.Pointer(p)) }

// SetFirstChild publishes new as this node's first child via a volatile
// write, so a concurrent reader never observes a torn pointer.
func (h *header) SetFirstChild(new NodePtr) { h.firstChild.Store(unsafe.Pointer(new)) }

// NodePtr is an untyped pointer tagged by context: the caller knows, from
// the stage of the parent state, which variant the pointee is. Siblings
// under one parent are always the same variant (type homogeneity per
// sibling group).
type NodePtr unsafe.Pointer

// RootNode is header-only: one per tree, its first_child is the single
// top-level sibling group, and its next_sibling word is unused padding
// (a root never has siblings).
type RootNode struct {
	header
}

// ActionNode is a decision node for an action of type A, carrying a
// pointer to the first of K contiguous parameter slots of type P
// allocated immediately after its sibling group.
type ActionNode[A any, P any] struct {
	header
	parameters *P
	action     A
}

// Action returns the event that led to this node.
func (n *ActionNode[A, P]) Action() A { return n.action }

// Parameters returns the pointer to this node's own K-slot parameter
// block (slot 0); use ParamAt for a specific slot.
func (n *ActionNode[A, P]) Parameters() *P { return n.parameters }

// ParamAt returns a pointer to slot i of this node's K-slot parameter
// block, implementing the stride-K walk parameter_iterator(parent, slot)
// describes: the block is contiguous, so slot i is simply
// Parameters()+i.
func (n *ActionNode[A, P]) ParamAt(i int) *P {
	return arena.Index(n.parameters, i)
}

// ChanceNode is a chance event node carrying the outcome C that leads to
// it; chance nodes have no parameter block.
type ChanceNode[C any] struct {
	header
	result C
}

// Result returns the chance outcome that leads to this node.
func (n *ChanceNode[C]) Result() C { return n.result }

// AsAction reinterprets an untyped NodePtr as *ActionNode[A, P]. The
// caller must already know, from the parent state's stage, that this
// sibling group is action nodes of exactly this A and P.
func AsAction[A any, P any](p NodePtr) *ActionNode[A, P] {
	return (*ActionNode[A, P])(p)
}

// AsChance reinterprets an untyped NodePtr as *ChanceNode[C].
func AsChance[C any](p NodePtr) *ChanceNode[C] {
	return (*ChanceNode[C])(p)
}

// AsRoot reinterprets an untyped NodePtr as *RootNode.
func AsRoot(p NodePtr) *RootNode {
	return (*RootNode)(p)
}

// headerPtr extracts the shared header out of any node variant that
// starts with it, so traversal helpers need not be duplicated per
// variant. Callers pass a NodePtr already known (by parent context) to
// name a type whose first field is header.
func headerPtr(p NodePtr) *header {
	return (*header)(p)
}
