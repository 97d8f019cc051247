package tree

import (
	"github.com/cfrtree/cfrtree/pkg/arena"
	"github.com/cfrtree/cfrtree/pkg/gamedef"
)

// Initializer is the Parameter trait from the external interface: a
// parameter type receives an uninitialized slice of length K*n and
// initializes it in place. CFR's CfrParameter implementation zero-fills
// (its zero value already is zero, so Init is a no-op there), but a
// different solver's parameter type could run game-specific setup.
type Initializer interface {
	Init()
}

// AllocateRoot allocates the tree's single root node with a nil
// first_child.
func AllocateRoot(a *arena.Arena) (*RootNode, error) {
	root, err := arena.Allocate[RootNode](a, 1)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// AllocateActionSiblings allocates len(actions) action-node slots
// followed immediately (modulo alignment padding) by len(actions)*k
// parameter slots, in one pass over the arena. Parameters are
// initialized via Init. Nodes are written back-to-front: sibling
// next_sibling links are trivially available because the tail is built
// first, and the sibling order still matches actions' order since each
// node's position (and therefore its parameter block) is addressed by
// index, not by write order. Returns a pointer to the first node.
//
// Panics if actions is empty or k == 0: both are contract violations per
// spec (never a recoverable OutOfMemory).
func AllocateActionSiblings[A any, P Initializer](a *arena.Arena, actions []A, k int) (NodePtr, error) {
	if len(actions) == 0 {
		panic("tree: AllocateActionSiblings called with zero actions")
	}
	if k == 0 {
		panic("tree: AllocateActionSiblings called with zero parameter count")
	}

	n := len(actions)
	nodes, err := arena.Allocate[ActionNode[A, P]](a, n)
	if err != nil {
		return nil, err
	}
	params, err := arena.Allocate[P](a, n*k)
	if err != nil {
		return nil, err
	}

	paramSlots := n * k
	for i := 0; i < paramSlots; i++ {
		arena.Index(params, i).Init()
	}

	var next NodePtr
	for i := n - 1; i >= 0; i-- {
		node := arena.Index(nodes, i)
		node.action = actions[i]
		node.parameters = arena.Index(params, i*k)
		node.setNextSibling(next)
		node.SetFirstChild(nil)
		next = NodePtr(node)
	}
	return next, nil
}

// AllocateChanceSiblings is AllocateActionSiblings' analogue for a chance
// sibling group: no parameter block follows.
func AllocateChanceSiblings[C any](a *arena.Arena, chances []C) (NodePtr, error) {
	if len(chances) == 0 {
		panic("tree: AllocateChanceSiblings called with zero chances")
	}

	n := len(chances)
	nodes, err := arena.Allocate[ChanceNode[C]](a, n)
	if err != nil {
		return nil, err
	}

	var next NodePtr
	for i := n - 1; i >= 0; i-- {
		node := arena.Index(nodes, i)
		node.result = chances[i]
		node.setNextSibling(next)
		node.SetFirstChild(nil)
		next = NodePtr(node)
	}
	return next, nil
}

// Builder drives the recursive allocate_tree pass for one FullGame
// instantiation, sharing the type parameters the estimator uses so node
// and parameter layouts agree exactly between the two passes.
type Builder[S any, A any, C any, P Initializer] struct {
	Game gamedef.FullGame[S, A, C]
}

// NewBuilder constructs a Builder for g.
func NewBuilder[S any, A any, C any, P Initializer](g gamedef.FullGame[S, A, C]) *Builder[S, A, C, P] {
	return &Builder[S, A, C, P]{Game: g}
}

// AllocateTree realizes the full tree rooted at rootState into a, per
// spec.md §4.5:
//  1. allocate the root,
//  2. populate rootState's events and dispatch to the action/chance
//     sibling allocator,
//  3. for each (event, child) pair, clone, advance, recurse unless the
//     next stage is terminal, and attach the result via first_child.
//
// Any OutOfMemory aborts construction and propagates; the caller is
// expected to discard the arena (and its partially-built contents)
// together and retry with a larger one sized from the estimator.
func (b *Builder[S, A, C, P]) AllocateTree(a *arena.Arena, rootState *S) (*RootNode, error) {
	root, err := AllocateRoot(a)
	if err != nil {
		return nil, err
	}

	firstChild, err := b.allocateSiblingGroup(a, rootState)
	if err != nil {
		return nil, err
	}
	root.SetFirstChild(firstChild)
	return root, nil
}

// allocateSiblingGroup allocates the sibling group rooted at state (action
// or chance, dispatched on stage) and recursively fills in each sibling's
// own children, returning a pointer to the first sibling.
func (b *Builder[S, A, C, P]) allocateSiblingGroup(a *arena.Arena, state *S) (NodePtr, error) {
	stage := b.Game.GetStage(state)

	var events []gamedef.Event[A, C]
	b.Game.PopulateEvents(state, &events)

	switch stage.Kind {
	case gamedef.StageAction:
		k := b.Game.ParameterCount(state)
		actions := make([]A, len(events))
		for i, ev := range events {
			actions[i] = ev.Action
		}
		first, err := AllocateActionSiblings[A, P](a, actions, k)
		if err != nil {
			return nil, err
		}
		if err := b.attachChildren(a, state, events, first); err != nil {
			return nil, err
		}
		return first, nil

	case gamedef.StageChance:
		chances := make([]C, len(events))
		for i, ev := range events {
			chances[i] = ev.Chance
		}
		first, err := AllocateChanceSiblings[C](a, chances)
		if err != nil {
			return nil, err
		}
		if err := b.attachChildren(a, state, events, first); err != nil {
			return nil, err
		}
		return first, nil

	default:
		panic("tree: allocateSiblingGroup called on a terminal state")
	}
}

// attachChildren walks events and the just-allocated sibling list in
// lockstep, and for every sibling whose child state is not terminal,
// recursively builds that child's own children and attaches them.
func (b *Builder[S, A, C, P]) attachChildren(a *arena.Arena, state *S, events []gamedef.Event[A, C], first NodePtr) error {
	sibling := first
	for i := range events {
		childState := b.Game.CloneState(state)
		b.Game.AdvanceState(childState, events[i])

		if b.Game.GetStage(childState).Kind != gamedef.StageTerminal {
			grandchildren, err := b.allocateSiblingGroup(a, childState)
			if err != nil {
				return err
			}
			SetFirstChildOf(sibling, grandchildren)
		}

		sibling = NextSiblingOf(sibling)
	}
	return nil
}
